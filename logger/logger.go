package logger

import (
	"log"
	"os"
)

// ProgressLogger logs the main steps of a linting run.
var ProgressLogger = log.New(os.Stdout, "cssgrid.progress: ", log.LstdFlags)

// WarningLogger emits a warning for each non fatal error, like invalid
// grid declarations or suspicious line names.
var WarningLogger = log.New(os.Stdout, "cssgrid.warning: ", log.Lmsgprefix)
