package utils

import (
	"fmt"
)

const (
	Version = "0.1"
)

var VersionString = fmt.Sprintf("Go-CSSGrid %s", Version)
