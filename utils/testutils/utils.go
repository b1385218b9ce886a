package testutils

import (
	"bytes"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/benoitkugler/cssgrid/logger"
)

func AssertEqual(t *testing.T, got, exp interface{}) {
	t.Helper()
	if !reflect.DeepEqual(exp, got) {
		t.Fatalf("expected\n%v\n got \n%v", exp, got)
	}
}

func AssertNoErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
}

type CapturedLogs struct {
	saved  io.Writer
	prefix string
	buf    *bytes.Buffer
}

// CaptureLogs redirects the warning logger to an internal buffer,
// dropping its prefix, so that tests may assert on the emitted messages.
// One of Logs, CheckEqual or AssertNoLogs must be called before the
// end of the test, to restore the logger.
func CaptureLogs() *CapturedLogs {
	c := CapturedLogs{
		saved:  logger.WarningLogger.Writer(),
		prefix: logger.WarningLogger.Prefix(),
		buf:    new(bytes.Buffer),
	}
	logger.WarningLogger.SetOutput(c.buf)
	logger.WarningLogger.SetPrefix("")
	return &c
}

// Logs restores the logger and returns the captured messages, one per line.
func (c *CapturedLogs) Logs() []string {
	logger.WarningLogger.SetOutput(c.saved)
	logger.WarningLogger.SetPrefix(c.prefix)
	s := strings.TrimSuffix(c.buf.String(), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// CheckEqual restores the logger and compares the captured messages
// with the expected ones.
func (c *CapturedLogs) CheckEqual(exp []string, t *testing.T) {
	t.Helper()
	AssertEqual(t, c.Logs(), exp)
}

// AssertNoLogs restores the logger and fails if messages were captured.
func (c *CapturedLogs) AssertNoLogs(t *testing.T) {
	t.Helper()
	if logs := c.Logs(); len(logs) != 0 {
		t.Fatalf("expected no logs, got (%d): \n %s", len(logs), strings.Join(logs, "\n "))
	}
}
