package parser

import (
	"fmt"
	"os"
	"strings"

	"github.com/nagc-lang/nagc/token"
)

// traceLog is the append-only parse trace enabled by --debug-compiler.
// One event per line, formatted as
//
//	Event Rule pos: P token: T
//
// where Event is one of WriteMemo, "First call to", Recursed, "Use memo",
// or Error(<kind>). The log is buffered in memory and written to a file
// by the driver at the end of a parse.
type traceLog struct {
	builder strings.Builder
}

// log appends one trace event.
func (t *traceLog) log(event string, rule string, position int, tok token.Token) {
	fmt.Fprintf(&t.builder, "%s %s pos: %d token: %s\n", event, rule, position, tok)
}

// raw appends free-form text, used for the final success marker.
func (t *traceLog) raw(text string) {
	t.builder.WriteString(text)
}

// String returns the whole trace accumulated so far.
func (t *traceLog) String() string {
	return t.builder.String()
}

// WriteFile appends the trace to the named file, creating it on demand.
func (t *traceLog) WriteFile(fileName string) error {
	file, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.WriteString(t.builder.String())
	return err
}
