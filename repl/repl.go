// Package repl implements the interactive front-end. Each input line is
// lexed, parsed and analyzed on its own, and the resulting AST (or the
// first error) is printed back with colored feedback. The loop uses the
// readline library for line editing and command history.
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/nagc-lang/nagc/ast"
	"github.com/nagc-lang/nagc/driver"
)

// Color definitions for the interactive output:
// - blue: separators
// - yellow: AST dumps
// - red: errors
// - cyan: informational messages
var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	cyanColor   = color.New(color.FgCyan)
)

// Repl is one interactive session.
type Repl struct {
	Prompt  string
	Version string
}

// NewRepl creates a session with the given prompt and version banner.
func NewRepl(prompt string, version string) *Repl {
	return &Repl{
		Prompt:  prompt,
		Version: version,
	}
}

// Start runs the read-parse-print loop until `.exit` or end of input.
func (r *Repl) Start(writer io.Writer) error {
	cyanColor.Fprintf(writer, "nagc %s interactive front-end\n", r.Version)
	cyanColor.Fprintln(writer, "Type a line of code and press enter; '.exit' quits")
	blueColor.Fprintln(writer, strings.Repeat("-", 48))

	rl, err := readline.New(r.Prompt)
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			// EOF or interrupt ends the session.
			writer.Write([]byte("bye\n"))
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" {
			writer.Write([]byte("bye\n"))
			return nil
		}
		rl.SaveHistory(line)

		r.execute(writer, line)
	}
}

// execute runs the pipeline over one line and prints the outcome.
func (r *Repl) execute(writer io.Writer, line string) {
	_, analyzed, err := driver.Compile(line, false, "")
	if err != nil {
		redColor.Fprintf(writer, "%v\n", err)
		return
	}

	dump, err := ast.Dump(analyzed)
	if err != nil {
		redColor.Fprintf(writer, "%v\n", err)
		return
	}
	yellowColor.Fprintf(writer, "%s\n", dump)
}
