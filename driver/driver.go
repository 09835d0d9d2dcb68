// Package driver runs the front-end pipeline over a list of source
// files: lexing, parsing, semantic analysis, and the optional debug
// outputs. It owns the process exit statuses of the CLI contract.
package driver

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/nagc-lang/nagc/ast"
	"github.com/nagc-lang/nagc/config"
	"github.com/nagc-lang/nagc/cst"
	"github.com/nagc-lang/nagc/lexer"
	"github.com/nagc-lang/nagc/options"
	"github.com/nagc-lang/nagc/parser"
	"github.com/nagc-lang/nagc/sema"
)

// ExitStatus is the process exit code of the CLI contract.
type ExitStatus int

const (
	Success        ExitStatus = 0
	CompileFailure ExitStatus = -1
	UnknownCommand ExitStatus = -2
	InvalidArgs    ExitStatus = -3
)

// Output colors, matching the interactive front-end's palette.
var (
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// RunCompile parses the compile arguments, applies nag.yaml defaults,
// and compiles the targets in order, stopping at the first one that
// fails. It returns the exit status the process should terminate with.
func RunCompile(args []string) ExitStatus {
	startTime := time.Now()

	opts, err := options.Parse(args)
	if err != nil {
		redColor.Fprintf(os.Stderr, "%v\n", err)
		return InvalidArgs
	}

	cfg, err := config.LoadDefault()
	if err != nil {
		redColor.Fprintf(os.Stderr, "%v\n", err)
		return InvalidArgs
	}
	applyConfig(opts, cfg)

	if len(opts.TargetList) == 0 {
		cyanColor.Fprintln(os.Stderr, "nothing to compile: no .nag files given")
		return Success
	}

	status := Success
	for _, target := range opts.TargetList {
		if err := compileFile(target, opts); err != nil {
			redColor.Fprintf(os.Stderr, "%s: %v\n", target, err)
			status = CompileFailure
			break
		}
		if opts.IsDebug {
			greenColor.Fprintf(os.Stderr, "%s: ok\n", target)
		}
	}

	if opts.IsDebug {
		yellowColor.Fprintf(os.Stderr, "exit %d, time %dms\n", status, time.Since(startTime).Milliseconds())
	}
	return status
}

// applyConfig fills option defaults from the project config. Switches
// are ORed; the config's target list applies only when the command line
// named no paths.
func applyConfig(opts *options.CompileOptions, cfg *config.Config) {
	opts.IsDebug = opts.IsDebug || cfg.Debug
	opts.IsCompilerDebug = opts.IsCompilerDebug || cfg.DebugCompiler
	opts.IsOutputAST = opts.IsOutputAST || cfg.AST

	if len(opts.TargetList) == 0 && len(cfg.Paths) > 0 {
		var pathArgs []string
		if cfg.PathsRecursive {
			pathArgs = append(pathArgs, "--path-recursive")
		} else {
			pathArgs = append(pathArgs, "--path")
		}
		pathArgs = append(pathArgs, cfg.Paths...)
		if fromConfig, err := options.Parse(pathArgs); err == nil {
			opts.TargetList = fromConfig.TargetList
		}
	}
}

// compileFile runs the full pipeline over one source file.
func compileFile(target string, opts *options.CompileOptions) error {
	source, err := os.ReadFile(target)
	if err != nil {
		return fmt.Errorf("cannot read source: %w", err)
	}

	tree, analyzed, err := Compile(string(source), opts.IsCompilerDebug, target+".log")
	if err != nil {
		return err
	}

	if opts.IsDebug {
		if err := tree.WriteJSON(target + ".cst.json"); err != nil {
			return fmt.Errorf("cannot write CST dump: %w", err)
		}
	}
	if opts.IsOutputAST {
		if err := ast.WriteJSON(analyzed, options.ASTOutputPath(target)); err != nil {
			return fmt.Errorf("cannot write AST: %w", err)
		}
	}

	return nil
}

// Compile runs lexer, parser and semantic analyzer over a source
// string. When traceFile is non-empty and tracing is requested, the
// parse trace is appended to it regardless of the parse outcome.
func Compile(source string, traceEnabled bool, traceFile string) (*cst.Node, *ast.Crate, error) {
	rawTokens, err := lexer.NewLexer(source).Tokenize()
	if err != nil {
		return nil, nil, err
	}

	par := parser.NewParser(rawTokens)
	tree, parseErr := par.Parse()
	if traceEnabled && traceFile != "" {
		if writeErr := par.WriteTraceLog(traceFile); writeErr != nil {
			return nil, nil, fmt.Errorf("cannot write trace log: %w", writeErr)
		}
	}
	if parseErr != nil {
		return nil, nil, parseErr
	}

	analyzed, err := sema.Check(tree)
	if err != nil {
		return nil, nil, err
	}

	return tree, analyzed, nil
}
