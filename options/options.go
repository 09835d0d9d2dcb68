// Package options parses the arguments of the compile command. The
// option surface is position-independent and the path options consume
// consecutive positional arguments until one ceases to be an existing
// path, so parsing is hand-rolled rather than delegated to a flag
// library.
package options

import (
	"fmt"
	"os"
	"path/filepath"
)

// Source and output file extensions.
const (
	NAG_EXTENSION = "nag"
	AST_EXTENSION = "ast"
)

// CompileOptions is the parsed form of the compile command's arguments.
//
// Fields:
//   - IsDebug: user-visible diagnostics requested (--debug)
//   - IsCompilerDebug: parse-trace log requested (--debug-compiler)
//   - IsOutputAST: AST emission requested (--ast)
//   - TargetList: resolved list of .nag files to compile
type CompileOptions struct {
	IsDebug         bool
	IsCompilerDebug bool
	IsOutputAST     bool
	TargetList      []string
}

// Parse builds CompileOptions from the raw argument list.
//
// Recognized options:
//   - --path <p>…            add files / direct directory entries
//   - --path-recursive <p>…  as --path, but descend into directories
//   - --debug                enable user-visible diagnostics
//   - --debug-compiler       emit the parse-trace log
//   - --ast                  emit the AST next to each input
//
// Any other option is an error, which the driver maps onto the
// InvalidArgs exit status.
func Parse(args []string) (*CompileOptions, error) {
	opts := &CompileOptions{}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--path":
			paths := extractPaths(args[i+1:])
			i += len(paths)
			for _, path := range paths {
				files, err := collectFiles(path, false)
				if err != nil {
					return nil, err
				}
				opts.TargetList = append(opts.TargetList, files...)
			}

		case "--path-recursive":
			paths := extractPaths(args[i+1:])
			i += len(paths)
			for _, path := range paths {
				files, err := collectFiles(path, true)
				if err != nil {
					return nil, err
				}
				opts.TargetList = append(opts.TargetList, files...)
			}

		case "--debug":
			opts.IsDebug = true

		case "--debug-compiler":
			opts.IsCompilerDebug = true

		case "--ast":
			opts.IsOutputAST = true

		default:
			return nil, fmt.Errorf("unknown option %q", args[i])
		}
	}

	return opts, nil
}

// extractPaths takes the leading run of arguments that name existing
// paths. The first argument that does not exist on disk ends the run.
func extractPaths(args []string) []string {
	var paths []string
	for _, arg := range args {
		if _, err := os.Stat(arg); err != nil {
			break
		}
		paths = append(paths, arg)
	}
	return paths
}

// collectFiles resolves one path argument into .nag files. A file is
// taken when it carries the .nag extension; a directory contributes its
// regular files, and its subdirectories too when recursive is set.
func collectFiles(target string, recursive bool) ([]string, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("cannot read %q: %w", target, err)
	}

	if !info.IsDir() {
		if extensionOf(target) == NAG_EXTENSION {
			return []string{target}, nil
		}
		return nil, nil
	}

	entries, err := os.ReadDir(target)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %q: %w", target, err)
	}

	var files []string
	for _, entry := range entries {
		path := filepath.Join(target, entry.Name())
		if entry.IsDir() {
			if !recursive {
				continue
			}
			nested, err := collectFiles(path, recursive)
			if err != nil {
				return nil, err
			}
			files = append(files, nested...)
			continue
		}
		if extensionOf(path) == NAG_EXTENSION {
			files = append(files, path)
		}
	}

	return files, nil
}

// extensionOf returns the file extension without its leading dot.
func extensionOf(path string) string {
	ext := filepath.Ext(path)
	if len(ext) > 0 && ext[0] == '.' {
		return ext[1:]
	}
	return ext
}

// ASTOutputPath returns the .ast path next to the given input file.
func ASTOutputPath(input string) string {
	ext := filepath.Ext(input)
	return input[:len(input)-len(ext)] + "." + AST_EXTENSION
}
