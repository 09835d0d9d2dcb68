// nagc is the front-end of the Naughtiness compiler. It lexes, parses
// and semantically analyzes .nag sources, producing an AST for the
// downstream stages, with optional JSON dumps and a parse-trace log for
// debugging.
//
// Usage:
//
//	nagc compile --path file.nag            compile one file
//	nagc compile --path-recursive src/      compile a tree of files
//	nagc compile --debug --ast --path a.nag debug output plus .ast dump
//	nagc repl                               interactive front-end
//
// Exit codes: 0 success, -1 compile failure, -2 unknown command,
// -3 invalid arguments.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nagc-lang/nagc/driver"
	"github.com/nagc-lang/nagc/repl"
)

const version = "0.1.0"

func main() {
	exitStatus := driver.Success

	rootCmd := &cobra.Command{
		Use:           "nagc",
		Short:         "Naughtiness compiler front-end",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Usage()
			exitStatus = driver.UnknownCommand
		},
	}

	compileCmd := &cobra.Command{
		Use:   "compile [options]",
		Short: "Compile .nag sources to an AST",
		// The path options consume positional runs that a flag parser
		// would misread, so the raw arguments go to options.Parse.
		DisableFlagParsing: true,
		Run: func(cmd *cobra.Command, args []string) {
			exitStatus = driver.RunCompile(args)
		},
	}

	replCmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive front-end",
		Run: func(cmd *cobra.Command, args []string) {
			if err := repl.NewRepl("nag >>> ", version).Start(os.Stdout); err != nil {
				exitStatus = driver.CompileFailure
			}
		},
	}

	rootCmd.AddCommand(compileCmd, replCmd)

	if err := rootCmd.Execute(); err != nil {
		// cobra reports unrecognized subcommands as errors.
		os.Exit(int(driver.UnknownCommand))
	}
	os.Exit(int(exitStatus))
}
