package main

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"
)

// runMain dispatches a command and returns the process exit code.
// args includes the program name.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	switch cmd {
	case "generate", "watch":
		ctx, stop := notifyContext(context.Background())
		defer stop()

		run := runGenerate
		if cmd == "watch" {
			run = runWatch
		}
		return finish(run(ctx, rest, env), env)

	case "doctor":
		return runDoctorCmd(rest, env)

	case "version", "--version":
		fmt.Fprintf(env.Stdout, "mdpages %s\n", Version)
		return ExitSuccess

	case "help", "-h", "--help":
		runHelp(rest, env)
		return ExitSuccess

	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}
}

// finish prints err and maps it to an exit code.
func finish(err error, env *Environment) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	fmt.Fprintf(env.Stderr, "error: %v\n", err)
	return exitCodeFor(err)
}
