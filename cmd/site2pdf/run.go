package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
)

// run dispatches the subcommand and returns the process exit code.
func run(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	switch args[0] {
	case "snapshot":
		return runSnapshotCmd(args[1:], env)

	case "version", "--version":
		fmt.Fprintf(env.Stdout, "site2pdf %s\n", Version)
		return ExitSuccess

	case "help", "--help", "-h":
		runHelp(args[1:], env)
		return ExitSuccess

	default:
		if strings.HasPrefix(args[0], "-") {
			fmt.Fprintf(env.Stderr, "unknown flag %q before command\n\n", args[0])
		} else {
			fmt.Fprintf(env.Stderr, "unknown command %q\n\n", args[0])
		}
		printUsage(env.Stderr)
		return ExitUsage
	}
}

// runSnapshotCmd parses flags and runs the snapshot with signal-aware
// cancellation: Ctrl-C stops between pages and keeps the work directory
// for the next run.
func runSnapshotCmd(args []string, env *Environment) int {
	flags, positional, err := parseSnapshotFlags(args)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runSnapshot(ctx, positional, flags, env); err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}
