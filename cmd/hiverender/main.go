package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	flags, positional, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitUsage)
	}

	// maxprocs.Set only fails on an invalid GOMAXPROCS env value, in which
	// case the runtime default stays in place.
	if flags.verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	ctx, stop := notifyContext(context.Background())
	err = run(ctx, flags, positional, DefaultEnv())
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "hiverender: %v%s\n", err, hintFor(err, flags.config))
	}
	os.Exit(exitCodeFor(err))
}
