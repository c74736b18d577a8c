package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage wraps flag parsing failures.
var ErrUsage = errors.New("invalid usage")

// cliFlags holds every command line flag.
type cliFlags struct {
	output      string
	config      string
	baseURL     string
	locale      string
	workers     int
	breaks      bool
	noImages    bool
	allowInsec  bool
	printConfig bool
	quiet       bool
	verbose     bool
	version     bool
}

// parseFlags parses args (without the program name) and returns the
// positional arguments.
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("hiverender", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &cliFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory (default: stdout, or next to each input)")
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.baseURL, "base-url", "", "site the content is rendered for (overrides config)")
	fs.StringVar(&f.locale, "locale", "", "language of placeholders and warnings (overrides config)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.breaks, "breaks", false, "turn single newlines into <br>")
	fs.BoolVar(&f.noImages, "no-images", false, "replace images with a placeholder")
	fs.BoolVar(&f.allowInsec, "allow-insecure-scripts", false, "skip the security check (dangerous)")
	fs.BoolVar(&f.printConfig, "print-config", false, "print the effective config as YAML and exit")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed progress")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %v\n\n%s", ErrUsage, err, usage(fs))
	}
	if f.workers < 0 {
		return nil, nil, fmt.Errorf("%w: %d", ErrInvalidWorkerCount, f.workers)
	}
	if f.quiet && f.verbose {
		return nil, nil, fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", ErrUsage)
	}
	return f, fs.Args(), nil
}

func usage(fs *flag.FlagSet) string {
	return "Usage: hiverender [flags] [file|dir ...]\n\n" +
		"Renders Hive post bodies (markdown or HTML) to safe HTML.\n" +
		"Reads stdin when no input is given.\n\n" +
		"Flags:\n" + fs.FlagUsages()
}
