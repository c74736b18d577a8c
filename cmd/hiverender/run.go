package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	renderer "github.com/openhive-network/denser-sub002"
	"github.com/openhive-network/denser-sub002/internal/config"
)

// ErrNoInput is returned when the given paths hold no post files.
var ErrNoInput = errors.New("no input files found")

// run executes one CLI invocation. It never calls os.Exit.
func run(ctx context.Context, f *cliFlags, positional []string, env *Environment) error {
	if f.version {
		fmt.Fprintf(env.Stdout, "hiverender %s\n", Version)
		return nil
	}

	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}

	if f.printConfig {
		data, err := cfg.YAML()
		if err != nil {
			return err
		}
		_, err = env.Stdout.Write(data)
		return err
	}

	logger := newLogger(env.Stderr, f.quiet, f.verbose)
	r, err := renderer.New(cfg.Options(),
		renderer.WithLogger(logger),
		renderer.WithPhishing(cfg.Phishing()))
	if err != nil {
		return err
	}

	if len(positional) == 0 {
		return renderStdin(ctx, r, f.output, env)
	}

	files, err := discoverFiles(positional, f.output)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return ErrNoInput
	}

	workers := resolvePoolSize(f.workers)
	logger.Debug("rendering", "files", len(files), "workers", workers)

	results := renderBatch(ctx, r, workers, files)
	summary := printResults(results, f.quiet, f.verbose, env)
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d files failed: %w", summary.Failed, len(results), firstError(results))
	}
	return nil
}

// loadConfig reads the config file, if any, and applies flag overrides.
func loadConfig(f *cliFlags) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if f.config != "" {
		loaded, err := config.LoadConfig(f.config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if f.baseURL != "" {
		cfg.BaseURL = f.baseURL
	}
	if f.locale != "" {
		cfg.Locale = f.locale
	}
	if f.breaks {
		cfg.Breaks = true
	}
	if f.noImages {
		cfg.DoNotShowImages = true
	}
	if f.allowInsec {
		cfg.AllowInsecureScriptTags = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// renderStdin renders stdin to stdout, or to output when set.
func renderStdin(ctx context.Context, r HTMLRenderer, output string, env *Environment) error {
	content, err := io.ReadAll(env.Stdin)
	if err != nil {
		return fmt.Errorf("%w: stdin: %w", ErrReadInput, err)
	}

	res, err := r.RenderResult(ctx, string(content))
	if err != nil {
		return err
	}

	if output != "" {
		return writeOutput(output, res.HTML)
	}
	if _, err := io.WriteString(env.Stdout, res.HTML); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}
