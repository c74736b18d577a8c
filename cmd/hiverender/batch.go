package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	renderer "github.com/openhive-network/denser-sub002"
	"github.com/openhive-network/denser-sub002/internal/fileutil"
)

// filePermissions is rw-r--r--: owner read+write, others read.
const filePermissions = 0o644

// Sentinel errors for batch operations.
var (
	ErrReadInput   = errors.New("failed to read input")
	ErrWriteOutput = errors.New("failed to write output")
)

// HTMLRenderer is the part of *renderer.Renderer the CLI needs.
type HTMLRenderer interface {
	RenderResult(ctx context.Context, input string) (*renderer.Result, error)
}

// Compile-time interface implementation check.
var _ HTMLRenderer = (*renderer.Renderer)(nil)

// RenderOutcome holds the outcome of a single file.
type RenderOutcome struct {
	InputPath  string
	OutputPath string
	Downgrades int
	Err        error
	Duration   time.Duration
}

// renderBatch renders files with up to workers goroutines sharing r.
// Outcomes keep the order of files.
func renderBatch(ctx context.Context, r HTMLRenderer, workers int, files []FileToRender) []RenderOutcome {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(workers, len(files))
	concurrency = max(concurrency, 1)

	results := make([]RenderOutcome, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = RenderOutcome{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = renderFile(ctx, r, files[idx])
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// renderFile renders a single file and writes its HTML.
func renderFile(ctx context.Context, r HTMLRenderer, f FileToRender) RenderOutcome {
	start := time.Now()
	outcome := RenderOutcome{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	fail := func(err error) RenderOutcome {
		outcome.Err = err
		outcome.Duration = time.Since(start)
		return outcome
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return fail(fmt.Errorf("%w: %w", ErrReadInput, err))
	}

	res, err := r.RenderResult(ctx, string(content))
	if err != nil {
		return fail(err)
	}
	outcome.Downgrades = len(res.Errors)

	if err := writeOutput(f.OutputPath, res.HTML); err != nil {
		return fail(err)
	}

	outcome.Duration = time.Since(start)
	return outcome
}

func writeOutput(path, html string) error {
	if err := fileutil.WriteFile(path, []byte(html), filePermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}

// ResultSummary holds the count of succeeded and failed renders.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed renders.
func countResults(results []RenderOutcome) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults writes one line per outcome and returns the summary.
func printResults(results []RenderOutcome, quiet, verbose bool, env *Environment) ResultSummary {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v, %d replaced)\n",
				r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond), r.Downgrades)
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary
}

// firstError returns the first failure in input order.
func firstError(results []RenderOutcome) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}
