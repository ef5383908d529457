package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	bxerrors "github.com/vpoulailleau/boxaro/pkg/errors"
	bxio "github.com/vpoulailleau/boxaro/pkg/io"
	"github.com/vpoulailleau/boxaro/pkg/observability"
	"github.com/vpoulailleau/boxaro/pkg/render"
)

// batchOpts holds the command-line flags for the batch command.
type batchOpts struct {
	outDir string // destination directory, empty for next to each input
	format string // output format for every file
	jobs   int    // maximum concurrent conversions
	strict bool   // fail a file on any error diagnostic
}

// batchCommand creates the batch command for converting many files.
func (c *CLI) batchCommand() *cobra.Command {
	opts := batchOpts{jobs: runtime.GOMAXPROCS(0)}

	cmd := &cobra.Command{
		Use:   "batch [flags] FILES...",
		Short: "Convert many files concurrently",
		Long: `Convert every given file into OUTDIR/<name>.<ext>, where <name> is the
input file name without its extension. Without --out-dir each output is
written next to its input. A failing file does not stop the others.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBatch(cmd.Context(), args, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outDir, "out-dir", "d", "", "output directory")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: dot, svg, png, jpg, pdf")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", opts.jobs, "maximum concurrent conversions")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail a file when any line is rejected")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

// batchJob is one input and where its output goes.
type batchJob struct {
	input  string
	output string
}

// planBatch maps inputs to output paths and rejects two inputs that would
// write the same file.
func planBatch(inputs []string, outDir string, format render.Format) ([]batchJob, error) {
	jobs := make([]batchJob, 0, len(inputs))
	seen := make(map[string]string, len(inputs))
	for _, in := range inputs {
		base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
		dir := outDir
		if dir == "" {
			dir = filepath.Dir(in)
		}
		out := filepath.Join(dir, base+"."+format.Ext())
		if prev, dup := seen[out]; dup {
			return nil, bxerrors.New(bxerrors.ErrCodeInvalidInput, "%s and %s both write %s", prev, in, out)
		}
		seen[out] = in
		jobs = append(jobs, batchJob{input: in, output: out})
	}
	return jobs, nil
}

// runBatch converts every input, at most opts.jobs at a time.
func (c *CLI) runBatch(ctx context.Context, inputs []string, opts *batchOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	format, err := resolveFormat(opts.format, "", c.settings().Format)
	if err != nil {
		return err
	}
	jobs, err := planBatch(inputs, opts.outDir, format)
	if err != nil {
		return err
	}

	runner, err := c.newRunner()
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := c.pipelineOptions(format, opts.strict)
	counters := observability.NewCounters()
	c.addHooks(counters)

	var failed atomic.Int32
	g, gctx := errgroup.WithContext(ctx)
	if opts.jobs > 0 {
		g.SetLimit(opts.jobs)
	}
	for _, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result, err := runner.ConvertFile(gctx, job.input, popts)
			if err == nil {
				err = bxio.ExportFile(job.output, result.Artifact)
			}
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				failed.Add(1)
				logger.Error("conversion failed", "input", job.input, "err", bxerrors.UserMessage(err))
				c.printError("%s: %s", job.input, bxerrors.UserMessage(err))
				return nil
			}
			c.printFile(job.output)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	n := int(failed.Load())
	prog.done(fmt.Sprintf("Converted %d of %d files", len(jobs)-n, len(jobs)))
	stats := counters.Snapshot()
	c.printDetail("%d diagnostics · %d rendered · %d from cache", stats.Diagnostics, stats.Renders, stats.CacheHits)
	if n > 0 {
		return bxerrors.New(bxerrors.ErrCodeInvalidInput, "%d of %d files failed", n, len(jobs))
	}
	c.printSuccess("Converted %d files", len(jobs))
	return nil
}
