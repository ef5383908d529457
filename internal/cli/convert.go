package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	bxio "github.com/vpoulailleau/boxaro/pkg/io"
	"github.com/vpoulailleau/boxaro/pkg/pipeline"
	"github.com/vpoulailleau/boxaro/pkg/render"
)

// convertOpts holds the command-line flags for a single conversion.
type convertOpts struct {
	input    string  // boxaro source file
	output   string  // destination file
	format   string  // explicit output format, overrides the extension
	strict   bool    // fail on any error diagnostic
	scale    float64 // PNG scale factor
	refresh  bool    // ignore cached artifacts
	validate bool    // check the DOT with Graphviz
}

// convertCommand creates the root command, which converts one file.
func (c *CLI) convertCommand() *cobra.Command {
	var opts convertOpts

	cmd := &cobra.Command{
		Use:   appName + " -i INPUT -o OUTPUT",
		Short: "Boxaro draws box diagrams described in an indented text language",
		Long: `Boxaro compiles an indentation-structured description of boxes, ports and
connections into a Graphviz DOT document, and optionally renders it to
SVG, PNG, JPG or PDF.

The output format is taken from --format, else from the output file
extension (.gv, .dot, .svg, .png, .jpg, .pdf), else from the config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input-file", "i", "", "boxaro source file")
	cmd.Flags().StringVarP(&opts.output, "output-file", "o", "", "output file")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: dot, svg, png, jpg, pdf")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail when any line is rejected")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "PNG scale factor (default 1)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when a cached artifact exists")
	cmd.Flags().BoolVar(&opts.validate, "validate", false, "check the generated DOT with Graphviz")
	_ = cmd.MarkFlagRequired("input-file")
	_ = cmd.MarkFlagRequired("output-file")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

// runConvert converts opts.input and writes the artifact to opts.output.
func (c *CLI) runConvert(ctx context.Context, opts *convertOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	format, err := resolveFormat(opts.format, opts.output, c.settings().Format)
	if err != nil {
		return err
	}

	runner, err := c.newRunner()
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := c.pipelineOptions(format, opts.strict)
	popts.Scale = opts.scale
	popts.Refresh = opts.refresh
	popts.Validate = opts.validate

	result, err := runner.ConvertFile(ctx, opts.input, popts)
	if err != nil {
		return err
	}
	if err := bxio.ExportFile(opts.output, result.Artifact); err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Converted %s", opts.input))
	c.printSuccess("Wrote %s", opts.output)
	c.printStats(result)
	return nil
}

// pipelineOptions merges the config with command-line flags.
func (c *CLI) pipelineOptions(format render.Format, strict bool) pipeline.Options {
	popts := c.settings().PipelineOptions()
	popts.Format = format
	popts.Strict = popts.Strict || strict
	return popts
}

// resolveFormat picks the output format: the flag, else the output
// extension, else the configured format, else DOT.
func resolveFormat(flag, output, configured string) (render.Format, error) {
	if flag != "" {
		return render.ParseFormat(flag)
	}
	if f, ok := render.FormatFromPath(output); ok {
		return f, nil
	}
	if configured != "" {
		return render.ParseFormat(configured)
	}
	return pipeline.DefaultFormat, nil
}

// completeFormats provides shell completion for --format.
func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return render.FormatNames(), cobra.ShellCompDirectiveNoFileComp
}
