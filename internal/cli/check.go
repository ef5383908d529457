package cli

import (
	"context"

	"github.com/spf13/cobra"

	bxerrors "github.com/vpoulailleau/boxaro/pkg/errors"
	"github.com/vpoulailleau/boxaro/pkg/parser"
)

// checkCommand creates the check command, which parses without rendering.
func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check FILES...",
		Short: "Parse files and report diagnostics",
		Long: `Parse each file and print every rejected line. The command fails when any
file is unreadable, declares no box, or has an error diagnostic. Warnings
alone do not fail.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd.Context(), args)
		},
	}
}

// runCheck parses every file in order and prints its diagnostics.
func (c *CLI) runCheck(ctx context.Context, files []string) error {
	runner, err := c.newRunner()
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := c.settings().PipelineOptions()
	bad := 0
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		result, err := runner.Check(ctx, path, popts)
		if result != nil {
			for _, d := range result.Diagnostics {
				if d.Severity == parser.SeverityError {
					c.printError("%s: %s", path, d)
				} else {
					c.printWarning("%s: %s", path, d)
				}
			}
		}
		switch {
		case err != nil:
			bad++
			c.printError("%s: %s", path, bxerrors.UserMessage(err))
		case result.HasErrors():
			bad++
		default:
			c.printSuccess("%s: %s", path, result.Stats.Stats)
		}
	}

	if bad > 0 {
		return bxerrors.New(bxerrors.ErrCodeInvalidInput, "%d of %d files have errors", bad, len(files))
	}
	return nil
}
