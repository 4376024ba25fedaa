package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"backlog/internal/preflight"
)

const statusLabelWidth = 16

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check directories, the catalog lock and configured services",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			results := preflight.RunAll(cmd.Context(), cfg)
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, r := range results {
				fmt.Fprintln(out, renderStatusLine(r, colorize))
			}
			if failed := preflight.Failed(results); len(failed) > 0 {
				return fmt.Errorf("%d %s failed", len(failed), plural("check", len(failed)))
			}
			return nil
		},
	}
}

func renderStatusLine(r preflight.Result, colorize bool) string {
	label, color := "OK", ansiGreen
	if !r.Passed {
		label, color = "FAIL", ansiRed
	}
	line := fmt.Sprintf("  %-*s [%s] %s", statusLabelWidth, r.Name+":", label, r.Detail)
	if colorize {
		return color + line + ansiReset
	}
	return line
}
