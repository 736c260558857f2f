package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dcrodman/cipherkit/internal/selftest"
)

var selftestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "Runs the known-answer tests for every algorithm",
	Args:  cobra.NoArgs,
	RunE:  SelftestCommand,
}

func SelftestCommand(cmd *cobra.Command, _ []string) error {
	report := selftest.Run(logger)
	if report.Failed() {
		return fmt.Errorf("%d of %d vectors failed", len(report.Failures()), len(report.Results))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "ok: %d vectors passed\n", len(report.Results))
	return nil
}
