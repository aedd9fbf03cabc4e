package cmd

import (
	"fmt"

	"github.com/gophertribe/devtool/test"
	"github.com/spf13/cobra"
)

// QualityCmds wraps the devtool test runners. integration-test expects a
// TCS3472 reachable through the default bridge.
func QualityCmds() []*cobra.Command {
	checks := []struct {
		use, short string
		run        func() error
	}{
		{"test", "Run unit tests", func() error { return test.Test() }},
		{"lint", "Run linters", func() error { return test.Lint() }},
		{"integration-test", "Run tests against attached hardware", func() error { return test.Integ() }},
	}
	cmds := make([]*cobra.Command, 0, len(checks))
	for _, check := range checks {
		cmds = append(cmds, &cobra.Command{
			Use:   check.use,
			Short: check.short,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := check.run(); err != nil {
					return fmt.Errorf("%s failed: %w", check.use, err)
				}
				return nil
			},
		})
	}
	return cmds
}
