package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cmmoran/buildergen/internal/generator"
	"github.com/cmmoran/buildergen/pkg/action/generate"
)

func init() {
	rootCmd.AddCommand(NewGeneratorsCommand())
}

// NewGeneratorsCommand lists the registered generators in evaluation order.
func NewGeneratorsCommand() *cobra.Command {
	var manifestPath string
	c := &cobra.Command{
		Use:   "generators",
		Short: "list method generators",
		RunE: func(c *cobra.Command, args []string) error {
			r, err := generate.Registry(manifestPath)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(c.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "NAME\tPRIORITY\tBAND")
			for _, g := range r.Generators() {
				_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\n", g.Name(), g.Priority(), generator.BandName(g.Priority()))
			}
			return tw.Flush()
		},
	}
	c.Flags().StringVarP(&manifestPath, "generators", "g", "", "generator manifest selecting the generators to run")
	return c
}
