package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmmoran/buildergen/pkg/action/snapshot"
)

func init() {
	rootCmd.AddCommand(NewSnapshotCommand())
}

func NewSnapshotCommand() *cobra.Command {
	var manifestPath, name, ver string

	snapCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "versioned builder definitions",
		Long:  "Generate builder definitions into a versioned directory and record them in a manifest",
		RunE: func(c *cobra.Command, args []string) error {
			opts, err := runOptions(c)
			if err != nil {
				return err
			}
			dir, err := snapshot.Generate(c.Context(), opts, manifestPath, name, ver)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(c.OutOrStdout(), "%s %s -> %s\n", name, ver, dir)
			return nil
		},
	}
	snapCmd.PersistentFlags().StringVar(&manifestPath, "manifest", "builders/manifest.yaml", "snapshot manifest")
	snapCmd.Flags().StringVar(&name, "name", "builders", "snapshot name")
	snapCmd.Flags().StringVar(&ver, "version", "", "snapshot version (semver, e.g. v1.2.0)")
	_ = snapCmd.MarkFlagRequired("version")
	addRunFlags(snapCmd)

	snapCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "list recorded snapshots",
		RunE: func(c *cobra.Command, args []string) error {
			m, err := snapshot.List(manifestPath)
			if err != nil {
				return err
			}
			for _, s := range m.Snapshots {
				marker := " "
				if s.Version == m.CurrentVersion {
					marker = "*"
				}
				_, _ = fmt.Fprintf(c.OutOrStdout(), "%s %s\t%s\t%s\n", marker, s.Version, s.Name, s.Dir)
			}
			return nil
		},
	})
	snapCmd.AddCommand(&cobra.Command{
		Use:   "diff",
		Short: "diff the current snapshot against the previous one",
		RunE: func(c *cobra.Command, args []string) error {
			d, err := snapshot.DiffCurrentWithPrevious(manifestPath)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(c.OutOrStdout(), d)
			return nil
		},
	})
	return snapCmd
}
