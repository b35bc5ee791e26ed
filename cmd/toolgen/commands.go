package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/skosovsky/toolgen/emit"
	"github.com/skosovsky/toolgen/pipeline"
)

func (c *cli) generateCmd() *cobra.Command {
	var (
		outDir string
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write one Go file per schema class and enum",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bc, err := c.build(cmd.Context())
			if err != nil {
				return err
			}
			dir := outDir
			if dir == "" {
				dir = bc.Project.Output
			}
			if dir == "" {
				dir = emit.DefaultPackage
			}
			if dryRun {
				for _, u := range bc.Units {
					fmt.Fprintln(c.stdout, filepath.Join(dir, u.FileName))
				}
				return nil
			}
			if err := writeUnits(dir, bc.Units); err != nil {
				return err
			}
			fmt.Fprintf(c.stdout, "wrote %d files to %s (%d warnings)\n", len(bc.Units), dir, len(bc.Warnings))
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory, overrides the project's output")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list the files that would be written")
	return cmd
}

func (c *cli) actionsCmd() *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "actions",
		Short: "List the actions synthesized from imported functions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bc, err := c.build(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput {
				data, err := json.MarshalIndent(bc.Actions, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal actions: %w", err)
				}
				fmt.Fprintln(c.stdout, string(data))
				return nil
			}
			w := tabwriter.NewWriter(c.stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTAG\tMODULE\tFUNCTION\tRETURNS")
			for _, s := range bc.Actions {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", s.Name, s.Tag, s.Binding.Module, s.Function, s.Return.GoType)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

func (c *cli) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the project and schema without writing files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bc, err := c.build(cmd.Context())
			out := pipeline.OutcomeOf(bc, err)
			if out.State == pipeline.StateFailed {
				if out.Stage != "" {
					fmt.Fprintf(c.stdout, "failed at %s\n", out.Stage)
				}
				return err
			}
			fmt.Fprintf(c.stdout, "ok: %d types, %d actions, %d warnings\n", len(bc.Units), len(bc.Actions), len(bc.Warnings))
			for _, w := range bc.Warnings {
				fmt.Fprintf(c.stdout, "warning: %s\n", w)
			}
			return nil
		},
	}
}

// writeUnits writes every unit into dir. It runs only after a completed build.
func writeUnits(dir string, units []emit.Unit) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	for _, u := range units {
		if err := os.WriteFile(filepath.Join(dir, u.FileName), u.Source, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", u.FileName, err)
		}
	}
	return nil
}
