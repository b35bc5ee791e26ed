package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/skosovsky/toolgen/clientcfg"
	"github.com/skosovsky/toolgen/pipeline"
	"github.com/skosovsky/toolgen/schemadef"
)

const (
	configEnv     = "TOOLGEN_CONFIG"
	defaultConfig = "toolgen.toml"
)

// cli holds the flags shared by every subcommand.
type cli struct {
	configPath string
	schemaPath string
	verbose    bool

	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	c := &cli{stdout: stdout, stderr: stderr}
	root := &cobra.Command{
		Use:           "toolgen",
		Short:         "Generate Go types and actions from a schema definition",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "project file (default $"+configEnv+" or "+defaultConfig+")")
	root.PersistentFlags().StringVar(&c.schemaPath, "schema", "", "schema file, overrides the project's schema")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log every stage")

	root.AddCommand(c.generateCmd())
	root.AddCommand(c.actionsCmd())
	root.AddCommand(c.checkCmd())
	return root
}

func (c *cli) logger() *slog.Logger {
	level := slog.LevelInfo
	if c.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(c.stderr, &slog.HandlerOptions{Level: level}))
}

func (c *cli) resolveConfigPath() string {
	if c.configPath != "" {
		return c.configPath
	}
	if p := os.Getenv(configEnv); p != "" {
		return p
	}
	return defaultConfig
}

// build loads the project and schema and runs the canonical pipeline. Nothing is written.
func (c *cli) build(ctx context.Context) (pipeline.BuildContext, error) {
	logger := c.logger()
	project, err := clientcfg.Load(c.resolveConfigPath())
	if err != nil {
		return pipeline.BuildContext{}, err
	}
	schemaPath := project.Schema
	if c.schemaPath != "" {
		schemaPath = c.schemaPath
	}
	if schemaPath == "" {
		return pipeline.BuildContext{}, fmt.Errorf("no schema file: set schema in %s or pass --schema", c.resolveConfigPath())
	}
	def, err := schemadef.FileLoader{Label: project.SourceLabel}.Load(ctx, schemaPath)
	if err != nil {
		return pipeline.BuildContext{}, err
	}
	o := pipeline.New(pipeline.Canonical(nil), pipeline.WithLogger(logger))
	return o.Run(ctx, pipeline.BuildContext{Definition: def, Project: project})
}
