// Package pipeline runs a build as an ordered set of named stages. Each stage receives the
// BuildContext produced by the previous one and returns an updated copy; the first failing
// stage ends the build and no later stage runs.
package pipeline

import (
	"log/slog"

	"github.com/skosovsky/toolgen"
	"github.com/skosovsky/toolgen/actions"
	"github.com/skosovsky/toolgen/clientcfg"
	"github.com/skosovsky/toolgen/clientmod"
	"github.com/skosovsky/toolgen/emit"
	"github.com/skosovsky/toolgen/ir"
	"github.com/skosovsky/toolgen/schemadef"
)

// BuildContext is the state threaded through the stages of one build. Definition and
// Project are inputs; the other fields are filled in by stages.
type BuildContext struct {
	Definition *schemadef.Definition
	Project    *clientcfg.Project

	Mapper      *ir.Mapper
	Modules     *clientmod.Registry
	Resolutions []clientcfg.Resolution
	Units       []emit.Unit
	Actions     []actions.Spec
	Warnings    []ir.Warning

	// Tools, when set, receives the bound actions.
	Tools  *toolgen.Registry
	Logger *slog.Logger
}

func (bc BuildContext) logger() *slog.Logger {
	if bc.Logger == nil {
		return slog.Default()
	}
	return bc.Logger
}

// packageName is the Go package the generated types are emitted into.
func (bc BuildContext) packageName() string {
	if bc.Project == nil || bc.Project.Package == "" {
		return emit.DefaultPackage
	}
	return bc.Project.Package
}
