package pipeline

import (
	"context"
	"slices"

	"github.com/skosovsky/toolgen/actions"
	"github.com/skosovsky/toolgen/clientmod"
	"github.com/skosovsky/toolgen/emit"
	"github.com/skosovsky/toolgen/ir"
)

// Names of the canonical stages.
const (
	StageValidateConfig    = "validate-config"
	StageSynthesizeClients = "synthesize-clients"
	StageGenerateTypes     = "generate-types"
	StageSynthesizeActions = "synthesize-actions"
)

// Canonical returns the stages of a full build. factory builds the backend of every
// synthesized module; nil produces generation-only modules.
func Canonical(factory clientmod.BackendFactory) []Stage {
	return []Stage{
		ValidateConfig(),
		SynthesizeClients(factory),
		GenerateTypes(),
		SynthesizeActions(),
	}
}

// ValidateConfig checks the project's client identifiers and resolves the client of
// every resource. It fails before anything is synthesized.
func ValidateConfig() Stage {
	return NewStage(StageValidateConfig, func(_ context.Context, bc BuildContext) (BuildContext, error) {
		if bc.Project == nil {
			return bc, ErrNoProject
		}
		if bc.Definition == nil {
			return bc, ErrNoDefinition
		}
		if err := bc.Project.Validate(); err != nil {
			return bc, err
		}
		resolutions, err := bc.Project.Resolutions()
		if err != nil {
			return bc, err
		}
		bc.Resolutions = resolutions
		if bc.Mapper == nil {
			bc.Mapper = ir.NewMapper(bc.Definition)
		}
		return bc, nil
	}, RunsBefore(StageSynthesizeClients, StageGenerateTypes))
}

// SynthesizeClients creates one module per resolved client. Resources sharing a client
// share its module.
func SynthesizeClients(factory clientmod.BackendFactory) Stage {
	return NewStage(StageSynthesizeClients, func(_ context.Context, bc BuildContext) (BuildContext, error) {
		if bc.Modules == nil {
			bc.Modules = clientmod.NewRegistry(factory)
		}
		for _, res := range bc.Resolutions {
			m, err := bc.Modules.SynthesizeResolution(res)
			if err != nil {
				return bc, err
			}
			bc.logger().Debug("client module", "module", m.Name, "path", m.SourcePath)
		}
		return bc, nil
	}, RunsAfter(StageValidateConfig), RunsBefore(StageSynthesizeActions))
}

// GenerateTypes emits one unit per schema class and enum. Mapping degradations are
// collected as warnings.
func GenerateTypes() Stage {
	return NewStage(StageGenerateTypes, func(ctx context.Context, bc BuildContext) (BuildContext, error) {
		units, warnings, err := emit.Generate(bc.Definition, bc.Mapper, bc.packageName())
		if err != nil {
			return bc, err
		}
		bc.Units = units
		bc.Warnings = slices.Concat(bc.Warnings, warnings)
		logWarnings(ctx, bc, warnings)
		return bc, nil
	}, RunsAfter(StageValidateConfig), RunsBefore(StageSynthesizeActions))
}

// SynthesizeActions derives the actions of every imported function, bound to the module
// of the resource that imported it first. When bc.Tools is set, the actions are also
// registered as tools.
func SynthesizeActions() Stage {
	return NewStage(StageSynthesizeActions, func(ctx context.Context, bc BuildContext) (BuildContext, error) {
		var imports []actions.Import
		for i, res := range bc.Project.Resources {
			opts := actions.Options{DisableTelemetry: res.DisableTelemetry, Timeout: res.Timeout}
			for _, fn := range res.Import {
				imports = append(imports, actions.Import{Function: fn, Module: bc.Resolutions[i].Module, Options: opts})
			}
		}
		specs, warnings, err := actions.Synthesize(bc.Definition, imports, bc.Mapper, ir.Qualified(bc.packageName()))
		if err != nil {
			return bc, err
		}
		if bc.Tools != nil {
			if err := actions.Register(bc.Tools, specs, bc.Modules); err != nil {
				return bc, err
			}
		}
		bc.Actions = specs
		bc.Warnings = slices.Concat(bc.Warnings, warnings)
		logWarnings(ctx, bc, warnings)
		return bc, nil
	}, RunsAfter(StageSynthesizeClients, StageGenerateTypes))
}

func logWarnings(ctx context.Context, bc BuildContext, warnings []ir.Warning) {
	for _, w := range warnings {
		bc.logger().WarnContext(ctx, "schema mapping degraded", "owner", w.Owner, "field", w.Field, "type", w.Tag)
	}
}
