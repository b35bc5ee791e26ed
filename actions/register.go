package actions

import (
	"fmt"

	"github.com/skosovsky/toolgen"
	"github.com/skosovsky/toolgen/clientmod"
)

// Register binds every spec to the module named by its binding and registers the tools in
// reg. Nothing is registered unless every spec binds.
func Register(reg *toolgen.Registry, specs []Spec, modules *clientmod.Registry, opts ...toolgen.ToolOption) error {
	tools := make([]toolgen.Tool, 0, len(specs))
	for _, s := range specs {
		m, ok := modules.Named(s.Binding.Module)
		if !ok {
			return fmt.Errorf("%w: %s (action %s)", ErrUnboundModule, s.Binding.Module, s.Name)
		}
		tool, err := Bind(s, m, opts...)
		if err != nil {
			return fmt.Errorf("bind action %s: %w", s.Name, err)
		}
		tools = append(tools, tool)
	}
	for _, t := range tools {
		reg.Register(t)
	}
	return nil
}
