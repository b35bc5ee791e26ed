package ir

import (
	"errors"
	"strings"

	"github.com/skosovsky/toolgen/schemadef"
)

// ErrClassCycle is wrapped by CycleError.
var ErrClassCycle = errors.New("class reference cycle")

// CycleError reports classes that contain each other by value. Path starts and ends with
// the same class.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return ErrClassCycle.Error() + ": " + strings.Join(e.Path, " -> ") +
		" (make one of the fields optional or a list)"
}

func (e *CycleError) Unwrap() error { return ErrClassCycle }

// DetectClassCycles walks class fields that embed another class by value (required,
// non-list ClassRef) and returns a *CycleError for the first cycle found. References
// through Optional or List render as pointers or slices and cannot recurse unboundedly.
func DetectClassCycles(def *schemadef.Definition, m *Mapper) error {
	if def == nil {
		return nil
	}
	const (
		visiting = 1
		done     = 2
	)
	state := make(map[string]int, len(def.Classes))
	var path []string

	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case visiting:
			start := 0
			for i, n := range path {
				if n == name {
					start = i
					break
				}
			}
			cycle := append(append([]string(nil), path[start:]...), name)
			return &CycleError{Path: cycle}
		case done:
			return nil
		}
		state[name] = visiting
		path = append(path, name)
		for _, f := range def.Classes[name].Fields {
			t, _ := m.MapField(name, f.Name, f.Type, f.Optional)
			ref, ok := t.(ClassRef)
			if !ok {
				continue
			}
			if err := visit(ref.Name); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		state[name] = done
		return nil
	}

	for _, name := range def.ClassNames() {
		if err := visit(name); err != nil {
			return err
		}
	}
	return nil
}
