package domain

import (
	"fmt"
	"regexp"
	"strings"

	"go.trai.ch/zerr"
)

// Vars is a variable map attached to hosts, plays or the CLI.
type Vars map[string]any

// MergeVars flattens the given layers into a new map. Later layers win,
// so callers pass them in ascending precedence order
// (inventory < play < extra-vars).
func MergeVars(layers ...Vars) Vars {
	out := Vars{}
	for _, layer := range layers {
		for k, v := range layer {
			out[k] = v
		}
	}
	return out
}

var varRefPattern = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_.]*)\s*\}\}`)

// Interpolate substitutes {{ var }} references in s from the map.
// Dotted names descend into nested maps. Unresolved references fail so
// typos surface instead of converging the wrong state.
func (v Vars) Interpolate(s string) (string, error) {
	var firstErr error
	out := varRefPattern.ReplaceAllStringFunc(s, func(ref string) string {
		name := varRefPattern.FindStringSubmatch(ref)[1]
		val, ok := v.lookup(name)
		if !ok {
			if firstErr == nil {
				firstErr = zerr.With(ErrUndefinedVariable, "name", name)
			}
			return ref
		}
		return fmt.Sprint(val)
	})
	return out, firstErr
}

func (v Vars) lookup(name string) (any, bool) {
	parts := strings.Split(name, ".")
	var cur any = map[string]any(v)
	for _, p := range parts {
		m, ok := cur.(map[string]any)
		if !ok {
			if vm, isVars := cur.(Vars); isVars {
				m = vm
			} else {
				return nil, false
			}
		}
		cur, ok = m[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// InterpolateArgs resolves {{ var }} references in every string value
// of an action argument map, returning a new map.
func (v Vars) InterpolateArgs(args Vars) (Vars, error) {
	out := make(Vars, len(args))
	for k, val := range args {
		s, ok := val.(string)
		if !ok {
			out[k] = val
			continue
		}
		resolved, err := v.Interpolate(s)
		if err != nil {
			return nil, err
		}
		out[k] = resolved
	}
	return out, nil
}
