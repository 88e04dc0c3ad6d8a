package playbook

import (
	"os"
	"strings"

	"go.trai.ch/ply/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// ParseExtraVars folds a list of --extra-vars arguments into one map.
// Each argument is either space-separated k=v pairs, an inline YAML/JSON
// mapping, or @file pointing at a vars file. Later arguments win.
func ParseExtraVars(args []string) (domain.Vars, error) {
	merged := domain.Vars{}
	for _, arg := range args {
		vars, err := parseExtraVarsArg(arg)
		if err != nil {
			return nil, err
		}
		merged = domain.MergeVars(merged, vars)
	}
	return merged, nil
}

func parseExtraVarsArg(arg string) (domain.Vars, error) {
	trimmed := strings.TrimSpace(arg)

	if path, ok := strings.CutPrefix(trimmed, "@"); ok {
		data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrVarsParseFailed.Error()), "file", path)
		}
		return unmarshalVars(data, path)
	}

	if strings.HasPrefix(trimmed, "{") {
		return unmarshalVars([]byte(trimmed), "")
	}

	vars := domain.Vars{}
	for _, field := range strings.Fields(trimmed) {
		k, v, ok := strings.Cut(field, "=")
		if !ok || k == "" {
			return nil, zerr.With(domain.ErrVarsParseFailed, "arg", field)
		}
		vars[k] = v
	}
	return vars, nil
}

func unmarshalVars(data []byte, source string) (domain.Vars, error) {
	var vars domain.Vars
	if err := yaml.Unmarshal(data, &vars); err != nil {
		err = zerr.Wrap(err, domain.ErrVarsParseFailed.Error())
		if source != "" {
			err = zerr.With(err, "file", source)
		}
		return nil, err
	}
	return vars, nil
}
