package modules

import (
	"fmt"
	"strconv"

	"go.trai.ch/ply/internal/core/domain"
	"go.trai.ch/zerr"
)

// StringArg extracts a string argument. Returns ok=false when absent.
func StringArg(args domain.Vars, key string) (val string, ok bool, err error) {
	raw, present := args[key]
	if !present || raw == nil {
		return "", false, nil
	}
	switch v := raw.(type) {
	case string:
		return v, true, nil
	case int, int64, float64, bool:
		return fmt.Sprint(v), true, nil
	default:
		return "", false, zerr.With(domain.ErrModuleArgInvalid, "arg", key)
	}
}

// AliasedStringArg extracts the first of the aliased keys that is set.
func AliasedStringArg(args domain.Vars, keys ...string) (val string, ok bool, err error) {
	for _, key := range keys {
		val, ok, err = StringArg(args, key)
		if err != nil || ok {
			return val, ok, err
		}
	}
	return "", false, nil
}

// BoolArg extracts a boolean argument, accepting YAML booleans and the
// yes/no strings common in playbooks. Returns def when absent.
func BoolArg(args domain.Vars, key string, def bool) (bool, error) {
	raw, present := args[key]
	if !present || raw == nil {
		return def, nil
	}
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		switch v {
		case "yes", "Yes", "YES", "y", "true", "True":
			return true, nil
		case "no", "No", "NO", "n", "false", "False":
			return false, nil
		}
		if b, err := strconv.ParseBool(v); err == nil {
			return b, nil
		}
	}
	return false, zerr.With(domain.ErrModuleArgInvalid, "arg", key)
}
