// Package playbook provides the YAML playbook loader adapter.
package playbook

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"go.trai.ch/ply/internal/core/domain"
	"go.trai.ch/ply/internal/modules"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.PlaybookLoader using gopkg.in/yaml.v3 plus a
// JSON schema syntax check.
type Loader struct {
	registry *modules.Registry
}

// NewLoader creates a playbook loader that resolves module names
// against the given registry.
func NewLoader(registry *modules.Registry) *Loader {
	return &Loader{registry: registry}
}

// Load reads, schema-validates and decodes the playbook at path.
func (l *Loader) Load(path string) (*domain.Playbook, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(domain.ErrPlaybookNotFound, "path", path)
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrPlaybookReadFailed.Error()), "path", path)
	}

	if err := CheckSyntax(data); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	var dtos []playDTO
	if err := yaml.Unmarshal(data, &dtos); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrPlaybookParseFailed.Error()), "path", path)
	}
	if len(dtos) == 0 {
		return nil, zerr.With(domain.ErrPlaybookInvalid, "path", path)
	}

	pb := &domain.Playbook{Path: path}
	for i := range dtos {
		play, err := l.convertPlay(&dtos[i])
		if err != nil {
			return nil, zerr.With(err, "path", path)
		}
		pb.Plays = append(pb.Plays, *play)
	}
	return pb, nil
}

func (l *Loader) convertPlay(dto *playDTO) (*domain.Play, error) {
	if dto.Hosts == "" {
		return nil, zerr.With(domain.ErrPlaybookInvalid, "play", dto.Name)
	}

	play := &domain.Play{
		Name:  dto.Name,
		Hosts: dto.Hosts,
		Vars:  domain.Vars(dto.Vars),
		Tags:  domain.NewTagSet(dto.Tags...),
	}

	for i := range dto.Handlers {
		handler, err := l.convertTask(&dto.Handlers[i])
		if err != nil {
			return nil, err
		}
		play.Handlers = append(play.Handlers, *handler)
	}

	for i := range dto.Tasks {
		task, err := l.convertTask(&dto.Tasks[i])
		if err != nil {
			return nil, err
		}
		for _, notified := range task.Notify {
			if play.Handler(notified) == nil {
				return nil, zerr.With(zerr.With(domain.ErrUnknownHandler, "handler", notified), "task", task.Name)
			}
		}
		play.Tasks = append(play.Tasks, *task)
	}

	return play, nil
}

// convertTask splits a task mapping into the reserved keys and the
// single module invocation key.
func (l *Loader) convertTask(node *yaml.Node) (*domain.Task, error) {
	var dto taskDTO
	if err := node.Decode(&dto); err != nil {
		return nil, zerr.Wrap(err, domain.ErrPlaybookParseFailed.Error())
	}

	var entries map[string]yaml.Node
	if err := node.Decode(&entries); err != nil {
		return nil, zerr.Wrap(err, domain.ErrPlaybookParseFailed.Error())
	}

	task := &domain.Task{
		Name:         dto.Name,
		Tags:         domain.NewTagSet(dto.Tags...),
		Notify:       dto.Notify,
		IgnoreErrors: dto.IgnoreErrors,
	}

	for key := range entries {
		if reservedTaskKeys[key] {
			continue
		}
		if task.Action.Module != "" {
			err := zerr.With(domain.ErrAmbiguousAction, "task", task.Name)
			return nil, zerr.With(zerr.With(err, "module", task.Action.Module), "and", key)
		}
		value := entries[key]
		args, err := decodeArgs(key, &value)
		if err != nil {
			return nil, zerr.With(err, "task", task.Name)
		}
		task.Action = domain.Action{Module: key, Args: args}
	}

	if task.Action.Module == "" {
		return nil, zerr.With(domain.ErrMissingAction, "task", task.Name)
	}
	if !l.registry.Has(task.Action.Module) {
		err := zerr.With(domain.ErrUnknownModule, "module", task.Action.Module)
		return nil, zerr.With(err, "task", task.Name)
	}
	return task, nil
}

// decodeArgs accepts the mapping form and the free-form string form of
// a module invocation.
func decodeArgs(module string, node *yaml.Node) (domain.Vars, error) {
	if node.Kind == 0 || node.Tag == "!!null" {
		return domain.Vars{}, nil
	}

	if node.Kind == yaml.ScalarNode {
		var raw string
		if err := node.Decode(&raw); err != nil {
			return nil, zerr.Wrap(err, domain.ErrPlaybookParseFailed.Error())
		}
		return freeformArgs(module, raw), nil
	}

	var args domain.Vars
	if err := node.Decode(&args); err != nil {
		return nil, zerr.Wrap(err, domain.ErrPlaybookParseFailed.Error())
	}
	return args, nil
}

// freeformArgs maps the scalar form onto arguments. Command-style
// modules take the whole string, everything else gets k=v pairs.
func freeformArgs(module, raw string) domain.Vars {
	switch module {
	case "command", "shell":
		return domain.Vars{"cmd": raw}
	case "debug":
		return domain.Vars{"msg": raw}
	}

	args := domain.Vars{}
	for _, field := range strings.Fields(raw) {
		if k, v, ok := strings.Cut(field, "="); ok {
			args[k] = v
		}
	}
	return args
}
