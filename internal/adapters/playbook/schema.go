package playbook

import "gopkg.in/yaml.v3"

// playDTO mirrors one play mapping in the playbook YAML. Tasks and
// handlers stay as raw nodes: the module key inside a task is free-form
// and detected in a second decoding step.
type playDTO struct {
	Name     string         `yaml:"name"`
	Hosts    string         `yaml:"hosts"`
	Vars     map[string]any `yaml:"vars"`
	Tags     stringOrSlice  `yaml:"tags"`
	Tasks    []yaml.Node    `yaml:"tasks"`
	Handlers []yaml.Node    `yaml:"handlers"`
}

// taskDTO covers the reserved task keys. Everything else in the task
// mapping belongs to the module invocation.
type taskDTO struct {
	Name         string        `yaml:"name"`
	Tags         stringOrSlice `yaml:"tags"`
	Notify       stringOrSlice `yaml:"notify"`
	IgnoreErrors bool          `yaml:"ignore_errors"`
}

// reservedTaskKeys are the task-level keys that are never module names.
var reservedTaskKeys = map[string]bool{
	"name":          true,
	"tags":          true,
	"notify":        true,
	"ignore_errors": true,
}

// stringOrSlice accepts both the scalar and the list YAML forms, so
// `tags: deploy` and `tags: [deploy, web]` both work.
type stringOrSlice []string

func (s *stringOrSlice) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var single string
		if err := node.Decode(&single); err != nil {
			return err
		}
		*s = []string{single}
		return nil
	}

	var many []string
	if err := node.Decode(&many); err != nil {
		return err
	}
	*s = many
	return nil
}
