package domain

// Action is a module invocation with its argument map, e.g.
// file: {path: /etc/app, state: directory}.
type Action struct {
	Module string
	Args   Vars
}

// ActionOptions carries run-mode flags down to module implementations.
type ActionOptions struct {
	// Check enables dry-run mode: modules report what would change
	// without mutating anything.
	Check bool
	// Diff enables content diff reporting for modules that support it.
	Diff bool
}

// Task is a single named module invocation inside a play.
type Task struct {
	Name         string
	Action       Action
	Tags         TagSet
	Notify       []string
	IgnoreErrors bool
}

// Play binds a host pattern to an ordered list of tasks and handlers.
type Play struct {
	Name     string
	Hosts    string
	Vars     Vars
	Tags     TagSet
	Tasks    []Task
	Handlers []Task
}

// Playbook is an ordered list of plays loaded from a single file.
type Playbook struct {
	Path  string
	Plays []Play
}

// EffectiveTags returns the tag set used for filtering: the task's own
// tags merged with the play's tags plus the implicit "all" tag, so the
// default --tags all selects every task.
func (t *Task) EffectiveTags(play *Play) TagSet {
	return t.Tags.Union(play.Tags).Union(NewTagSet(TagAll))
}

// Handler looks up a play handler by name. Returns nil if not defined.
func (p *Play) Handler(name string) *Task {
	for i := range p.Handlers {
		if p.Handlers[i].Name == name {
			return &p.Handlers[i]
		}
	}
	return nil
}
