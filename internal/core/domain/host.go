package domain

import (
	"slices"
	"strings"
)

// Host is a managed machine with its inventory-scoped variables.
type Host struct {
	Name InternedString
	Vars Vars
}

// Group is a named set of hosts with optional child groups.
type Group struct {
	Name     string
	Hosts    []string
	Children []string
}

// Inventory holds the managed hosts and their grouping metadata.
// Host insertion order is preserved for deterministic execution order.
type Inventory struct {
	hosts  map[string]*Host
	groups map[string]*Group
	order  []string
}

// NewInventory creates an empty inventory with the implicit "all" group.
func NewInventory() *Inventory {
	return &Inventory{
		hosts:  make(map[string]*Host),
		groups: map[string]*Group{TagAll: {Name: TagAll}},
	}
}

// AddHost registers a host, merging variables if it already exists.
func (inv *Inventory) AddHost(name string, vars Vars) *Host {
	h, ok := inv.hosts[name]
	if !ok {
		h = &Host{Name: NewInternedString(name), Vars: Vars{}}
		inv.hosts[name] = h
		inv.order = append(inv.order, name)
		all := inv.groups[TagAll]
		all.Hosts = append(all.Hosts, name)
	}
	for k, v := range vars {
		h.Vars[k] = v
	}
	return h
}

// AddGroup registers a group and places the named hosts in it.
// Hosts are created on first mention.
func (inv *Inventory) AddGroup(name string, hosts ...string) *Group {
	g, ok := inv.groups[name]
	if !ok {
		g = &Group{Name: name}
		inv.groups[name] = g
	}
	for _, h := range hosts {
		inv.AddHost(h, nil)
		if !slices.Contains(g.Hosts, h) {
			g.Hosts = append(g.Hosts, h)
		}
	}
	return g
}

// AddChild records a parent/child group relationship.
func (inv *Inventory) AddChild(parent, child string) {
	g := inv.AddGroup(parent)
	if !slices.Contains(g.Children, child) {
		g.Children = append(g.Children, child)
	}
	inv.AddGroup(child)
}

// Host returns the named host, or nil if unknown.
func (inv *Inventory) Host(name string) *Host {
	return inv.hosts[name]
}

// Len returns the number of hosts in the inventory.
func (inv *Inventory) Len() int {
	return len(inv.hosts)
}

// Hosts returns all hosts in insertion order.
func (inv *Inventory) Hosts() []*Host {
	out := make([]*Host, 0, len(inv.order))
	for _, name := range inv.order {
		out = append(out, inv.hosts[name])
	}
	return out
}

// Match resolves a host pattern to hosts in inventory order. Patterns
// are comma-separated unions of "all", group names and host names.
// Unknown names resolve to nothing.
func (inv *Inventory) Match(pattern string) []*Host {
	selected := make(map[string]bool)
	visited := make(map[string]bool)
	for _, part := range strings.Split(pattern, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		inv.matchOne(part, selected, visited)
	}

	var out []*Host
	for _, name := range inv.order {
		if selected[name] {
			out = append(out, inv.hosts[name])
		}
	}
	return out
}

// matchOne expands one pattern element. visited guards the child-group
// walk: group files can declare cycles, and a revisited group adds no
// new hosts.
func (inv *Inventory) matchOne(name string, selected, visited map[string]bool) {
	if g, ok := inv.groups[name]; ok {
		if visited[name] {
			return
		}
		visited[name] = true
		for _, h := range g.Hosts {
			selected[h] = true
		}
		for _, child := range g.Children {
			inv.matchOne(child, selected, visited)
		}
		return
	}
	if _, ok := inv.hosts[name]; ok {
		selected[name] = true
	}
}

// Restrict returns the subset of hosts that also match the limit
// pattern. An empty limit keeps all hosts.
func (inv *Inventory) Restrict(hosts []*Host, limit string) []*Host {
	if limit == "" {
		return hosts
	}
	allowed := make(map[string]bool)
	for _, h := range inv.Match(limit) {
		allowed[h.Name.String()] = true
	}
	var out []*Host
	for _, h := range hosts {
		if allowed[h.Name.String()] {
			out = append(out, h)
		}
	}
	return out
}
