package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/ply/internal/core/domain"
)

func hostNames(hosts []*domain.Host) []string {
	out := make([]string, 0, len(hosts))
	for _, h := range hosts {
		out = append(out, h.Name.String())
	}
	return out
}

func buildInventory() *domain.Inventory {
	inv := domain.NewInventory()
	inv.AddGroup("web", "web1", "web2")
	inv.AddGroup("db", "db1")
	inv.AddChild("backend", "db")
	inv.AddHost("lonely", domain.Vars{"color": "blue"})
	return inv
}

func TestInventory_Match(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{name: "all", pattern: "all", want: []string{"web1", "web2", "db1", "lonely"}},
		{name: "group", pattern: "web", want: []string{"web1", "web2"}},
		{name: "single host", pattern: "db1", want: []string{"db1"}},
		{name: "union", pattern: "web,lonely", want: []string{"web1", "web2", "lonely"}},
		{name: "child groups", pattern: "backend", want: []string{"db1"}},
		{name: "unknown name", pattern: "nothing", want: nil},
	}

	inv := buildInventory()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hostNames(inv.Match(tt.pattern)))
		})
	}
}

func TestInventory_MatchCyclicChildGroups(t *testing.T) {
	inv := domain.NewInventory()
	inv.AddGroup("frontend", "web1")
	inv.AddGroup("backend", "db1")
	inv.AddChild("frontend", "backend")
	inv.AddChild("backend", "frontend")

	assert.Equal(t, []string{"web1", "db1"}, hostNames(inv.Match("frontend")),
		"a child-group cycle resolves to the union of its hosts")
	assert.Equal(t, []string{"web1", "db1"}, hostNames(inv.Match("backend")))
}

func TestInventory_MatchSelfReferencingGroup(t *testing.T) {
	inv := domain.NewInventory()
	inv.AddGroup("web", "web1")
	inv.AddChild("web", "web")

	assert.Equal(t, []string{"web1"}, hostNames(inv.Match("web")))
}

func TestInventory_Restrict(t *testing.T) {
	inv := buildInventory()
	hosts := inv.Match("all")

	limited := inv.Restrict(hosts, "web")
	assert.Equal(t, []string{"web1", "web2"}, hostNames(limited))

	unlimited := inv.Restrict(hosts, "")
	assert.Equal(t, hostNames(hosts), hostNames(unlimited))
}

func TestInventory_HostVarsMerge(t *testing.T) {
	inv := domain.NewInventory()
	inv.AddHost("web1", domain.Vars{"port": 80})
	inv.AddHost("web1", domain.Vars{"user": "app"})

	h := inv.Host("web1")
	assert.Equal(t, 80, h.Vars["port"])
	assert.Equal(t, "app", h.Vars["user"])
	assert.Equal(t, 1, inv.Len())
}
