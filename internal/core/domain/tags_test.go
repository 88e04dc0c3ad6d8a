package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/ply/internal/core/domain"
)

func TestTagSet_Matches(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		only []string
		skip []string
		want bool
	}{
		{
			name: "intersects only, disjoint skip",
			tags: []string{"setup", "web"},
			only: []string{"web"},
			skip: []string{"db"},
			want: true,
		},
		{
			name: "disjoint from only",
			tags: []string{"setup"},
			only: []string{"web"},
			want: false,
		},
		{
			name: "intersects skip",
			tags: []string{"setup", "web"},
			only: []string{"web"},
			skip: []string{"setup"},
			want: false,
		},
		{
			name: "skip wins even when only matches the same tag",
			tags: []string{"web"},
			only: []string{"web"},
			skip: []string{"web"},
			want: false,
		},
		{
			name: "empty tag set never matches",
			tags: nil,
			only: []string{"all"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tags := domain.NewTagSet(tt.tags...)
			only := domain.NewTagSet(tt.only...)
			skip := domain.NewTagSet(tt.skip...)
			assert.Equal(t, tt.want, tags.Matches(only, skip))
		})
	}
}

func TestTagSet_Union_Deduplicates(t *testing.T) {
	a := domain.NewTagSet("web", "setup")
	b := domain.NewTagSet("setup", "db")

	got := a.Union(b)
	assert.Equal(t, []string{"web", "setup", "db"}, got.Names())
}

func TestTask_EffectiveTags(t *testing.T) {
	play := &domain.Play{Tags: domain.NewTagSet("web")}
	task := &domain.Task{Tags: domain.NewTagSet("setup")}

	got := task.EffectiveTags(play)

	assert.True(t, got.Contains("setup"))
	assert.True(t, got.Contains("web"))
	assert.True(t, got.Contains(domain.TagAll), "every task carries the implicit all tag")
}

func TestTask_EffectiveTags_UntaggedMatchesDefault(t *testing.T) {
	play := &domain.Play{}
	task := &domain.Task{}

	only := domain.NewTagSet(domain.TagAll)
	assert.True(t, task.EffectiveTags(play).Matches(only, domain.TagSet{}))
}
