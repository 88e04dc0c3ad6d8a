package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ply/internal/core/domain"
)

func TestMergeVars_Precedence(t *testing.T) {
	inventory := domain.Vars{"port": 80, "user": "app"}
	play := domain.Vars{"port": 8080}
	extra := domain.Vars{"user": "deploy"}

	got := domain.MergeVars(inventory, play, extra)

	assert.Equal(t, 8080, got["port"], "play overrides inventory")
	assert.Equal(t, "deploy", got["user"], "extra vars override everything")
}

func TestVars_Interpolate(t *testing.T) {
	tests := []struct {
		name    string
		vars    domain.Vars
		in      string
		want    string
		wantErr bool
	}{
		{
			name: "simple substitution",
			vars: domain.Vars{"app_dir": "/srv/app"},
			in:   "{{ app_dir }}/releases",
			want: "/srv/app/releases",
		},
		{
			name: "multiple references",
			vars: domain.Vars{"user": "deploy", "group": "www"},
			in:   "{{user}}:{{ group }}",
			want: "deploy:www",
		},
		{
			name: "dotted lookup",
			vars: domain.Vars{"db": map[string]any{"host": "db1"}},
			in:   "{{ db.host }}",
			want: "db1",
		},
		{
			name: "non-string value formatted",
			vars: domain.Vars{"port": 8080},
			in:   "localhost:{{ port }}",
			want: "localhost:8080",
		},
		{
			name:    "undefined variable fails",
			vars:    domain.Vars{},
			in:      "{{ missing }}",
			wantErr: true,
		},
		{
			name: "no references passes through",
			vars: domain.Vars{},
			in:   "plain string",
			want: "plain string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.vars.Interpolate(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrUndefinedVariable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVars_InterpolateArgs(t *testing.T) {
	vars := domain.Vars{"dest": "/etc/app"}
	args := domain.Vars{
		"path":  "{{ dest }}/app.conf",
		"force": true,
	}

	got, err := vars.InterpolateArgs(args)
	require.NoError(t, err)
	assert.Equal(t, "/etc/app/app.conf", got["path"])
	assert.Equal(t, true, got["force"], "non-string values pass through untouched")
}
