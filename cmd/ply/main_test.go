package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	originalWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(originalWd)
	})
}

func TestRun(t *testing.T) {
	tests := []struct {
		name         string
		playbook     string
		inventory    string
		args         []string
		expectedExit int
	}{
		{
			name: "Success with passing playbook",
			playbook: `
- hosts: all
  tasks:
    - name: say hello
      debug: hello
`,
			inventory:    "localhost\n",
			args:         []string{"run", "site.yml", "--no-color"},
			expectedExit: 0,
		},
		{
			name: "Failed hosts exit with 2",
			playbook: `
- hosts: all
  tasks:
    - name: always fails
      shell: exit 1
`,
			inventory:    "localhost\n",
			args:         []string{"run", "site.yml", "--no-color"},
			expectedExit: 2,
		},
		{
			name:         "Missing playbook exits with 1",
			inventory:    "localhost\n",
			args:         []string{"run", "missing.yml"},
			expectedExit: 1,
		},
		{
			name:         "Version command",
			args:         []string{"version"},
			expectedExit: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			if tt.playbook != "" {
				require.NoError(t, os.WriteFile(tmpDir+"/site.yml", []byte(tt.playbook), 0o600))
			}
			if tt.inventory != "" {
				require.NoError(t, os.WriteFile(tmpDir+"/hosts", []byte(tt.inventory), 0o600))
			}

			// Run from tmpDir so the default inventory path resolves.
			chdir(t, tmpDir)

			assert.Equal(t, tt.expectedExit, run(tt.args))
		})
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	chdir(t, t.TempDir())

	assert.Equal(t, 1, run([]string{"nonsense"}))
}
