// Package inventory provides the INI inventory source and the retry
// inventory writer.
package inventory

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"strings"

	"go.trai.ch/ply/internal/core/domain"
	"go.trai.ch/zerr"
)

// INISource implements ports.InventorySource for Ansible-style INI
// inventory files: bare hosts, [group] sections with per-host k=v
// variables, and [group:children] sections.
type INISource struct{}

// NewINISource creates the INI inventory source.
func NewINISource() *INISource {
	return &INISource{}
}

// Load parses the inventory file at path.
func (s *INISource) Load(path string) (*domain.Inventory, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(domain.ErrInventoryNotFound, "path", path)
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrInventoryParseFailed.Error()), "path", path)
	}
	defer f.Close() //nolint:errcheck // read-only file

	inv := domain.NewInventory()
	section := ""
	children := false

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}

		if strings.HasPrefix(line, "[") {
			if section, children, err = parseSection(line); err != nil {
				return nil, zerr.With(zerr.With(err, "path", path), "line", lineNo)
			}
			if children {
				inv.AddGroup(section)
			}
			continue
		}

		if children {
			inv.AddChild(section, line)
			continue
		}

		name, vars, err := parseHostLine(line)
		if err != nil {
			return nil, zerr.With(zerr.With(err, "path", path), "line", lineNo)
		}
		inv.AddHost(name, vars)
		if section != "" {
			inv.AddGroup(section, name)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrInventoryParseFailed.Error()), "path", path)
	}

	if inv.Len() == 0 {
		return nil, zerr.With(domain.ErrEmptyInventory, "path", path)
	}
	return inv, nil
}

func parseSection(line string) (name string, children bool, err error) {
	if !strings.HasSuffix(line, "]") {
		return "", false, zerr.With(domain.ErrInventoryParseFailed, "section", line)
	}
	name = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
	if name == "" {
		return "", false, zerr.With(domain.ErrInventoryParseFailed, "section", line)
	}
	if base, ok := strings.CutSuffix(name, ":children"); ok {
		return base, true, nil
	}
	return name, false, nil
}

// parseHostLine splits "web1 ansible_port=2222 role=frontend" into the
// host name and its variable map.
func parseHostLine(line string) (string, domain.Vars, error) {
	fields := strings.Fields(line)
	name := fields[0]
	if strings.Contains(name, "=") {
		return "", nil, zerr.With(domain.ErrInventoryParseFailed, "host", line)
	}

	vars := domain.Vars{}
	for _, field := range fields[1:] {
		k, v, ok := strings.Cut(field, "=")
		if !ok || k == "" {
			return "", nil, zerr.With(domain.ErrInventoryParseFailed, "host", line)
		}
		vars[k] = v
	}
	return name, vars, nil
}
