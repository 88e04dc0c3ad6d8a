package playbook

import (
	"bytes"
	_ "embed"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.trai.ch/ply/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

//go:embed playbook.schema.json
var schemaJSON []byte

var (
	playbookSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
)

// compileSchema compiles the embedded playbook schema once.
func compileSchema() error {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			compileErr = zerr.Wrap(err, "failed to unmarshal playbook schema")
			return
		}

		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("playbook.schema.json", doc); err != nil {
			compileErr = zerr.Wrap(err, "failed to add playbook schema resource")
			return
		}

		playbookSchema, compileErr = compiler.Compile("playbook.schema.json")
	})

	return compileErr
}

// CheckSyntax validates raw playbook YAML against the embedded schema
// without executing anything. This backs the --syntax-check mode and
// runs as a gate on every load.
func CheckSyntax(data []byte) error {
	if err := compileSchema(); err != nil {
		return err
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return zerr.Wrap(err, domain.ErrPlaybookParseFailed.Error())
	}

	if err := playbookSchema.Validate(doc); err != nil {
		return zerr.Wrap(err, domain.ErrPlaybookInvalid.Error())
	}
	return nil
}
