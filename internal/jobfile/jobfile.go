// Package jobfile reads data generation job definitions from YAML files.
//
// A job file looks like:
//
//	schema:
//	  question: {type: string}
//	  answer:   {type: string}
//	examples:
//	  - question: "What is 2+2?"
//	    answer: "4"
//	requirements:
//	  - Arithmetic questions only
//	samples: 20
//	output:
//	  path: ./data/questions.csv
//	  format: csv
package jobfile

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tanaos/synthex-go"
)

// File is the on-disk shape of a job definition.
type File struct {
	Schema       map[string]Field `yaml:"schema"`
	Examples     []map[string]any `yaml:"examples"`
	Requirements []string         `yaml:"requirements"`
	Samples      int              `yaml:"samples"`
	Output       Output           `yaml:"output"`
}

// Field declares one schema field.
type Field struct {
	Type string `yaml:"type"`
}

// Output is where generated data goes.
type Output struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"`
}

// Read parses the job file at path.
func Read(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a job definition. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing job file: %w", err)
	}
	return &f, nil
}

// Request converts f into a generation request. Validation happens when
// the request is submitted.
func (f *File) Request() *synthex.GenerateDataRequest {
	schema := make(synthex.SchemaDefinition, len(f.Schema))
	for name, field := range f.Schema {
		schema[name] = synthex.FieldSpec{Type: synthex.FieldType(field.Type)}
	}
	examples := make([]synthex.Example, 0, len(f.Examples))
	for _, ex := range f.Examples {
		examples = append(examples, synthex.Example(ex))
	}
	return &synthex.GenerateDataRequest{
		Schema:          schema,
		Examples:        examples,
		Requirements:    f.Requirements,
		NumberOfSamples: f.Samples,
		OutputFormat:    synthex.OutputFormat(f.Output.Format),
		OutputPath:      f.Output.Path,
	}
}
