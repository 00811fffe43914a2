package synthex

import (
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/go-openapi/errors"
	"github.com/go-openapi/validate"
)

const (
	// MaxDatapoints is the exclusive upper bound on samples per job.
	MaxDatapoints = 1000

	defaultOutputBase = "synthex-output"
)

// OutputSink is the local destination of a generated dataset.
type OutputSink struct {
	// Dir is the directory part, "" for the working directory. When not
	// empty it ends with a path separator.
	Dir string

	// FileName always carries the extension of Format.
	FileName string

	Format OutputFormat
}

// Path returns Dir and FileName joined.
func (s OutputSink) Path() string {
	return s.Dir + s.FileName
}

// ValidateOutputFormat returns a [KindValidation] error unless format is
// one of [SupportedFormats].
func ValidateOutputFormat(format OutputFormat) error {
	enum := make([]interface{}, 0, len(SupportedFormats))
	for _, f := range SupportedFormats {
		enum = append(enum, string(f))
	}
	if err := validate.Enum("output_type", "body", string(format), enum); err != nil {
		return validationError("unsupported output format "+strconv.Quote(string(format)), err)
	}
	return nil
}

// NormalizeOutputPath reconciles rawPath with format. A file name whose
// extension differs from format has it replaced. A path with no file
// name, "." and ".." included, gets "synthex-output.<format>". The result is stable under repeated
// normalization.
func NormalizeOutputPath(rawPath string, format OutputFormat) (OutputSink, error) {
	if err := ValidateOutputFormat(format); err != nil {
		return OutputSink{}, err
	}

	dir, file := filepath.Split(rawPath)
	if file == "." || file == ".." {
		dir, file = dir+file+string(filepath.Separator), ""
	}
	want := "." + string(format)
	switch ext := filepath.Ext(file); {
	case file == "":
		file = defaultOutputBase + want
	case ext != want:
		file = strings.TrimSuffix(file, ext) + want
	}
	return OutputSink{Dir: dir, FileName: file, Format: format}, nil
}

// ValidateJobBounds returns a [KindValidation] error unless 0 < n < [MaxDatapoints].
func ValidateJobBounds(n int) error {
	if err := validate.MinimumInt("datapoint_num", "body", int64(n), 0, true); err != nil {
		return validationError("number of samples must be greater than 0", err)
	}
	if err := validate.MaximumInt("datapoint_num", "body", int64(n), MaxDatapoints, true); err != nil {
		return validationError("number of samples must be less than "+strconv.Itoa(MaxDatapoints), err)
	}
	return nil
}

// ValidateSchema checks that schema declares at least one field and that
// every field has a supported type.
func ValidateSchema(schema SchemaDefinition) error {
	if len(schema) == 0 {
		return validationError("schema definition has no fields", nil)
	}

	types := []interface{}{string(FieldString), string(FieldInteger), string(FieldFloat)}
	var res []error
	for _, name := range sortedKeys(schema) {
		if err := validate.Enum("output_schema."+name+".type", "body", string(schema[name].Type), types); err != nil {
			res = append(res, err)
		}
	}
	if len(res) > 0 {
		return validationError("invalid schema definition", errors.CompositeValidationError(res...))
	}
	return nil
}

// ValidateExamples checks that the key set of every example equals the key
// set of schema. The returned error names each missing and extra key.
func ValidateExamples(examples []Example, schema SchemaDefinition) error {
	var res []error
	for i, ex := range examples {
		prefix := "examples." + strconv.Itoa(i)
		for _, name := range sortedKeys(schema) {
			if _, ok := ex[name]; !ok {
				res = append(res, validate.Required(prefix+"."+name, "body", nil))
			}
		}
		for _, name := range sortedKeys(ex) {
			if _, ok := schema[name]; !ok {
				res = append(res, errors.PropertyNotAllowed(prefix, "body", name))
			}
		}
	}
	if len(res) > 0 {
		return validationError("examples do not match the schema definition", errors.CompositeValidationError(res...))
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
