package taskset

import (
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed taskset.schema.json
var schemaJSON string

// ValidationError reports a taskset document that failed schema validation
// before it was ever decoded into the typed model.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("taskset schema: %s", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// validateSchema checks the raw TOML document against the embedded taskset
// schema. The document is decoded generically and rewritten into the JSON
// type system the validator expects.
func validateSchema(data []byte) error {
	var raw map[string]interface{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse taskset: %w", err)
	}

	schema, err := compileSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(toJSONValue(raw)); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("taskset.schema.json", strings.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("load taskset schema: %w", err)
	}
	schema, err := compiler.Compile("taskset.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile taskset schema: %w", err)
	}
	return schema, nil
}

// toJSONValue maps decoded TOML values onto JSON types: datetimes become
// RFC 3339 strings and integers become float64, which is how the validator
// counts numbers.
func toJSONValue(v interface{}) interface{} {
	switch v := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, e := range v {
			out[k] = toJSONValue(e)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, e := range v {
			out[i] = toJSONValue(e)
		}
		return out
	case []map[string]interface{}:
		out := make([]interface{}, len(v))
		for i, e := range v {
			out[i] = toJSONValue(e)
		}
		return out
	case time.Time:
		return v.Format(time.RFC3339)
	case int64:
		return float64(v)
	default:
		return v
	}
}
