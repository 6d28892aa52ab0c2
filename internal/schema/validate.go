package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed coach_package.schema.json
var packageSchemaJSON []byte

// Validator is the terminal structural gate for coach packages. It checks
// field types, enumerated values, and array-length constraints and reports
// path-qualified errors. It never corrects or drops invalid fields.
type Validator struct {
	compiled *jsonschema.Schema
}

// NewValidator compiles the embedded coach-package schema. Compilation
// failure means the schema document itself is broken, so it is returned as
// an error rather than deferred to the first validation.
func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource("coach_package.schema.json", bytes.NewReader(packageSchemaJSON)); err != nil {
		return nil, fmt.Errorf("add coach package schema: %w", err)
	}
	compiled, err := compiler.Compile("coach_package.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile coach package schema: %w", err)
	}
	return &Validator{compiled: compiled}, nil
}

// Validate checks pkg against the schema and returns one path-qualified
// message per violation, e.g. "recommended_build.core_items: maximum 4 items
// allowed, but found 5 items". An empty slice means the package is valid.
func (v *Validator) Validate(pkg *CoachPackage) []string {
	if pkg == nil {
		return []string{"package: is nil"}
	}
	raw, err := json.Marshal(pkg)
	if err != nil {
		return []string{fmt.Sprintf("package: marshal failed: %v", err)}
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return []string{fmt.Sprintf("package: decode failed: %v", err)}
	}
	err = v.compiled.Validate(doc)
	if err == nil {
		return nil
	}
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{fmt.Sprintf("package: %v", err)}
	}
	var out []string
	seen := make(map[string]bool)
	collectLeaves(verr, func(msg string) {
		if !seen[msg] {
			seen[msg] = true
			out = append(out, msg)
		}
	})
	return out
}

func collectLeaves(e *jsonschema.ValidationError, emit func(string)) {
	if e == nil {
		return
	}
	if len(e.Causes) == 0 {
		emit(fmt.Sprintf("%s: %s", pointerToPath(e.InstanceLocation), e.Message))
		return
	}
	for _, cause := range e.Causes {
		collectLeaves(cause, emit)
	}
}

func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return "package"
	}
	return strings.ReplaceAll(ptr, "/", ".")
}
