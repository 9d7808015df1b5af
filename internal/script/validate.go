package script

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"
)

//go:embed schema.cue
var schemaCUE string

// Validate checks script source against the #Script schema without running it.
// Violations are returned as a *LoadError listing every failing path.
func Validate(name string, data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile script schema: %w", err)
	}

	file, err := cueyaml.Extract(name, data)
	if err != nil {
		return &LoadError{Path: name, Err: fmt.Errorf("failed to parse YAML: %w", err)}
	}

	doc := ctx.BuildFile(file)
	if err := doc.Err(); err != nil {
		return &LoadError{Path: name, Err: err}
	}

	unified := schema.LookupPath(cue.ParsePath("#Script")).Unify(doc)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return &LoadError{Path: name, Err: fmt.Errorf("schema violation:\n%s", details(err))}
	}

	return nil
}

// details flattens a CUE error list, one violation per line.
func details(err error) string {
	var lines []string
	for _, e := range cueerrors.Errors(err) {
		lines = append(lines, "  "+strings.TrimSpace(e.Error()))
	}
	return strings.Join(lines, "\n")
}
