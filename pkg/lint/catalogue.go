package lint

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed rules/*.yaml
var builtinRules embed.FS

// LoadBuiltin parses the catalogue bundled into the binary.
func LoadBuiltin() ([]*Lint, []*LintParseError) {
	lints, errs := Load(builtinRules, "rules")
	return lints, errs
}

// Load parses every *.yaml file directly under dir in fsys into Lints.
// A malformed file produces a LintParseError and is skipped; loading
// continues with the rest, per spec.md §7.
func Load(fsys fs.FS, dir string) ([]*Lint, []*LintParseError) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, []*LintParseError{{LintID: dir, Err: err}}
	}

	var lints []*Lint
	var errs []*LintParseError
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") {
			continue
		}
		path := dir + "/" + name
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			errs = append(errs, &LintParseError{LintID: name, Err: err})
			continue
		}
		var l Lint
		if err := yaml.Unmarshal(data, &l); err != nil {
			errs = append(errs, &LintParseError{LintID: name, Err: err})
			continue
		}
		if err := validateLintRecord(&l); err != nil {
			errs = append(errs, &LintParseError{LintID: idOrFile(l.ID, name), Err: err})
			continue
		}
		lints = append(lints, &l)
	}
	return lints, errs
}

func idOrFile(id, file string) string {
	if id != "" {
		return id
	}
	return file
}

func validateLintRecord(l *Lint) error {
	if l.ID == "" {
		return fmt.Errorf("missing required field 'id'")
	}
	if l.Query == "" {
		return fmt.Errorf("lint %q: missing required field 'query'", l.ID)
	}
	if l.RequiredUpdate == "" {
		return fmt.Errorf("lint %q: missing required field 'required_update'", l.ID)
	}
	return nil
}
