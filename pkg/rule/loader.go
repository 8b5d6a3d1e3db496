package rule

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/praetorian-inc/html5lint/pkg/types"
)

// Loader reads check and ruleset definitions from YAML.
type Loader struct {
	checks   fs.FS
	rulesets fs.FS
}

// NewLoader creates a loader over the built-in catalogue.
func NewLoader() *Loader {
	return &Loader{checks: builtinChecksFS, rulesets: builtinRulesetsFS}
}

// NewLoaderWithFS creates a loader over a custom filesystem holding
// "checks" and "rulesets" directories.
func NewLoaderWithFS(fsys fs.FS) *Loader {
	return &Loader{checks: fsys, rulesets: fsys}
}

// LoadCheck loads a single check from YAML bytes.
func (l *Loader) LoadCheck(data []byte) (*types.Check, error) {
	var file yamlChecksFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	switch len(file.Checks) {
	case 0:
		return nil, fmt.Errorf("no checks found in YAML")
	case 1:
		return convertYAMLCheck(file.Checks[0])
	default:
		return nil, fmt.Errorf("expected single check, found %d", len(file.Checks))
	}
}

// LoadCheckFile loads a check from a YAML file path.
func (l *Loader) LoadCheckFile(path string) (*types.Check, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return l.LoadCheck(data)
}

// LoadBuiltinChecks loads the whole catalogue, in kind order.
func (l *Loader) LoadBuiltinChecks() ([]*types.Check, error) {
	var checks []*types.Check
	err := walkYAML(l.checks, "checks", func(p string, data []byte) error {
		var file yamlChecksFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("failed to parse %s: %w", p, err)
		}
		for _, yc := range file.Checks {
			c, err := convertYAMLCheck(yc)
			if err != nil {
				return fmt.Errorf("%s: %w", p, err)
			}
			checks = append(checks, c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(checks, func(a, b *types.Check) int { return int(a.Kind) - int(b.Kind) })
	return checks, nil
}

// LoadBuiltinRulesets loads every built-in ruleset.
func (l *Loader) LoadBuiltinRulesets() ([]*types.Ruleset, error) {
	var rulesets []*types.Ruleset
	err := walkYAML(l.rulesets, "rulesets", func(p string, data []byte) error {
		var file yamlRulesetsFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("failed to parse %s: %w", p, err)
		}
		for _, yrs := range file.Rulesets {
			rulesets = append(rulesets, &types.Ruleset{
				ID:          yrs.ID,
				Name:        yrs.Name,
				Description: yrs.Description,
				CheckNames:  yrs.CheckNames,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rulesets, nil
}

func walkYAML(fsys fs.FS, dir string, fn func(p string, data []byte) error) error {
	return fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".yml" {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}
		return fn(p, data)
	})
}

// convertYAMLCheck resolves the kind of a catalogue entry from its name.
func convertYAMLCheck(yc yamlCheck) (*types.Check, error) {
	kind, ok := types.ParseKind(yc.Name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCheck, yc.Name)
	}
	return &types.Check{
		Name:             yc.Name,
		Kind:             kind,
		Summary:          yc.Summary,
		Examples:         yc.Examples,
		NegativeExamples: yc.NegativeExamples,
		References:       yc.References,
	}, nil
}
