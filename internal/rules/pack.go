package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"reviewd/internal/issue"
)

// RuleSpec is the uncompiled form of a rule as it appears in a pack file.
type RuleSpec struct {
	ID         string `yaml:"id"`
	Pattern    string `yaml:"pattern"`
	Severity   string `yaml:"severity"`
	WeaknessID string `yaml:"weakness_id,omitempty"`
	Message    string `yaml:"message"`
}

// PackBundle is the per-language section of a pack file.
type PackBundle struct {
	Quality     []RuleSpec `yaml:"quality,omitempty"`
	Security    []RuleSpec `yaml:"security,omitempty"`
	Performance []RuleSpec `yaml:"performance,omitempty"`
}

// Pack is a user-supplied rules overlay loaded from YAML. Rules are compiled
// once at load and merged into the registry on top of the builtins.
type Pack struct {
	Languages map[string]PackBundle `yaml:"languages"`
}

// LoadPack reads and validates a pack file. Returns nil Pack and nil error
// when path is empty.
func LoadPack(path string) (*Pack, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules pack: %w", err)
	}
	var pack Pack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("parsing rules pack: %w", err)
	}
	return &pack, nil
}

// Merge compiles the pack's rules and appends them to the matching bundles,
// registering new bundles for languages the builtins don't cover.
func (r *Registry) Merge(pack *Pack) error {
	if pack == nil {
		return nil
	}
	for lang, pb := range pack.Languages {
		b, ok := r.Bundle(lang)
		if !ok {
			b = &Bundle{Language: lang}
			r.Register(b)
		}
		quality, err := compileSpecs(pb.Quality)
		if err != nil {
			return fmt.Errorf("language %s: %w", lang, err)
		}
		security, err := compileSpecs(pb.Security)
		if err != nil {
			return fmt.Errorf("language %s: %w", lang, err)
		}
		performance, err := compileSpecs(pb.Performance)
		if err != nil {
			return fmt.Errorf("language %s: %w", lang, err)
		}
		b.Quality = append(b.Quality, quality...)
		b.Security = append(b.Security, security...)
		b.Performance = append(b.Performance, performance...)
	}
	return nil
}

func compileSpecs(specs []RuleSpec) ([]Rule, error) {
	var out []Rule
	for _, s := range specs {
		if s.Pattern == "" {
			return nil, fmt.Errorf("rule %q: empty pattern", s.ID)
		}
		rule, err := Compile(s.ID, s.Pattern, issue.NormalizeSeverity(s.Severity), s.WeaknessID, s.Message)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", s.ID, err)
		}
		out = append(out, rule)
	}
	return out, nil
}
