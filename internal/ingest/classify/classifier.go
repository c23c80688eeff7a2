// Package classify maps a URL to a media type using ordered substring rules.
package classify

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/DjordjeVuckovic/media-placements/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRules []byte

type Rule struct {
	MediaType domain.MediaType `yaml:"media_type"`
	Patterns  []string         `yaml:"patterns"`
}

type RuleSet struct {
	Rules []Rule `yaml:"rules"`
}

type Classifier struct {
	rules []Rule
}

func New(rs *RuleSet) *Classifier {
	return &Classifier{rules: rs.Rules}
}

// Default returns a classifier built from the embedded rule set.
func Default() *Classifier {
	rs, err := Parse(defaultRules)
	if err != nil {
		panic(fmt.Sprintf("classify: embedded rules are invalid: %v", err))
	}
	return New(rs)
}

// LoadEnv returns the classifier for MEDIA_RULES_PATH, falling back to the embedded rules.
func LoadEnv() (*Classifier, error) {
	path := os.Getenv("MEDIA_RULES_PATH")
	if path == "" {
		return Default(), nil
	}
	rs, err := LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	return New(rs), nil
}

func LoadFromFile(path string) (*RuleSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open media rules file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func Load(r io.Reader) (*RuleSet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read media rules: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*RuleSet, error) {
	var rs RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("failed to parse media rules YAML: %w", err)
	}
	if err := validate(&rs); err != nil {
		return nil, err
	}
	return &rs, nil
}

func validate(rs *RuleSet) error {
	for i := range rs.Rules {
		r := &rs.Rules[i]
		mt, err := domain.ParseMediaType(string(r.MediaType))
		if err != nil {
			return fmt.Errorf("rule at index %d: %w", i, err)
		}
		r.MediaType = mt
		if len(r.Patterns) == 0 {
			return fmt.Errorf("rule %q at index %d has no patterns", r.MediaType, i)
		}
		for j, p := range r.Patterns {
			p = strings.ToLower(strings.TrimSpace(p))
			if p == "" {
				return fmt.Errorf("rule %q at index %d has an empty pattern", r.MediaType, i)
			}
			r.Patterns[j] = p
		}
	}
	return nil
}

// Classify returns the media type for a normalized host and the URL path.
func (c *Classifier) Classify(host, path string) domain.MediaType {
	host = strings.ToLower(host)
	full := host + strings.ToLower(path)
	for _, r := range c.rules {
		for _, p := range r.Patterns {
			target := host
			if strings.Contains(p, "/") {
				target = full
			}
			if strings.Contains(target, p) {
				return r.MediaType
			}
		}
	}
	return domain.DefaultMediaType
}
