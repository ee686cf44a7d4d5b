package schedule

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// DefaultRule names the fallback quota in policy lookups.
const DefaultRule = "default"

// ErrInvalidPolicy is returned when a policy document fails schema validation.
var ErrInvalidPolicy = errors.New("invalid quota policy")

//go:embed policy_schema.json
var policySchema string

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(policySchema))
})

// Rule assigns a quota to topics whose name or reference path contains any
// of the Match substrings (case-insensitive).
type Rule struct {
	Name  string   `yaml:"name" json:"name"`
	Match []string `yaml:"match" json:"match"`
	Quota int      `yaml:"quota" json:"quota"`
}

// Policy decides how many questions a topic shows per day. Rules are tried
// in order; the first match wins.
type Policy struct {
	Rules   []Rule `yaml:"rules" json:"rules"`
	Default int    `yaml:"default" json:"default"`
}

// DefaultPolicy returns the built-in quotas: short logic drills, a couple of
// coding problems, a handful of data structure questions and a dozen of
// everything else.
func DefaultPolicy() Policy {
	return Policy{
		Rules: []Rule{
			{Name: "logic", Match: []string{"logic"}, Quota: 3},
			{Name: "leetcode", Match: []string{"leetcode"}, Quota: 2},
			{Name: "data-structures", Match: []string{"data structures", "data-structures"}, Quota: 5},
		},
		Default: 12,
	}
}

// QuotaFor returns the daily quota for a topic.
func (p Policy) QuotaFor(name, path string) int {
	quota, _ := p.Lookup(name, path)
	return quota
}

// Lookup returns the daily quota for a topic and the name of the rule that
// produced it, or DefaultRule when no rule matched.
func (p Policy) Lookup(name, path string) (int, string) {
	key := strings.ToLower(name + " " + path)
	for _, r := range p.Rules {
		for _, m := range r.Match {
			if strings.Contains(key, strings.ToLower(m)) {
				return r.Quota, r.Name
			}
		}
	}
	return p.Default, DefaultRule
}

// LoadPolicy reads a YAML policy file. An empty path yields DefaultPolicy.
func LoadPolicy(path string) (Policy, error) {
	if path == "" {
		return DefaultPolicy(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("reading quota policy: %w", err)
	}
	p, err := ParsePolicy(data)
	if err != nil {
		return Policy{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// ParsePolicy decodes a YAML policy document and validates it against the
// policy schema.
func ParsePolicy(data []byte) (Policy, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Policy{}, fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
	}

	schema, err := compiledSchema()
	if err != nil {
		return Policy{}, fmt.Errorf("compiling policy schema: %w", err)
	}
	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return Policy{}, fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return Policy{}, fmt.Errorf("%w: %s", ErrInvalidPolicy, strings.Join(msgs, "; "))
	}

	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Policy{}, fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
	}
	return p, nil
}
