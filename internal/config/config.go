// Package config loads a policy.Policy from a YAML file. Config loading is
// an external collaborator of the core (spec.md §1: "The CLI, config file
// loader ... ") so it lives outside policy and budget; it only ever
// produces a policy.Policy value, never mutates one.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"skim.dev/go/policy"
)

// File is the on-disk shape of a policy config file, named ".skim.yaml" by
// convention. Field names follow spec.md §6's policy-configuration
// vocabulary directly so a config file reads like the spec.
type File struct {
	PublicAPIOnly bool   `yaml:"public_api_only"`
	Comments      string `yaml:"comments"`

	Imports struct {
		Mode      string `yaml:"mode"`
		Summarize bool   `yaml:"summarize"`
	} `yaml:"imports"`

	Literals struct {
		MaxTokens int `yaml:"max_tokens"`
	} `yaml:"literals"`

	FunctionBodies struct {
		Mode       string `yaml:"mode"`
		TrimTokens int    `yaml:"trim_tokens"`
	} `yaml:"function_bodies"`

	TargetBudgetTokens int `yaml:"target_budget_tokens"`
}

// Load reads and parses the YAML file at path into a policy.Policy. Unset
// fields keep policy.Default's values, so a config file only needs to name
// the knobs it wants to change.
func Load(path string) (policy.Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return policy.Policy{}, err
	}
	return Parse(data)
}

// Parse parses YAML-encoded config data into a policy.Policy.
func Parse(data []byte) (policy.Policy, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return policy.Policy{}, fmt.Errorf("parsing policy config: %w", err)
	}
	return f.toPolicy()
}

func (f File) toPolicy() (policy.Policy, error) {
	p := policy.Default()
	p.PublicAPIOnly = f.PublicAPIOnly
	p.TargetBudgetTokens = f.TargetBudgetTokens
	p.LiteralMaxTokens = f.Literals.MaxTokens
	p.BodyTrimTokens = f.FunctionBodies.TrimTokens
	p.ImportsSummarize = f.Imports.Summarize

	if f.Comments != "" {
		c, err := ParseComments(f.Comments)
		if err != nil {
			return policy.Policy{}, err
		}
		p.Comments = c
	}
	if f.Imports.Mode != "" {
		im, err := ParseImports(f.Imports.Mode)
		if err != nil {
			return policy.Policy{}, err
		}
		p.Imports = im
	}
	if f.FunctionBodies.Mode != "" {
		b, err := ParseBody(f.FunctionBodies.Mode)
		if err != nil {
			return policy.Policy{}, err
		}
		p.Body = b
	}

	if verr := p.Validate(); verr != nil {
		return policy.Policy{}, verr
	}
	return p, nil
}

// ParseComments parses a comments policy flag/config value.
func ParseComments(s string) (policy.CommentPolicy, error) {
	switch s {
	case "keep_all":
		return policy.CommentsKeepAll, nil
	case "keep_doc_only":
		return policy.CommentsKeepDocOnly, nil
	case "keep_first_sentence":
		return policy.CommentsKeepFirstSentence, nil
	case "strip_all":
		return policy.CommentsStripAll, nil
	default:
		return 0, fmt.Errorf("comments: unknown mode %q", s)
	}
}

// ParseImports parses an imports policy flag/config value.
func ParseImports(s string) (policy.ImportPolicy, error) {
	switch s {
	case "keep_all":
		return policy.ImportsKeepAll, nil
	case "strip_external":
		return policy.ImportsStripExternal, nil
	case "strip_all":
		return policy.ImportsStripAll, nil
	default:
		return 0, fmt.Errorf("imports: unknown mode %q", s)
	}
}

// ParseBody parses a function_bodies policy flag/config value.
func ParseBody(s string) (policy.BodyPolicy, error) {
	switch s {
	case "keep":
		return policy.BodyKeep, nil
	case "strip":
		return policy.BodyStrip, nil
	case "trim_to_tokens":
		return policy.BodyTrimToTokens, nil
	default:
		return 0, fmt.Errorf("function_bodies: unknown mode %q", s)
	}
}
