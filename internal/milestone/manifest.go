package milestone

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Manifest declares a milestone as data.
type Manifest struct {
	// ID is the short milestone identifier used on the command line (e.g. "m6").
	ID string `yaml:"id"`

	// Title is printed as the top-level banner.
	Title string `yaml:"title"`

	// Sections hold the static requirements, evaluated in order.
	Sections []Section `yaml:"sections"`

	// Runtime checks run after every static requirement.
	Runtime []RuntimeSpec `yaml:"runtime,omitempty"`
}

// Section is a titled group of requirements.
type Section struct {
	Title  string        `yaml:"title"`
	Checks []Requirement `yaml:"checks"`
}

// Requirement is one named, recorded check.
type Requirement struct {
	Name string `yaml:"name"`

	// When names an earlier requirement. If that requirement failed or was
	// itself skipped, this one is skipped and not recorded.
	When string `yaml:"when,omitempty"`

	Predicate `yaml:",inline"`
}

// Predicate holds exactly one predicate kind.
type Predicate struct {
	File     string        `yaml:"file,omitempty"`
	Dir      string        `yaml:"dir,omitempty"`
	Contains *TextMatch    `yaml:"contains,omitempty"`
	Matches  *PatternMatch `yaml:"matches,omitempty"`
	Count    *CountMatch   `yaml:"count,omitempty"`
	Any      []Predicate   `yaml:"any,omitempty"`
	All      []Predicate   `yaml:"all,omitempty"`
}

// TextMatch is a literal, case-sensitive substring search in a file.
type TextMatch struct {
	Path string `yaml:"path"`
	Text string `yaml:"text"`
}

// PatternMatch is a regular-expression search in a file.
type PatternMatch struct {
	Path    string `yaml:"path"`
	Pattern string `yaml:"pattern"`
}

// CountMatch requires at least Min entries of Dir whose names match Pattern.
type CountMatch struct {
	Dir     string `yaml:"dir"`
	Pattern string `yaml:"pattern"`

	// Min defaults to 1.
	Min int `yaml:"min,omitempty"`

	CaseSensitive bool `yaml:"case_sensitive,omitempty"`
}

// RuntimeSpec is the manifest form of RuntimeCheck.
type RuntimeSpec struct {
	// Section, when set, prints a section banner before the check.
	Section     string `yaml:"section,omitempty"`
	Name        string `yaml:"name"`
	Command     string `yaml:"command"`
	Unavailable string `yaml:"unavailable,omitempty"`
	Failure     string `yaml:"failure,omitempty"`
	Quiet       bool   `yaml:"quiet,omitempty"`
	Dir         string `yaml:"dir,omitempty"`

	// Timeout is a Go duration string such as "90s" or "5m".
	Timeout string `yaml:"timeout,omitempty"`
}

// Check converts r into a RuntimeCheck. The timeout must already
// have passed validation.
func (r RuntimeSpec) Check() RuntimeCheck {
	var timeout time.Duration
	if r.Timeout != "" {
		timeout, _ = time.ParseDuration(r.Timeout)
	}
	return RuntimeCheck{
		Name:        r.Name,
		Command:     r.Command,
		Unavailable: r.Unavailable,
		Failure:     r.Failure,
		Quiet:       r.Quiet,
		Timeout:     timeout,
		Dir:         r.Dir,
	}
}

// LoadManifest reads a manifest file. YAML (.yaml, .yml), JSON (.json) and
// CUE (.cue) are accepted; all are decoded strictly, so unknown fields are
// rejected, and the result is validated.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml", ".json":
	case ".cue":
		data, err = cueToJSON(path, data)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported manifest extension %q: use .yaml, .yml, .json or .cue", ext)
	}

	return ParseManifest(data)
}

// ParseManifest decodes and validates a YAML (or JSON) manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}
	return &m, nil
}

// Count returns the number of static requirements and runtime checks.
func (m *Manifest) Count() int {
	n := len(m.Runtime)
	for _, sec := range m.Sections {
		n += len(sec.Checks)
	}
	return n
}
