package catalog

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Overlay represents user overrides from catalog.yaml.
//
//	stacks:
//	  monitoring:
//	    file: stacks/monitoring.yml
//	services:
//	  - name: grafana
//	    stack: monitoring
//	    port: 3300
//	    path: /api/health
type Overlay struct {
	Stacks   map[string]*StackOverride `yaml:"stacks"`
	Services []Service                 `yaml:"services"`
}

// StackOverride replaces fields of an existing stack or declares a new one.
type StackOverride struct {
	File        string `yaml:"file,omitempty"`
	Optional    *bool  `yaml:"optional,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// LoadOverlay reads an overlay file. A missing file yields an empty overlay.
func LoadOverlay(path string) (*Overlay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Overlay{Stacks: make(map[string]*StackOverride)}, nil
		}
		return nil, fmt.Errorf("failed to read catalog overlay: %w", err)
	}

	var ov Overlay
	if err := yaml.Unmarshal(data, &ov); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if ov.Stacks == nil {
		ov.Stacks = make(map[string]*StackOverride)
	}
	return &ov, nil
}

// Load returns the default catalog with the overlay at path applied and validated.
func Load(path string) (*Catalog, error) {
	ov, err := LoadOverlay(path)
	if err != nil {
		return nil, err
	}
	cat := Merge(Default(), ov)
	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", path, err)
	}
	return cat, nil
}

// Merge applies ov to a copy of base. Stacks are patched in place or appended
// (sorted by name for determinism); services replace by name or append.
func Merge(base *Catalog, ov *Overlay) *Catalog {
	result := base.Clone()
	if ov == nil {
		return result
	}

	stackIdx := make(map[string]int)
	for i, s := range result.Stacks {
		stackIdx[s.Name] = i
	}
	for _, name := range sortedKeys(ov.Stacks) {
		o := ov.Stacks[name]
		if o == nil {
			continue
		}
		if idx, ok := stackIdx[name]; ok {
			applyStackOverride(&result.Stacks[idx], o)
			continue
		}
		st := Stack{Name: name, Optional: true}
		applyStackOverride(&st, o)
		stackIdx[name] = len(result.Stacks)
		result.Stacks = append(result.Stacks, st)
	}

	svcIdx := make(map[string]int)
	for i, s := range result.Services {
		svcIdx[s.Name] = i
	}
	for _, s := range ov.Services {
		if s.Method == "" {
			s.Method = MethodGET
		}
		if idx, ok := svcIdx[s.Name]; ok {
			result.Services[idx] = s
			continue
		}
		svcIdx[s.Name] = len(result.Services)
		result.Services = append(result.Services, s)
	}

	return result
}

// Export renders c in overlay form. Loading the result reproduces c.
func (c *Catalog) Export() *Overlay {
	ov := &Overlay{Stacks: make(map[string]*StackOverride, len(c.Stacks))}
	for _, st := range c.Stacks {
		optional := st.Optional
		ov.Stacks[st.Name] = &StackOverride{
			File:        st.File,
			Optional:    &optional,
			Description: st.Description,
		}
	}
	ov.Services = make([]Service, len(c.Services))
	copy(ov.Services, c.Services)
	return ov
}

func applyStackOverride(st *Stack, o *StackOverride) {
	if o.File != "" {
		st.File = o.File
	}
	if o.Optional != nil {
		st.Optional = *o.Optional
	}
	if o.Description != "" {
		st.Description = o.Description
	}
}

func sortedKeys(m map[string]*StackOverride) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
