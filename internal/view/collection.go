package view

import (
	"fmt"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
	"gopkg.in/yaml.v3"
)

// Entry describes how to produce the view for one route key.
type Entry struct {
	// Tag names the element to construct.
	Tag string `yaml:"tag"`
	// Module locates the module defining Tag. Empty when Tag is always
	// available.
	Module string `yaml:"module,omitempty"`
}

// UnmarshalYAML accepts either a mapping or a bare tag name.
func (e *Entry) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		e.Tag = strings.TrimSpace(n.Value)
		e.Module = ""
		return nil
	}
	type plain Entry
	var p plain
	if err := n.Decode(&p); err != nil {
		return err
	}
	*e = Entry(p)
	return nil
}

// Collection maps route keys to entries.
type Collection map[string]Entry

// Keys returns the route keys in sorted order.
func (c Collection) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Suggest returns the key closest to key, if any is close enough to be a
// plausible typo. The distance must stay below the length of key, so very
// short keys only match case-insensitively.
func (c Collection) Suggest(key string) (string, bool) {
	if key == "" {
		return "", false
	}
	best, bestDist := "", -1
	for _, k := range c.Keys() {
		d := levenshtein.ComputeDistance(strings.ToLower(key), strings.ToLower(k))
		if bestDist < 0 || d < bestDist {
			best, bestDist = k, d
		}
	}
	limit := min(max(2, len(key)/3), len(key)-1)
	if bestDist < 0 || bestDist > limit {
		return "", false
	}
	return best, true
}

// ParseCollections reads named collections from YAML:
//
//	main:
//	  inicio: {tag: vista-inicio, module: inicio}
//	  ayuda: vista-ayuda
func ParseCollections(data []byte) (map[string]Collection, error) {
	var out map[string]Collection
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse view collections: %w", err)
	}
	for name, c := range out {
		for key, e := range c {
			if e.Tag == "" {
				return nil, fmt.Errorf("parse view collections: %s.%s: missing tag", name, key)
			}
		}
	}
	return out, nil
}

// Merge returns a copy of c with the entries of override applied on top.
func (c Collection) Merge(override Collection) Collection {
	out := make(Collection, len(c)+len(override))
	for k, e := range c {
		out[k] = e
	}
	for k, e := range override {
		out[k] = e
	}
	return out
}
