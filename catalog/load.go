package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Parse decodes a catalog document. YAML and JSON are both accepted; the
// document is either a list of categories or a mapping with a
// "categories" key.
func Parse(data []byte) (*Catalog, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, fmt.Errorf("parse catalog: empty document")
	}

	doc := root.Content[0]
	var cat Catalog
	switch doc.Kind {
	case yaml.SequenceNode:
		if err := doc.Decode(&cat.Categories); err != nil {
			return nil, fmt.Errorf("decode categories: %w", err)
		}
	case yaml.MappingNode:
		if err := doc.Decode(&cat); err != nil {
			return nil, fmt.Errorf("decode catalog: %w", err)
		}
	default:
		return nil, fmt.Errorf("parse catalog: unexpected top-level node at line %d", doc.Line)
	}

	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Load reads and parses the catalog at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return cat, nil
}

// Write serializes cat as YAML to path, creating parent directories.
func Write(path string, cat *Catalog) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cat)
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
