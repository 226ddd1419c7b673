// Package rules loads template definitions: named rule files mapping template
// names to template strings. Files are JSON or YAML; the parsed mapping feeds
// template.LoadRegistry. Embedded defaults carry the protein identifier rule
// set.
package rules

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type ruleFile struct {
	Templates map[string]string `json:"templates" yaml:"templates"`
}

// Load reads a single rule file from disk and returns its template mapping.
func Load(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rules: read %s: %w", path, err)
	}
	doc, err := parseDocument(data, path)
	if err != nil {
		return nil, err
	}
	return definitions(doc, path, nil)
}

// LoadFS walks the provided filesystem and parses every JSON/YAML rule file,
// merging their template mappings. A template name defined in two files is an
// error; a rule set must have one source of truth per template.
func LoadFS(fsys fs.FS) (map[string]string, error) {
	defs := make(map[string]string)
	if fsys == nil {
		return defs, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		if !isRuleFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("rules: read %s: %w", path, err)
		}
		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}
		if _, err := definitions(doc, path, defs); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return defs, nil
}

func definitions(doc ruleFile, source string, into map[string]string) (map[string]string, error) {
	if into == nil {
		into = make(map[string]string, len(doc.Templates))
	}
	for rawName, text := range doc.Templates {
		name := strings.TrimSpace(rawName)
		if name == "" {
			return nil, fmt.Errorf("rules: file %s defines an empty template name", source)
		}
		if _, exists := into[name]; exists {
			return nil, fmt.Errorf("rules: duplicate template %q (file %s)", name, source)
		}
		into[name] = text
	}
	return into, nil
}

func parseDocument(data []byte, source string) (ruleFile, error) {
	var doc ruleFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return ruleFile{}, fmt.Errorf("rules: file %s is empty", source)
	}

	if strings.EqualFold(filepath.Ext(source), ".json") {
		if err := json.Unmarshal(data, &doc); err != nil {
			return ruleFile{}, fmt.Errorf("rules: parse %s: %w", source, err)
		}
		return doc, nil
	}

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return ruleFile{}, fmt.Errorf("rules: parse %s: %w", source, err)
	}
	return doc, nil
}

func isRuleFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}
