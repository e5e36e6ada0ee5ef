// Package config provides a small, path-addressed configuration document
// loaded from YAML, with typed accessors and a fallback-to-default
// built-in document so the runtime always has a usable configuration
// even with no file on disk.
package config

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// defaultDocument mirrors the embedded default configuration of the
// system this runtime is modeled on: four dispatcher goroutines, console
// logging at info level.
const defaultDocument = `
core:
  numberOfDispatchers: 4
logging:
  client:
    sink: console
    level: info
`

// Document is a loaded YAML configuration tree addressed by
// separator-joined paths, e.g. GetValue[int](doc, "core.numberOfDispatchers", ".").
type Document struct {
	root yaml.Node
}

// Load reads path and parses it as YAML. If path is empty or does not
// exist, the built-in default document is used instead; any other read
// or parse error is returned.
func Load(path string) (*Document, error) {
	data := []byte(defaultDocument)
	if path != "" {
		b, err := os.ReadFile(path)
		if err == nil {
			data = b
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	return &Document{root: root}, nil
}

// GetValue looks up path (its components joined by separator) in d and
// decodes the resulting YAML node into a T. It reports false if the path
// doesn't resolve to a value, leaving the caller free to fall back to
// its own default.
func GetValue[T any](d *Document, path, separator string) (T, bool) {
	var zero T
	node := resolve(&d.root, strings.Split(path, separator))
	if node == nil {
		return zero, false
	}

	var v T
	if err := node.Decode(&v); err != nil {
		return zero, false
	}
	return v, true
}

func resolve(root *yaml.Node, parts []string) *yaml.Node {
	n := root
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}

	for _, part := range parts {
		if n == nil || n.Kind != yaml.MappingNode {
			return nil
		}
		found := false
		for i := 0; i+1 < len(n.Content); i += 2 {
			if n.Content[i].Value == part {
				n = n.Content[i+1]
				found = true
				break
			}
		}
		if !found {
			return nil
		}
	}
	return n
}

// MustAtoi parses s as an int, returning fallback on any error. Used by
// callers translating environment-variable overrides into config values.
func MustAtoi(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
