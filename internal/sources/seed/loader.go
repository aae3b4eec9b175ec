// Package seed loads a default catalog from a YAML file.
package seed

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// templateVar matches {{LEARNTUBE_VAR_NAME}} placeholders.
var templateVar = regexp.MustCompile(`\{\{\s*(LEARNTUBE_VAR_[A-Z0-9_]+)\s*\}\}`)

// Loader handles loading and parsing of the seed file
type Loader struct {
	filePath string
}

// NewLoader creates a new seed loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and parses the seed file
func (l *Loader) Load() (File, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return File{}, fmt.Errorf("failed to read seed file: %w", err)
	}

	data = expandTemplateVariables(data, os.Getenv)

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return File{}, fmt.Errorf("failed to parse seed yaml: %w", err)
	}

	return file, nil
}

// expandTemplateVariables replaces {{LEARNTUBE_VAR_...}} with the value of
// the environment variable of the same name. Unset variables become "".
func expandTemplateVariables(data []byte, getenv func(string) string) []byte {
	return templateVar.ReplaceAllFunc(data, func(m []byte) []byte {
		name := templateVar.FindSubmatch(m)[1]
		return []byte(strings.TrimSpace(getenv(string(name))))
	})
}
