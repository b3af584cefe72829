package glotline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ProjectContext describes the project whose content is being translated.
// All fields are optional; empty fields contribute nothing to the prompt.
type ProjectContext struct {
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Domain      string `json:"domain,omitempty" yaml:"domain,omitempty"`
	Audience    string `json:"audience,omitempty" yaml:"audience,omitempty"`
}

// StyleGuide holds optional tone and context instructions injected into
// translation prompts. It is immutable for the duration of a run.
type StyleGuide struct {
	// General is a free-text style instruction applied to every locale.
	General string `json:"general,omitempty" yaml:"general,omitempty"`

	// Locales maps locale codes to locale-specific instructions. Only the
	// entry matching the run's target locale is used.
	Locales map[string]string `json:"locales,omitempty" yaml:"locales,omitempty"`

	// Project provides optional project context.
	Project *ProjectContext `json:"project,omitempty" yaml:"project,omitempty"`
}

// LocaleInstruction returns the locale-specific instruction for a target
// language, or empty when none matches.
func (sg *StyleGuide) LocaleInstruction(targetLang string) string {
	if sg == nil || sg.Locales == nil {
		return ""
	}
	return sg.Locales[targetLang]
}

// LoadStyleGuide reads a style guide from a JSON or YAML file. The format
// is chosen by file extension; anything that is not .yaml/.yml parses as
// JSON.
func LoadStyleGuide(path string) (*StyleGuide, error) {
	data, err := os.ReadFile(path) // #nosec G304 - CLI tool reads user-specified files
	if err != nil {
		return nil, fmt.Errorf("reading style guide: %w", err)
	}

	var sg StyleGuide
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &sg)
	default:
		err = json.Unmarshal(data, &sg)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing style guide: %w", err)
	}

	return &sg, nil
}
