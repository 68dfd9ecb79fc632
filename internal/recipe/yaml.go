package recipe

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// yamlRecipe is the on-disk YAML shape. Requires entries keep the same
// "name/version" pin syntax as the text form.
type yamlRecipe struct {
	Settings   []string          `yaml:"settings"`
	Generators []string          `yaml:"generators"`
	Requires   []string          `yaml:"requires"`
	Options    map[string]string `yaml:"options"`
	Layout     string            `yaml:"layout"`
}

// ParseYAML reads a recipe in the YAML form, with the same file/data
// contract as Parse.
func ParseYAML(file string, data []byte) (*Recipe, error) {
	if data == nil {
		var err error
		data, err = os.ReadFile(file)
		if err != nil {
			return nil, err
		}
	}

	var y yamlRecipe
	if err := yaml.Unmarshal(data, &y); err != nil {
		return nil, fmt.Errorf("%s: %w", origin(file), err)
	}

	r := &Recipe{
		Path:       file,
		Settings:   y.Settings,
		Generators: y.Generators,
		Options:    y.Options,
		Layout:     y.Layout,
	}
	for _, pin := range y.Requires {
		req, err := parsePin(pin)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", origin(file), err)
		}
		r.Requires = append(r.Requires, req)
	}
	return r, nil
}

// Load parses file by extension: .yaml/.yml as the YAML form, everything
// else as the text form.
func Load(file string) (*Recipe, error) {
	switch filepath.Ext(file) {
	case ".yaml", ".yml":
		return ParseYAML(file, nil)
	default:
		return Parse(file, nil)
	}
}
