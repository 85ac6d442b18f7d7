package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Preset is a named seeding profile loaded from a YAML file, so demo
// environments can be reproduced without remembering flag combinations.
type Preset struct {
	Name       string `yaml:"name"`
	Authors    int    `yaml:"authors"`
	Readers    int    `yaml:"readers"`
	Posts      int    `yaml:"posts"`
	MaxDays    int    `yaml:"max_days"`
	Clean      bool   `yaml:"clean"`
	SkipBcrypt bool   `yaml:"skip_bcrypt"`
}

type presetFile struct {
	Presets []Preset `yaml:"presets"`
}

// LoadPresets reads a preset definition file.
func LoadPresets(path string) ([]Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading preset file: %w", err)
	}
	var pf presetFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parsing preset file: %w", err)
	}
	return pf.Presets, nil
}

// FindPreset returns the preset with the given name.
func FindPreset(presets []Preset, name string) (Preset, error) {
	for _, p := range presets {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("preset %q not found", name)
}

// ToOptions converts a preset into seeder options.
func (p Preset) ToOptions() Options {
	return Options{
		NumAuthors:  p.Authors,
		NumReaders:  p.Readers,
		NumPosts:    p.Posts,
		MaxDays:     p.MaxDays,
		ShouldClean: p.Clean,
		SkipBcrypt:  p.SkipBcrypt,
	}
}
