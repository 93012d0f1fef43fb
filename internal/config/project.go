package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ProjectFile is the optional per-directory project configuration.
const ProjectFile = "sust.yaml"

// Project is the parsed sust.yaml. It lets a directory name its entry
// script and default arguments so the interpreter can be started with
// no command line at all.
type Project struct {
	// Script is the path of the entry script, relative to the file.
	Script string `yaml:"script"`
	// Args are prepended default script arguments; command-line
	// arguments follow them.
	Args []string `yaml:"args,omitempty"`
}

// LoadProject reads path. A missing file is not an error; it returns
// (nil, nil) so callers can fall back to pure command-line operation.
func LoadProject(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if p.Script == "" {
		return nil, fmt.Errorf("%s: missing script entry", path)
	}
	return &p, nil
}
