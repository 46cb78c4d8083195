package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load loads the configuration from the directory.
func Load(path string) (*Configuration, error) {
	// If given the path to a config.yaml file, move back up a level.
	if filepath.Base(path) == ConfigurationName {
		path = filepath.Dir(path)
	}

	return loadFs(afero.NewBasePathFs(afero.NewOsFs(), path))
}

func loadFs(fs afero.Fs) (*Configuration, error) {
	configContents, err := afero.ReadFile(fs, ConfigurationName)
	if err != nil {
		return nil, err
	}
	var out Configuration
	if err := yaml.UnmarshalStrict(configContents, &out); err != nil {
		return nil, fmt.Errorf("couldn't parse %s: %w", ConfigurationName, err)
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	out.configFs = fs
	return &out, nil
}
