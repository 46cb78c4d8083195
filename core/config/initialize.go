package config

import (
	"log"
	"os"
	"path/filepath"
)

// Initialize writes the default configuration into the given directory and
// loads it back. Existing files are left alone so re-running is safe.
func Initialize(path string, logger *log.Logger) (*Configuration, error) {
	configPath := filepath.Join(path, ConfigurationName)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		logger.Printf("Creating %s", configPath)
		if err := os.WriteFile(configPath, defaultConfigData, 0600); err != nil {
			return nil, err
		}
	} else {
		logger.Printf("%s already exists, skipping", configPath)
	}

	return Load(path)
}
