package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application's configuration.
type Config struct {
	Server struct {
		Port        string   `yaml:"port"`
		Env         string   `yaml:"env"`
		CORSOrigins []string `yaml:"cors_origins"`
	} `yaml:"server"`
	Model struct {
		ArtifactPath string `yaml:"artifact_path"`
		MetadataPath string `yaml:"metadata_path"`
	} `yaml:"model"`
}

// LoadConfig reads configuration from the specified YAML file.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	if config.Server.Port == "" {
		config.Server.Port = "8000"
	}
	if config.Model.ArtifactPath == "" {
		config.Model.ArtifactPath = "models/spam_model.json"
	}
	if config.Model.MetadataPath == "" {
		config.Model.MetadataPath = "models/model_metadata.json"
	}

	return config, nil
}
