package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// profilesDir returns (creating if needed) the directory holding named
// Config snapshots, so a caller can save a dialect+syntax combination once
// (e.g. "deepseek-r1", "qwen-xml") and select it later by name instead of
// repeating flags.
func profilesDir() (string, error) {
	dir := filepath.Join(configDir(), "profiles")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// SaveProfile writes cfg under name, overwriting any existing profile of
// the same name.
func SaveProfile(name string, cfg Config) error {
	dir, err := profilesDir()
	if err != nil {
		return err
	}

	filename := filepath.Join(dir, name+".yaml")
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(filename, data, 0644)
}

// LoadProfile reads a previously saved named Config and validates it.
func LoadProfile(name string) (*Config, error) {
	dir, err := profilesDir()
	if err != nil {
		return nil, err
	}

	filename := filepath.Join(dir, name+".yaml")
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("profile %q not found", name)
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("profile %q: %w", name, err)
	}
	return cfg, nil
}

// ListProfiles returns the names of all saved profiles.
func ListProfiles() ([]string, error) {
	dir, err := profilesDir()
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".yaml" {
			names = append(names, e.Name()[:len(e.Name())-5])
		}
	}
	return names, nil
}

// DeleteProfile removes a saved profile.
func DeleteProfile(name string) error {
	dir, err := profilesDir()
	if err != nil {
		return err
	}

	filename := filepath.Join(dir, name+".yaml")
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return fmt.Errorf("profile %q not found", name)
	}

	return os.Remove(filename)
}
