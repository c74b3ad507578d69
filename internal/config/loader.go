package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppDir is the directory under the user's home holding coquette's files.
const AppDir = ".coquette"

// LoadEngine loads the engine configuration.
// Search order: customPath -> ~/.coquette/configs/engine.yaml -> ./configs/engine.yaml -> embedded default
func LoadEngine(customPath string) (EngineConfig, error) {
	return load(customPath, "engine.yaml", defaultEngineYAML, DefaultEngineConfig, EngineConfig.Validate)
}

// LoadCollector loads the collector game configuration.
// Search order: customPath -> ~/.coquette/configs/collector.yaml -> ./configs/collector.yaml -> embedded default
func LoadCollector(customPath string) (CollectorConfig, error) {
	return load(customPath, "collector.yaml", defaultCollectorYAML, DefaultCollectorConfig, CollectorConfig.Validate)
}

// LoadScene loads a sandbox scene.
// Search order: customPath -> ~/.coquette/configs/sandbox.yaml -> ./configs/sandbox.yaml -> embedded default
func LoadScene(customPath string) (Scene, error) {
	return load(customPath, "sandbox.yaml", defaultSandboxYAML, emptyScene, Scene.Validate)
}

// ReadScene reads and validates the scene at path. Unlike LoadScene it never
// falls back to a default; hot reload uses it to reject broken edits.
func ReadScene(path string) (Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scene{}, fmt.Errorf("failed to read scene %s: %w", path, err)
	}
	return ParseScene(data)
}

// ParseScene decodes and validates a scene document.
func ParseScene(data []byte) (Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Scene{}, fmt.Errorf("failed to parse scene: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Scene{}, err
	}
	return s, nil
}

// load implements the search order shared by every config file. Files are
// decoded over the hardcoded defaults, so omitted keys keep their default.
// A broken user or local file is skipped; a broken custom file is an error.
func load[T any](customPath, filename string, embedded []byte, defaults func() T, validate func(T) error) (T, error) {
	decode := func(data []byte) (T, error) {
		cfg := defaults()
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
		return cfg, validate(cfg)
	}

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return defaults(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := decode(data)
		if err != nil {
			return defaults(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := decode(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		if cfg, err := decode(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := decode(embedded)
	if err != nil {
		return defaults(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// emptyScene keeps scene files from inheriting the default entities.
func emptyScene() Scene { return Scene{} }

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, AppDir, "configs", filename)
}

// DataPath returns the path of a file in ~/.coquette, or filename itself
// when the home directory is unavailable.
func DataPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filename
	}
	return filepath.Join(home, AppDir, filename)
}

// ApplyCollectorPreset modifies the config based on a difficulty preset.
func ApplyCollectorPreset(cfg *CollectorConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	switch preset {
	case DifficultyEasy:
		cfg.Hazards.Count = 1
		cfg.Hazards.Speed = 6
	case DifficultyHard:
		cfg.Hazards.Count = 4
		cfg.Hazards.Speed = 12
	}
}
