package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "hop.yaml"

// LoadHop loads the game configuration.
// Search order: customPath -> ~/.hopbunny/configs/hop.yaml -> ./configs/hop.yaml -> embedded default.
// Only an explicit customPath can produce an error; every other source
// silently falls through to the next one.
func LoadHop(customPath string) (HopConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return HopConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return HopConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := Parse(defaultHopYAML)
	if err != nil {
		return DefaultHopConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the built-in defaults, so a partial file
// only overrides the keys it names, then validates the result.
func Parse(data []byte) (HopConfig, error) {
	cfg := DefaultHopConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return HopConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return HopConfig{}, err
	}
	return cfg, nil
}

// Marshal encodes the configuration as YAML.
func Marshal(cfg HopConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".hopbunny", "configs", filename)
}

// ApplyHopPreset modifies the config based on a difficulty preset.
func ApplyHopPreset(cfg *HopConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	switch preset {
	case DifficultyEasy:
		cfg.Platforms.Width += 2
		cfg.Physics.MoveSpeed *= 1.15
	case DifficultyHard:
		cfg.Platforms.Width = cfg.Platforms.HardWidth
		cfg.Camera.DeathMargin = 0
	}
}

// Validate reports every inconsistency in the configuration.
func (c HopConfig) Validate() error {
	var errs []error
	p := c.Physics

	if p.Gravity <= 0 {
		errs = append(errs, errors.New("physics.gravity must be positive"))
	}
	if p.JumpVelocity <= 0 {
		errs = append(errs, errors.New("physics.jump_velocity must be positive"))
	}
	if p.SpringVelocity < p.JumpVelocity {
		errs = append(errs, errors.New("physics.spring_velocity must be at least jump_velocity"))
	}
	if p.MaxFallSpeed <= 0 {
		errs = append(errs, errors.New("physics.max_fall_speed must be positive"))
	}
	if p.EdgeMode != EdgeWrap && p.EdgeMode != EdgeClamp {
		errs = append(errs, fmt.Errorf("physics.edge_mode %q must be %q or %q", p.EdgeMode, EdgeWrap, EdgeClamp))
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		errs = append(errs, errors.New("player size must be positive"))
	}

	pl := c.Platforms
	if pl.Width <= 0 || pl.HardWidth <= 0 {
		errs = append(errs, errors.New("platforms.width and hard_width must be positive"))
	}
	if pl.MinGap <= 0 || pl.MinGap > pl.MaxGap {
		errs = append(errs, errors.New("platforms: need 0 < min_gap <= max_gap"))
	}
	if pl.HardMinGap <= 0 || pl.HardMinGap > pl.HardMaxGap {
		errs = append(errs, errors.New("platforms: need 0 < hard_min_gap <= hard_max_gap"))
	}
	if pl.HardMaxGap-pl.HardMinGap > pl.MaxGap-pl.MinGap {
		errs = append(errs, errors.New("platforms: the hard gap range must not be wider than the easy one"))
	}
	if pl.ReachSafety <= 0 || pl.ReachSafety > 1 {
		errs = append(errs, errors.New("platforms.reach_safety must be in (0, 1]"))
	}
	if reach := p.MaxJumpHeight() * pl.ReachSafety; p.Gravity > 0 && pl.MinGap > reach {
		errs = append(errs, fmt.Errorf("platforms.min_gap %.2f exceeds the reachable height %.2f", pl.MinGap, reach))
	}
	if pl.Weights.Easy.Total() <= 0 || pl.Weights.Hard.Total() <= 0 {
		errs = append(errs, errors.New("platforms.weights need a positive total"))
	}

	if c.Camera.Margin < 0 || c.Camera.DeathMargin < 0 {
		errs = append(errs, errors.New("camera margins must not be negative"))
	}
	if c.Scoring.PointsPerCell <= 0 {
		errs = append(errs, errors.New("scoring.points_per_cell must be positive"))
	}

	return errors.Join(errs...)
}
