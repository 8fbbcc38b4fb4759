package pagespec

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/pagebind/pagebind/pkg/errors"
	"github.com/pagebind/pagebind/pkg/layout"
)

// FileConfig mirrors the user configuration file
// (~/.config/pagebind/config.toml). Every field is optional; set fields
// override the built-in defaults and are themselves overridden by
// command flags.
//
// Example:
//
//	page-size = "A4"
//	dpi = 300
//	margin = "10"
//	scaling = "fit"
//	align-h = "center"
//	align-v = "center"
//	autorotate = true
//	auto-orient = false
type FileConfig struct {
	PageSize   string   `toml:"page-size"`
	DPI        *float64 `toml:"dpi"`
	Margin     string   `toml:"margin"`
	Scaling    string   `toml:"scaling"`
	AlignH     string   `toml:"align-h"`
	AlignV     string   `toml:"align-v"`
	Autorotate *bool    `toml:"autorotate"`
	AutoOrient *bool    `toml:"auto-orient"`
}

// ConfigPath returns the configuration file location, honoring
// XDG_CONFIG_HOME before falling back to ~/.config.
func ConfigPath(appName string) (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// LoadConfig reads a TOML config file and applies it on top of the
// given defaults. A missing file is not an error; the defaults are
// returned unchanged. Malformed values inside an existing file are
// configuration errors and abort the run.
func LoadConfig(path string, defaults Defaults) (Defaults, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return defaults, nil
	}
	if err != nil {
		return defaults, err
	}

	var cfg FileConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return defaults, errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed config file %s", path)
	}
	return applyConfig(cfg, defaults)
}

// applyConfig validates and merges set config fields into defaults.
func applyConfig(cfg FileConfig, d Defaults) (Defaults, error) {
	if cfg.PageSize != "" {
		size, err := ParseSize(cfg.PageSize)
		if err != nil {
			return d, err
		}
		d.PageSize = size
	}
	if cfg.DPI != nil {
		if *cfg.DPI <= 0 {
			return d, errors.New(errors.ErrCodeInvalidDPI, "dpi must be positive, got %v", *cfg.DPI)
		}
		d.DPI = *cfg.DPI
	}
	if cfg.Margin != "" {
		margins, err := ParseMargins(cfg.Margin)
		if err != nil {
			return d, err
		}
		d.MarginMM = margins
	}
	if cfg.Scaling != "" {
		scaling, err := layout.ParseScaling(cfg.Scaling)
		if err != nil {
			return d, err
		}
		d.Scaling = scaling
	}
	if cfg.AlignH != "" {
		alignH, err := layout.ParseHAlign(cfg.AlignH)
		if err != nil {
			return d, err
		}
		d.AlignH = alignH
	}
	if cfg.AlignV != "" {
		alignV, err := layout.ParseVAlign(cfg.AlignV)
		if err != nil {
			return d, err
		}
		d.AlignV = alignV
	}
	if cfg.Autorotate != nil {
		d.Autorotate = *cfg.Autorotate
	}
	if cfg.AutoOrient != nil {
		d.AutoOrient = *cfg.AutoOrient
	}
	return d, nil
}
