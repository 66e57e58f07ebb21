// SPDX-License-Identifier: MPL-2.0

package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"vlaunch/internal/issue"
	"vlaunch/internal/launcher"
	"vlaunch/pkg/platform"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "vlaunch"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "vlaunch"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"

	// maxConfigFileSize caps config files to keep CUE compilation bounded.
	maxConfigFileSize = 1 << 20
)

//go:embed config_schema.cue
var configSchema string

type (
	// Config is the launcher configuration.
	Config struct {
		// VenvDir is the virtual environment directory name.
		VenvDir VenvDirName `mapstructure:"venv_dir"`
		// EntryPoint is the script file passed to the interpreter.
		EntryPoint EntryPoint `mapstructure:"entry_point"`
		// Interpreter overrides the venv-resolved interpreter when non-empty.
		Interpreter string `mapstructure:"interpreter"`
		// BaseDir overrides the launcher-binary-directory default when non-empty.
		BaseDir string `mapstructure:"base_dir"`
		// Pause controls whether exit branches block on user acknowledgment.
		Pause bool `mapstructure:"pause"`
		// UI holds presentation settings.
		UI UIConfig `mapstructure:"ui"`
	}

	// UIConfig holds presentation settings.
	UIConfig struct {
		// Verbose enables diagnostic logging.
		Verbose bool `mapstructure:"verbose"`
		// ColorScheme selects the terminal color scheme for rendered panels.
		ColorScheme ColorScheme `mapstructure:"color_scheme"`
	}
)

// DefaultConfig returns the configuration that reproduces the original
// launcher behavior with no config file present.
func DefaultConfig() *Config {
	return &Config{
		VenvDir:    "venv_py310",
		EntryPoint: "app.py",
		Pause:      true,
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
	}
}

// IsValid returns whether every field of the Config passes validation,
// and the collected validation errors if not.
func (c *Config) IsValid() (bool, []error) {
	var errs []error
	if ok, fieldErrs := c.VenvDir.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if ok, fieldErrs := c.EntryPoint.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if ok, fieldErrs := c.UI.ColorScheme.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{Errors: errs}}
	}
	return true, nil
}

// ConfigDir returns the vlaunch configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, and Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case platform.Windows:
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// Load reads the configuration from the resolved config file (or falls
// back to defaults when none exists), validates it, and caches the result
// for Get. A missing config file is not an error.
func Load() (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("venv_dir", string(defaults.VenvDir))
	v.SetDefault("entry_point", string(defaults.EntryPoint))
	v.SetDefault("interpreter", defaults.Interpreter)
	v.SetDefault("base_dir", defaults.BaseDir)
	v.SetDefault("pause", defaults.Pause)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("ui.color_scheme", string(defaults.UI.ColorScheme))

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// An explicit --config path is used exclusively; its absence is an error.
	if configFilePathOverride != "" {
		if !fileExists(configFilePathOverride) {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(configFilePathOverride).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Check that the file exists and is readable").
				Wrap(fmt.Errorf("config file not found: %s", configFilePathOverride)).
				BuildError()
		}
		if err := loadCUEIntoViper(v, configFilePathOverride); err != nil {
			return nil, wrapConfigLoadError(err, configFilePathOverride)
		}
	} else if path, ok := resolveConfigFile(); ok {
		if err := loadCUEIntoViper(v, path); err != nil {
			return nil, wrapConfigLoadError(err, path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if ok, errs := cfg.IsValid(); !ok {
		return nil, errs[0]
	}

	current = &cfg
	return &cfg, nil
}

// resolveConfigFile searches the default locations: vlaunch.cue next to
// the launcher binary first, then the platform config directory. The
// binary-adjacent location wins so a config shipped alongside the
// launcher works no matter where it is invoked from.
func resolveConfigFile() (string, bool) {
	fileName := ConfigFileName + "." + ConfigFileExt

	if binDir, err := binaryDir(); err == nil {
		path := filepath.Join(binDir, fileName)
		if fileExists(path) {
			return path, true
		}
	}

	if cfgDir, err := ConfigDir(); err == nil {
		path := filepath.Join(cfgDir, fileName)
		if fileExists(path) {
			return path, true
		}
	}

	return "", false
}

// binaryDir resolves the directory containing the launcher binary.
func binaryDir() (string, error) {
	if binaryDirOverride != "" {
		return binaryDirOverride, nil
	}
	return launcher.DefaultBaseDir()
}

func wrapConfigLoadError(err error, path string) error {
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithSuggestion("Check that the file contains valid CUE syntax").
		WithSuggestion("Verify the configuration values match the expected schema").
		Wrap(err).
		BuildError()
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config
// schema, and merges its contents into Viper. Manual CUE handling (rather
// than decoding straight to a struct) keeps Viper as the single precedence
// authority across defaults, file values, and environment variables.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if len(data) > maxConfigFileSize {
		return fmt.Errorf("config file %s exceeds %d bytes", path, maxConfigFileSize)
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return formatCUEError(userValue.Err(), path)
	}

	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	// Concrete(false): every config field is optional.
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return formatCUEError(err, path)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return formatCUEError(err, path)
	}

	return v.MergeConfigMap(configMap)
}

// formatCUEError prefixes CUE errors with the file path and the CUE path
// of the offending field, one line per error.
func formatCUEError(err error, path string) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return fmt.Errorf("%s: %w", path, err)
	}

	lines := make([]string, 0, len(errs))
	for _, e := range errs {
		if p := strings.Join(cueerrors.Path(e), "."); p != "" {
			lines = append(lines, fmt.Sprintf("%s: %s", p, e.Error()))
			continue
		}
		lines = append(lines, e.Error())
	}

	return fmt.Errorf("%s: %s", path, strings.Join(lines, "; "))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
