// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride allows tests to override the config directory.
// This is necessary because os.UserHomeDir() doesn't reliably respect
// the HOME environment variable on all platforms (e.g., macOS in CI).
var configDirOverride string

// configFilePathOverride holds the --config flag value when set.
var configFilePathOverride string

// binaryDirOverride allows tests to override the launcher-binary directory
// consulted during config file resolution. os.Executable points at the test
// binary during tests, so the real lookup cannot be exercised directly.
var binaryDirOverride string

// current caches the last successfully loaded configuration.
var current *Config

// Reset clears overrides and the cached config. Call from test cleanup to
// restore defaults.
func Reset() {
	configDirOverride = ""
	configFilePathOverride = ""
	binaryDirOverride = ""
	current = nil
}

// SetConfigDirOverride sets a custom config directory path.
// Primarily intended for testing, to bypass platform directory resolution.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// SetConfigFilePathOverride sets an explicit config file path (--config flag).
func SetConfigFilePathOverride(path string) {
	configFilePathOverride = path
}

// SetBinaryDirOverride sets a custom launcher-binary directory.
// Primarily intended for testing, to bypass os.Executable resolution.
func SetBinaryDirOverride(dir string) {
	binaryDirOverride = dir
}

// Get returns the cached configuration, or the defaults when nothing has
// been loaded yet.
func Get() *Config {
	if current == nil {
		return DefaultConfig()
	}
	return current
}
