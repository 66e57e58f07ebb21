// SPDX-License-Identifier: MPL-2.0

// Package config loads the launcher configuration.
//
// Configuration is optional: the defaults reproduce the original launcher
// behavior exactly (venv_py310 next to the binary, app.py as entry point,
// pause on every exit branch). When a config file is present it is a CUE
// document validated against the embedded #Config schema before being
// merged into Viper.
package config
