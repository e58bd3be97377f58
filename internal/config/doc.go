// Package config loads, validates, and normalizes persona's TOML
// configuration.
//
// Configuration is resolved from an explicit --config path, then
// ~/.config/persona/config.toml, then persona.toml in the working directory,
// falling back to built-in defaults when no file exists. All path fields are
// tilde-expanded and absolutized during load. The loaded Config is immutable;
// core packages receive it at construction and never read ambient state.
package config
