// Package config loads dictus settings from layered sources.
//
// Layers, later ones winning: the embedded defaults, a project file
// (dictus.toml or dictus.yaml) in the input directory, an explicit config
// file, DICTUS_* environment variables, and flag overrides.
package config
