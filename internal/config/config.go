// Package config resolves runtime settings from viper (config file, env, flags).
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Defaults applied when a key is not set anywhere.
const (
	// DefaultEndpoint is the conversion backend's upload route.
	DefaultEndpoint = "https://finstmt-converter.herokuapp.com/upload-and-convert"

	// DefaultUserAgent identifies this client to the backend.
	DefaultUserAgent = "finconvert/0.1"
)

// Config holds everything the upload client and the UI need injected.
type Config struct {
	// Endpoint is the full URL the multipart conversion request is POSTed to.
	Endpoint string

	// Timeout bounds the whole HTTP exchange. Zero means no client-side
	// timeout: conversion of scanned statements can take minutes and the
	// request is expected to run to completion or transport failure.
	Timeout time.Duration

	// OutputDir is where the returned workbook is saved.
	OutputDir string

	UserAgent string
}

// Load reads settings out of v, falling back to defaults for unset keys.
// Callers are expected to have pointed v at a config file and the
// FINCONVERT_* environment before calling.
func Load(v *viper.Viper) Config {
	cfg := Config{
		Endpoint:  v.GetString("endpoint"),
		Timeout:   v.GetDuration("timeout"),
		OutputDir: v.GetString("output_dir"),
		UserAgent: v.GetString("user_agent"),
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	return cfg
}
