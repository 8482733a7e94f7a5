// Package config provides configuration structures and utilities for biblescan.
// It defines the main configuration options for scanning translation files,
// directory discovery settings, and report generation preferences.
package config
