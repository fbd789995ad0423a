// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

import _ "embed"

const (
	// Pplay is the canonical application identifier used for filesystem paths and CLI branding.
	Pplay = "pplay"

	// Version is the current application semantic version string.
	Version = "0.3.0"
)

// Build metadata, overridden at link time with -ldflags "-X".
var (
	BuiltAt  = ""
	BuiltBy  = ""
	Revision = ""
)

// Logo is the banner printed above the root command help.
//
//go:embed ascii.txt
var Logo string

// GOOS values pplay knows install instructions for.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)
