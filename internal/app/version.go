// Package app provides the core application structure for the sqrtcalc CLI.
// It handles application lifecycle, command dispatching, and version management.
package app

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/sqrtcalc/internal/sqrt"
)

// Build-time variables set via -ldflags.
//
// Example build command:
//
//	go build -ldflags="-X github.com/agbru/sqrtcalc/internal/app.Version=v1.2.3 -X github.com/agbru/sqrtcalc/internal/app.Commit=abc123 -X github.com/agbru/sqrtcalc/internal/app.BuildDate=2025-01-01T00:00:00Z" ./cmd/sqrtcalc
var (
	// Version is the semantic version of the application (e.g., "v1.0.0").
	Version = "dev"
	// Commit is the short Git commit hash (e.g., "abc123").
	Commit = "unknown"
	// BuildDate is the ISO 8601 timestamp of the build (e.g., "2025-01-01T00:00:00Z").
	BuildDate = "unknown"
)

// HasVersionFlag checks if any argument is a version flag, so that
// --version works even next to an otherwise invalid command line.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--version" || arg == "-version" || arg == "-V" {
			return true
		}
	}
	return false
}

// VersionData is the machine-readable form of the version information.
type VersionData struct {
	Version     string `json:"version"`
	Commit      string `json:"commit"`
	BuildDate   string `json:"build_date"`
	GoVersion   string `json:"go_version"`
	OS          string `json:"os"`
	Arch        string `json:"arch"`
	IntegerSqrt string `json:"integer_sqrt"`
}

// GetVersionInfo returns the current version information.
func GetVersionInfo() VersionData {
	return VersionData{
		Version:     Version,
		Commit:      Commit,
		BuildDate:   BuildDate,
		GoVersion:   runtime.Version(),
		OS:          runtime.GOOS,
		Arch:        runtime.GOARCH,
		IntegerSqrt: sqrt.IntegerSqrtBackend(),
	}
}

// PrintVersion outputs version information to the given writer.
func PrintVersion(out io.Writer) {
	info := GetVersionInfo()
	fmt.Fprintf(out, "sqrtcalc %s\n", info.Version)
	fmt.Fprintf(out, "  Commit:       %s\n", info.Commit)
	fmt.Fprintf(out, "  Built:        %s\n", info.BuildDate)
	fmt.Fprintf(out, "  Go version:   %s\n", info.GoVersion)
	fmt.Fprintf(out, "  OS/Arch:      %s/%s\n", info.OS, info.Arch)
	fmt.Fprintf(out, "  Integer sqrt: %s\n", info.IntegerSqrt)
}

// PrintVersionJSON writes the version information as a JSON object.
func PrintVersionJSON(out io.Writer) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(GetVersionInfo())
}
