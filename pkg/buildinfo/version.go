// Package buildinfo provides build-time version information for voltpath.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/signalgrid/voltpath/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/signalgrid/voltpath/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/signalgrid/voltpath/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import (
	"fmt"
	"runtime"
)

var (
	// Version is the semantic version (e.g., "v1.2.3").
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// String returns the formatted build information, including the Go runtime
// the binary was built with.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s\ngo: %s",
		Version, Commit, Date, runtime.Version())
}

// Template returns the version template string for cobra's --version output.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\ngo: %s\n",
		Version, Commit, Date, runtime.Version())
}
