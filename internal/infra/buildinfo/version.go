package buildinfo

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/yndnr/questkeep-go/internal/core/domain"
)

// Build-time variables (set via ldflags).
var (
	// Version is the semantic version.
	Version = "dev"

	// Commit is the git commit hash.
	Commit = "unknown"

	// BuildTime is the build timestamp.
	BuildTime = "unknown"
)

// Info contains build information.
type Info struct {
	Version       string `json:"version" yaml:"version"`
	Commit        string `json:"commit" yaml:"commit"`
	BuildTime     string `json:"buildTime" yaml:"buildTime"`
	GoVersion     string `json:"goVersion" yaml:"goVersion"`
	SchemaVersion int    `json:"schemaVersion" yaml:"schemaVersion"`
}

// Get returns the build information.
func Get() Info {
	info := Info{
		Version:       Version,
		Commit:        Commit,
		BuildTime:     BuildTime,
		GoVersion:     runtime.Version(),
		SchemaVersion: domain.CurrentSchemaVersion,
	}
	if info.Commit == "unknown" {
		if rev, ok := vcsRevision(); ok {
			info.Commit = rev
		}
	}
	return info
}

// String returns a formatted version string.
func String() string {
	info := Get()
	return fmt.Sprintf("%s (%s) built at %s, schema v%d", info.Version, info.Commit, info.BuildTime, info.SchemaVersion)
}

func vcsRevision() (string, bool) {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "", false
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			rev := s.Value
			if len(rev) > 12 {
				rev = rev[:12]
			}
			return rev, true
		}
	}
	return "", false
}
