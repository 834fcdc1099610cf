// Package buildinfo provides build information for QuestKeep.
//
// Version, Commit and BuildTime are injected via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/questkeep-go/internal/infra/buildinfo.Version=v0.3.0"
//
// When Commit is not injected it is taken from the VCS stamp the Go
// toolchain embeds. GoVersion always comes from the running binary.
package buildinfo
