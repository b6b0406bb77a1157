package app

import "fmt"

// Set at build time:
//
//	go build -ldflags "-X github.com/heartmarshall/use-of-force/internal/app.Version=1.4.0 -X ...Commit=$(git rev-parse HEAD)"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion is the version reported by /health and the startup log.
// The commit is shortened to seven characters.
func BuildVersion() string {
	commit := Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, commit, BuildTime)
}
