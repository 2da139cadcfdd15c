// Package buildinfo holds the version stamped into minid3 at link time:
//
//	go build -ldflags "-X github.com/matzehuels/minid3/pkg/buildinfo.Version=$(git describe --tags)" ./cmd/minid3
//
// Commit and Date are stamped the same way. Unstamped builds report "dev".
package buildinfo

import (
	"fmt"
	"strings"
)

var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// Template returns the cobra version template. Commit and build date lines
// appear only when they were stamped.
func Template() string {
	var b strings.Builder
	fmt.Fprintf(&b, "{{.Name}} %s\n", Version)
	if Commit != "" {
		fmt.Fprintf(&b, "commit %s\n", shortSHA(Commit))
	}
	if Date != "" {
		fmt.Fprintf(&b, "built  %s\n", Date)
	}
	return b.String()
}

// UserAgent is sent with remote dataset fetches.
func UserAgent() string { return "minid3/" + Version }

func shortSHA(sha string) string {
	if len(sha) > 12 {
		return sha[:12]
	}
	return sha
}
