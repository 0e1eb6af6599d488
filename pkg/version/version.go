// Package version reports the gitget build. The variables are stamped by the
// release build:
//
//	go build -ldflags "-X github.com/quantmind-br/gitget/pkg/version.Version=1.4.0 \
//	  -X github.com/quantmind-br/gitget/pkg/version.Commit=$(git rev-parse --short HEAD)"
package version

import (
	"fmt"
	"runtime"
)

// Name is the product name used in version strings and the HTTP User-Agent
const Name = "gitget"

var (
	Version   = "dev"
	BuildTime = "unknown"
	Commit    = "unknown"
)

// Info describes the running binary
type Info struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	Commit    string `json:"commit"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the build info of the running binary
func Get() Info {
	return Info{
		Version:   Version,
		BuildTime: BuildTime,
		Commit:    Commit,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String renders the info on one line, e.g.
// "gitget 1.4.0 (commit: 3f2a9c1, built: 2026-01-05T10:00:00Z, go1.24.1 linux/amd64)"
func (i Info) String() string {
	return fmt.Sprintf("%s %s (commit: %s, built: %s, %s %s)",
		Name, i.Version, i.Commit, i.BuildTime, i.GoVersion, i.Platform)
}

// Short returns the bare version
func Short() string {
	return Version
}

// Full returns the one-line build info
func Full() string {
	return Get().String()
}

// UserAgent identifies gitget to source-control servers, e.g. "gitget/1.4.0"
func UserAgent() string {
	return Name + "/" + Version
}
