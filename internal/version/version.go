package version

import (
	"cmp"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// Stamped by the release build, e.g.
//
//	go build -ldflags "-X github.com/sirchsolutions/sirchweb/internal/version.Version=v1.0.0"
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// BuildInfo is reported by /health and `sirchctl version`
type BuildInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	GitCommit string `json:"git_commit"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetBuildInfo describes the running binary
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		BuildTime: BuildTime,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// Info formats the build for humans
func Info() string {
	return info(GetBuildInfo())
}

func info(b BuildInfo) string {
	if b.BuildTime == "unknown" {
		return b.Version + " (development build)"
	}

	built, err := time.Parse(time.RFC3339, b.BuildTime)
	if err != nil {
		return fmt.Sprintf("%s (built %s)", b.Version, b.BuildTime)
	}

	commit := b.GitCommit
	if len(commit) > 8 {
		commit = commit[:8]
	}
	return fmt.Sprintf("%s (built %s, commit %s)", b.Version, built.UTC().Format("2006-01-02 15:04:05 UTC"), commit)
}

// CompareVersions orders two release tags such as "v1.4.2" or "1.5.0-rc.1".
// It returns -1, 0 or 1. "dev" and "unknown" sort before every release.
func CompareVersions(v1, v2 string) int {
	a, b := parseRelease(v1), parseRelease(v2)
	switch {
	case a.dev && b.dev:
		return 0
	case a.dev:
		return -1
	case b.dev:
		return 1
	}

	for i := range max(len(a.core), len(b.core)) {
		if c := cmp.Compare(a.segment(i), b.segment(i)); c != 0 {
			return c
		}
	}

	// A pre-release sorts before its release
	switch {
	case a.pre == b.pre:
		return 0
	case a.pre == "":
		return 1
	case b.pre == "":
		return -1
	}
	return strings.Compare(a.pre, b.pre)
}

type release struct {
	core []int
	pre  string
	dev  bool
}

func (r release) segment(i int) int {
	if i < len(r.core) {
		return r.core[i]
	}
	return 0
}

func parseRelease(v string) release {
	v = strings.TrimPrefix(v, "v")
	if v == "dev" || v == "unknown" {
		return release{dev: true}
	}

	core, pre, _ := strings.Cut(v, "-")
	var r release
	r.pre = pre
	for _, part := range strings.Split(core, ".") {
		r.core = append(r.core, leadingNumber(part))
	}
	return r
}

// leadingNumber reads the digits a segment starts with; "7rc" is 7, "x" is 0
func leadingNumber(part string) int {
	end := strings.IndexFunc(part, func(r rune) bool { return r < '0' || r > '9' })
	if end < 0 {
		end = len(part)
	}
	n, err := strconv.Atoi(part[:end])
	if err != nil {
		return 0
	}
	return n
}

// IsNewer reports whether candidate is a later release than current
func IsNewer(current, candidate string) bool {
	return CompareVersions(current, candidate) < 0
}
