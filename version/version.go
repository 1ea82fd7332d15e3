package version

import "fmt"

// Set at build time with -ldflags "-X nastconv/version.GitTag=...".
var GitCommit string
var GitTag string
var UserAgent string

func init() {
	UserAgent = fmt.Sprintf("nastconv/%s+%s", GitTag, GitCommit)
}

func String() string {
	tag := GitTag
	if tag == "" {
		tag = "dev"
	}
	return fmt.Sprintf("nastconv %s (%s)", tag, GitCommit)
}
