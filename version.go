package govlock

import "fmt"

// Release version, bumped on every tagged release.
const (
	Maj    = 0
	Min    = 1
	Fix    = 0
	Suffix = "-dev"
)

// GitCommit is set at build time with -ldflags.
var GitCommit = ""

// Version returns the release version followed by the commit it was built
// from, when known.
func Version() string {
	v := fmt.Sprintf("v%d.%d.%d%s", Maj, Min, Fix, Suffix)
	if GitCommit != "" {
		v += " " + GitCommit
	}
	return v
}
