package app

// Build information populated via -ldflags at build time, e.g.
//
//	go build -ldflags "-X github.com/hyperifyio/htmlparse/internal/app.BuildVersion=1.2.0"
//
// BuildVersion is written to every extraction result.
var (
	// BuildVersion is the semantic version of the built binary.
	BuildVersion = "1.0.0"
	// BuildCommit is the VCS commit SHA associated with the build.
	BuildCommit = "unknown"
	// BuildDate is the ISO-8601 timestamp of the build.
	BuildDate = "unknown"
)
