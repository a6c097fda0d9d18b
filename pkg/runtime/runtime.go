package runtime

var (
	// Version is set at build time with -ldflags.
	Version   = "0.0.0-dev"
	GitCommit = "unknown"
	Timestamp = "unknown"
)
