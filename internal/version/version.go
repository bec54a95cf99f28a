package version

// Overridden at build time, e.g.
// -ldflags "-X threadgems/internal/version.Version=v1.2.0".
var (
	Version   string = "dev"
	GitCommit string = "unknown"
	BuildTime string = "unknown"
)

func GetVersion() string {
	return Version
}

func GetFullVersion() string {
	return Version + " (commit: " + GitCommit + ", built: " + BuildTime + ")"
}
