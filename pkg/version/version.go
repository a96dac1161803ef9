// Package version carries build information, set at link time:
//
//	go build -ldflags "-X github.com/jeanpaul/agenda/pkg/version.Version=v1.2.0 -X github.com/jeanpaul/agenda/pkg/version.Commit=$(git rev-parse --short HEAD)"
package version

var (
	Version = "dev"
	Commit  = "none"
)

// String formats the version the way `agenda version` prints it.
func String() string {
	return "agenda " + Version + " (" + Commit + ")"
}
