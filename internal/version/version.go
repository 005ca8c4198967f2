package version

import "strings"

// Version is overridden at build time with -ldflags "-X .../version.Version=x.y.z"
var Version = "0.2.0"

const productName = "doh"

// UserAgent returns the User-Agent sent with every request
func UserAgent() string {
	return productName + "/" + strings.TrimPrefix(Version, "v")
}
