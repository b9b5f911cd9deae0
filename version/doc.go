// Package version exposes build version information for rxkit.
//
// Values are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/rxkit/version.Version=1.0.0"
//
// When unset, the commit is read from the module build info.
package version
