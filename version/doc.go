// Package version reports the build of the running meetnotes binary.
//
// Version and BuildTime are set at link time; the commit and dirty flag
// come from the VCS stamp Go embeds in the binary:
//
//	go build -ldflags "-X github.com/kbukum/meetnotes/version.Version=1.2.0" ./cmd/meetnotes
package version
