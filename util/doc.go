// Package util holds small helpers shared by meetnotes packages: size
// parsing for upload limits, secret masking for logs and upload filename
// sanitizing.
package util
