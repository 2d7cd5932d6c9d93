// Package report renders the plain-text meeting report and persists it
// through a storage backend so it can be downloaded later.
package report
