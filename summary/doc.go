// Package summary derives a prose summary and bulleted key points from a
// speaker-labeled transcript using a text generator.
//
// The summarizer sees the transcript without speaker prefixes or filler
// lines. Generator failures degrade to a fixed sentinel summary and an
// empty key-point list; nothing here returns an error.
package summary
