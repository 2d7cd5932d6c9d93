package report

import "strings"

// Render formats the downloadable report.
func Render(summary string, keyPoints []string, transcription string) string {
	var b strings.Builder
	b.WriteString("=== Meeting Summary ===\n")
	b.WriteString(summary)
	b.WriteString("\n\n=== Key Points ===\n")
	for _, p := range keyPoints {
		b.WriteString("- ")
		b.WriteString(p)
		b.WriteString("\n")
	}
	b.WriteString("\n=== Full Transcription ===\n")
	b.WriteString(transcription)
	b.WriteString("\n")
	return b.String()
}
