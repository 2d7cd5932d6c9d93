package transcription

// Request holds parameters for one transcription call.
type Request struct {
	// AudioPath is the path to the audio file to transcribe.
	AudioPath string `json:"audio_path"`
	// Language is the target language (e.g. "en").
	Language string `json:"language,omitempty"`
	// Task is "transcribe" or "translate" (into Language).
	Task string `json:"task,omitempty"`
	// Model overrides the backend's configured model.
	Model string `json:"model,omitempty"`
}

// Transcript is what a backend returns, in chunk-local time.
type Transcript struct {
	Text     string    `json:"text"`
	Segments []Segment `json:"segments,omitempty"`
	Language string    `json:"language,omitempty"`
}

// Segment is a time-aligned piece of transcript text, in seconds.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Result is the adapter's per-chunk output. Segments are in global time.
type Result struct {
	Text     string
	Segments []Segment
	// Failed is set when the engine call failed; Text then holds the
	// "Error: ..." marker.
	Failed bool
}
