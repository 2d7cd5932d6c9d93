package pipeline

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"regexp"

	"lukechampine.com/blake3"

	"github.com/kbukum/meetnotes/alignment"
)

// idBytes is how much of the BLAKE3 digest makes up a recording id.
const idBytes = 16

var idPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

// Recording is one uploaded audio file.
type Recording struct {
	// ID is derived from the file content, so re-uploads share it.
	ID       string
	Path     string
	Filename string
	Size     int64
}

// Result is everything produced for a recording.
type Result struct {
	RecordingID   string                `json:"recording_id"`
	Transcription string                `json:"transcription"`
	Utterances    []alignment.Utterance `json:"utterances"`
	Summary       string                `json:"summary"`
	KeyPoints     []string              `json:"key_points"`
	DownloadURL   *string               `json:"download_url"`
	Chunks        int                   `json:"chunks"`
	FailedChunks  int                   `json:"failed_chunks"`
}

// ContentID hashes r with BLAKE3 and returns the hex of the first 16 bytes.
func ContentID(r io.Reader) (string, error) {
	h := blake3.New(32, nil)
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("hashing recording: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)[:idBytes]), nil
}

// ValidID reports whether id has the shape ContentID produces.
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}

// NewRecording describes the file at path, hashing it for its id.
func NewRecording(path, filename string) (Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return Recording{}, fmt.Errorf("open recording: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only

	info, err := f.Stat()
	if err != nil {
		return Recording{}, fmt.Errorf("stat recording: %w", err)
	}
	id, err := ContentID(f)
	if err != nil {
		return Recording{}, err
	}
	return Recording{ID: id, Path: path, Filename: filename, Size: info.Size()}, nil
}
