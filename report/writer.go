package report

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	apperrors "github.com/kbukum/meetnotes/errors"
	"github.com/kbukum/meetnotes/logger"
	"github.com/kbukum/meetnotes/storage"
)

const (
	defaultPrefix    = "reports"
	defaultURLPrefix = "/download"
)

// Config controls report persistence.
type Config struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// Prefix is the storage directory for reports.
	Prefix string `yaml:"prefix" mapstructure:"prefix"`
	// URLPrefix is the route reports are served from.
	URLPrefix string `yaml:"url_prefix" mapstructure:"url_prefix"`
}

// ApplyDefaults fills zero fields.
func (c *Config) ApplyDefaults() {
	if c.Prefix == "" {
		c.Prefix = defaultPrefix
	}
	if c.URLPrefix == "" {
		c.URLPrefix = defaultURLPrefix
	}
}

// Writer stores reports keyed by recording id.
type Writer struct {
	store storage.Storage
	cfg   Config
	log   *logger.Logger
}

// NewWriter creates a Writer. A nil store or a disabled config yields a
// writer that stores nothing.
func NewWriter(store storage.Storage, cfg Config, log *logger.Logger) *Writer {
	cfg.ApplyDefaults()
	if log == nil {
		log = logger.Nop()
	}
	if store == nil {
		cfg.Enabled = false
	}
	return &Writer{store: store, cfg: cfg, log: log.WithComponent("report")}
}

// Enabled reports whether the writer persists anything.
func (w *Writer) Enabled() bool { return w.cfg.Enabled }

// Key returns the storage path of a recording's report.
func (w *Writer) Key(recordingID string) string {
	return path.Join(w.cfg.Prefix, recordingID+".txt")
}

// Save stores content and returns its download URL. Storage failures are
// logged and yield nil; they never fail the caller.
func (w *Writer) Save(ctx context.Context, recordingID, content string) *string {
	if !w.cfg.Enabled {
		return nil
	}
	if err := w.store.Upload(ctx, w.Key(recordingID), strings.NewReader(content)); err != nil {
		appErr := apperrors.StorageError("save report", err)
		w.log.WithContext(ctx).Error("report not saved", logger.Fields(
			logger.FieldRecordingID, recordingID,
			logger.FieldError, appErr.Error(),
		))
		return nil
	}
	url := strings.TrimRight(w.cfg.URLPrefix, "/") + "/" + recordingID
	return &url
}

// Open returns the stored report for recordingID. The caller closes it.
func (w *Writer) Open(ctx context.Context, recordingID string) (io.ReadCloser, error) {
	if !w.cfg.Enabled {
		return nil, apperrors.NotFound("report", recordingID)
	}
	rc, err := w.store.Download(ctx, w.Key(recordingID))
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return nil, apperrors.NotFound("report", recordingID)
	case err != nil:
		return nil, apperrors.StorageError("open report", err)
	}
	return rc, nil
}
