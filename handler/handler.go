package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/meetnotes/logger"
	"github.com/kbukum/meetnotes/pipeline"
)

// Banner is the body of GET /.
const Banner = "Audio processing server is running."

const defaultUploadDir = "uploaded_audio"

// Processor runs a recording through the pipeline.
type Processor interface {
	Process(ctx context.Context, rec pipeline.Recording) (*pipeline.Result, error)
}

// KeyPointExtractor derives key points from any transcript.
type KeyPointExtractor interface {
	KeyPoints(ctx context.Context, text string) []string
}

// ReportOpener streams a stored report.
type ReportOpener interface {
	Open(ctx context.Context, recordingID string) (io.ReadCloser, error)
}

// Config controls upload handling.
type Config struct {
	// UploadDir receives uploads while they are processed.
	UploadDir string `yaml:"upload_dir" mapstructure:"upload_dir"`
}

// ApplyDefaults fills zero fields.
func (c *Config) ApplyDefaults() {
	if c.UploadDir == "" {
		c.UploadDir = defaultUploadDir
	}
}

// Handler serves the meetnotes HTTP API.
type Handler struct {
	cfg       Config
	pipeline  Processor
	keyPoints KeyPointExtractor
	reports   ReportOpener
	log       *logger.Logger
}

// New builds a Handler and creates the upload directory. reports may be
// nil, in which case /download always answers 404.
func New(cfg Config, proc Processor, kp KeyPointExtractor, reports ReportOpener, log *logger.Logger) (*Handler, error) {
	cfg.ApplyDefaults()
	if proc == nil || kp == nil {
		return nil, errors.New("handler: pipeline and key point extractor are required")
	}
	if err := os.MkdirAll(cfg.UploadDir, 0o750); err != nil {
		return nil, fmt.Errorf("handler: create upload dir: %w", err)
	}
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Handler{
		cfg:       cfg,
		pipeline:  proc,
		keyPoints: kp,
		reports:   reports,
		log:       log.WithComponent("handler"),
	}, nil
}

// Register mounts the routes on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/", h.Index)
	r.POST("/upload", h.Upload)
	r.POST("/extract-keypoints", h.ExtractKeyPoints)
	r.GET("/download/:id", h.Download)
}

// Index answers the banner.
func (h *Handler) Index(c *gin.Context) {
	c.String(200, Banner)
}
