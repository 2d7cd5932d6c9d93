package handler

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/kbukum/meetnotes/errors"
	"github.com/kbukum/meetnotes/logger"
	"github.com/kbukum/meetnotes/pipeline"
	"github.com/kbukum/meetnotes/server"
	"github.com/kbukum/meetnotes/util"
)

const audioField = "audio"

type uploadResponse struct {
	RecordingID   string   `json:"recording_id"`
	Summary       string   `json:"summary"`
	KeyPoints     []string `json:"key_points"`
	Keypoints     []string `json:"keypoints"`
	Transcription string   `json:"transcription"`
	DownloadURL   *string  `json:"download_url"`
}

// Upload stores the multipart "audio" file, runs it through the pipeline
// and removes it again.
func (h *Handler) Upload(c *gin.Context) {
	fh, err := c.FormFile(audioField)
	if err != nil {
		server.RespondWithError(c, uploadError(err))
		return
	}
	if fh.Size == 0 {
		server.RespondWithError(c, apperrors.InvalidAudio("the uploaded file is empty"))
		return
	}

	path := uploadPath(h.cfg.UploadDir, fh.Filename)
	if err := c.SaveUploadedFile(fh, path); err != nil {
		server.RespondWithError(c, apperrors.Internal(fmt.Errorf("save upload: %w", err)))
		return
	}
	defer func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			h.log.Warn("could not remove upload", logger.Fields("path", path, logger.FieldError, err.Error()))
		}
	}()

	rec, err := pipeline.NewRecording(path, fh.Filename)
	if err != nil {
		server.RespondWithError(c, apperrors.Internal(err))
		return
	}
	ctx := logger.WithRecordingID(c.Request.Context(), rec.ID)
	h.log.WithContext(ctx).Info("recording uploaded", logger.Fields("filename", fh.Filename, "size", rec.Size))

	res, err := h.pipeline.Process(ctx, rec)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	server.RespondOK(c, uploadResponse{
		RecordingID:   res.RecordingID,
		Summary:       res.Summary,
		KeyPoints:     res.KeyPoints,
		Keypoints:     res.KeyPoints,
		Transcription: res.Transcription,
		DownloadURL:   res.DownloadURL,
	})
}

// uploadPath names the staged upload <unix>_<uuid>_<name>. The uuid keeps
// same-named uploads arriving in the same second apart.
func uploadPath(dir, filename string) string {
	return filepath.Join(dir, fmt.Sprintf("%d_%s_%s",
		time.Now().Unix(), uuid.NewString(), util.SanitizeFilename(filename)))
}

func uploadError(err error) *apperrors.AppError {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperrors.PayloadTooLarge(tooLarge.Limit)
	}
	appErr := apperrors.MissingField(audioField).WithCause(err)
	appErr.Message = "No audio file provided"
	return appErr
}
