package handler

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/meetnotes/errors"
	"github.com/kbukum/meetnotes/server"
	"github.com/kbukum/meetnotes/validation"
)

type keyPointsRequest struct {
	Transcription string `json:"transcription" validate:"required"`
}

type keyPointsResponse struct {
	Keypoints []string `json:"keypoints"`
}

// ExtractKeyPoints derives key points from a posted transcript without
// running the rest of the pipeline.
func (h *Handler) ExtractKeyPoints(c *gin.Context) {
	var req keyPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, noTranscription(err))
		return
	}
	if err := validation.Validate(req); err != nil {
		server.RespondWithError(c, noTranscription(err))
		return
	}

	points := h.keyPoints.KeyPoints(c.Request.Context(), req.Transcription)
	server.RespondOK(c, keyPointsResponse{Keypoints: points})
}

func noTranscription(cause error) *apperrors.AppError {
	appErr := apperrors.MissingField("transcription").WithCause(cause)
	appErr.Message = "No transcription provided"
	return appErr
}
