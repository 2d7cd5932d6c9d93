package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/meetnotes/errors"
	"github.com/kbukum/meetnotes/logger"
	"github.com/kbukum/meetnotes/server"
	"github.com/kbukum/meetnotes/validation"
)

const idLength = 32

// Download streams a stored report as a text attachment.
func (h *Handler) Download(c *gin.Context) {
	id := c.Param("id")
	if appErr := validation.New().Required("id", id).HexID("id", id, idLength).Validate(); appErr != nil {
		server.RespondWithError(c, appErr)
		return
	}
	if h.reports == nil {
		server.RespondWithError(c, apperrors.NotFound("report", id))
		return
	}

	rc, err := h.reports.Open(c.Request.Context(), id)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	defer func() {
		if err := rc.Close(); err != nil {
			h.log.Warn("closing report", logger.Fields(logger.FieldRecordingID, id, logger.FieldError, err.Error()))
		}
	}()

	c.DataFromReader(http.StatusOK, -1, "text/plain; charset=utf-8", rc, map[string]string{
		"Content-Disposition": fmt.Sprintf(`attachment; filename="meeting_%s.txt"`, id),
	})
}
