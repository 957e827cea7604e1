package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/printshop/internal/domain/model"
	"github.com/polkiloo/printshop/internal/server/http/dto"
)

const uploadField = "file"

// UploadHandler serves the secure upload intake.
type UploadHandler struct {
	facade  UploadFacade
	maxSize int64
}

// NewUploadHandler constructs UploadHandler. maxSize bounds how many bytes are buffered per file.
func NewUploadHandler(facade UploadFacade, maxSize int64) *UploadHandler {
	return &UploadHandler{facade: facade, maxSize: maxSize}
}

// Upload handles POST /api/uploads/secure.
func (h *UploadHandler) Upload(c *gin.Context) {
	attempt := model.UploadAttempt{
		ClientIP:  c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}

	header, err := c.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if !errors.As(err, &tooLarge) {
			badRequest(c, "No file uploaded")
			return
		}
		// The body limit tripped before the part was parsed; let the
		// validator reject it by size so the attempt is logged. Chunked
		// bodies carry no length, and a declared one may understate it.
		attempt.Size = c.Request.ContentLength
		if attempt.Size <= h.maxSize {
			attempt.Size = h.maxSize + 1
		}
		h.accept(c, attempt)
		return
	}

	attempt.FileName = header.Filename
	attempt.Size = header.Size
	attempt.MimeType = header.Header.Get("Content-Type")

	file, err := header.Open()
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, dto.Fail("Internal server error", internalErrorCode))
		return
	}
	defer file.Close()

	limit := h.maxSize
	if limit <= 0 || limit > header.Size {
		limit = header.Size
	}
	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, dto.Fail("Internal server error", internalErrorCode))
		return
	}
	attempt.Data = data

	h.accept(c, attempt)
}

func (h *UploadHandler) accept(c *gin.Context, attempt model.UploadAttempt) {
	accepted, err := h.facade.AcceptUpload(c.Request.Context(), attempt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUploadResponse(*accepted))
}

// SecurityEvents handles GET /api/admin/security-events.
func (h *UploadHandler) SecurityEvents(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			badRequest(c, "Invalid limit")
			return
		}
		limit = n
	}
	events, err := h.facade.SecurityEvents(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SecurityEventsResponse{Success: true, Events: events})
}
