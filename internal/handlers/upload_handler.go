package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HUSC-F-2025/housing-service/internal/uploads"
	"github.com/HUSC-F-2025/housing-service/internal/utils"
)

// UploadHandler accepts supporting documents (national id scans, payment
// receipts). One file per request under the form field "file".
type UploadHandler struct {
	BaseHandler
	gate *uploads.Gate
}

func NewUploadHandler(gate *uploads.Gate, logger utils.Logger) *UploadHandler {
	return &UploadHandler{
		BaseHandler: NewBaseHandler(logger),
		gate:        gate,
	}
}

// UploadDocument validates and stores one uploaded file
func (h *UploadHandler) UploadDocument(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Code:    string(uploads.CodeFileMissing),
			Message: "form field 'file' is required",
		})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		h.LogError(c, err, "Failed to open uploaded file")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "failed to read upload",
		})
		return
	}
	defer f.Close()

	meta := uploads.FileMeta{
		MIMEType: fileHeader.Header.Get("Content-Type"),
		Size:     fileHeader.Size,
		Filename: fileHeader.Filename,
	}

	stored, err := h.gate.Store(meta, f)
	if err != nil {
		var rejected *uploads.RejectedError
		if errors.As(err, &rejected) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "upload_rejected",
				Code:    string(rejected.Code),
				Message: rejected.Message,
			})
			return
		}
		h.LogError(c, err, "Failed to store upload")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "failed to store upload",
		})
		return
	}

	h.LogRequest(c, "Document uploaded", "filename", stored.Filename, "size", fileHeader.Size)

	c.JSON(http.StatusCreated, stored)
}
