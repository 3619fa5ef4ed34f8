package handlers

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"

	"lumen-cms/helper"
	"lumen-cms/media"
)

// Uploader is what this handler needs from the media layer.
type Uploader interface {
	UploadImage(ctx context.Context, filename string, r io.Reader) (media.UploadResult, error)
}

type UploadHandler struct {
	uploader Uploader
	Helper   *helper.HTTPHelper
}

func NewUploadHandler(uploader Uploader) *UploadHandler {
	return &UploadHandler{uploader: uploader, Helper: &helper.HTTPHelper{}}
}

// UploadImage accepts a multipart image, validates it locally (type
// sniffed from content, size capped) and forwards it to the upload
// service. The response carries the public URL plus the delete handle
// the caller stores for later cleanup.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.Helper.SendBadRequest(c, "No file in request", h.Helper.EmptyJsonMap())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}
	defer file.Close()

	result, err := h.uploader.UploadImage(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		if media.IsValidationError(err) {
			h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
			return
		}
		h.Helper.SendError(c, "Upload failed: "+err.Error(), h.Helper.EmptyJsonMap(), 400, `uploadError`)
		return
	}

	h.Helper.SendSuccess(c, "Upload successful", result)
}
