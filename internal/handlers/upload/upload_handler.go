// internal/handlers/upload/upload_handler.go
package upload

import (
	"net/http"

	"tripdesk-service/internal/pkg/response"
	"tripdesk-service/internal/pkg/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Attachments larger than this are rejected before touching the blob store.
const maxUploadSize = 25 << 20 // 25 MiB

type UploadHandler struct {
	store  *storage.BlobStore
	logger *zap.Logger
}

func NewUploadHandler(store *storage.BlobStore, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		store:  store,
		logger: logger,
	}
}

// Upload stores an attachment (vouchers, contracts, itineraries) and
// returns its public URL. The optional "prefix" form field groups files
// per opportunity, e.g. "opportunities/42".
func (h *UploadHandler) Upload(c *gin.Context) {
	if h.store == nil {
		response.Error(c, http.StatusServiceUnavailable, "file storage is not configured", nil)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "file is required", err)
		return
	}
	if fileHeader.Size > maxUploadSize {
		response.Error(c, http.StatusRequestEntityTooLarge, "file too large", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "failed to read file", err)
		return
	}
	defer file.Close()

	prefix := c.PostForm("prefix")
	if prefix == "" {
		prefix = "attachments"
	}
	contentType := fileHeader.Header.Get("Content-Type")

	result, err := h.store.Upload(c.Request.Context(), file, fileHeader.Filename, prefix, contentType)
	if err != nil {
		h.logger.Error("upload failed",
			zap.String("filename", fileHeader.Filename),
			zap.Error(err),
		)
		response.Error(c, http.StatusInternalServerError, "failed to store file", err)
		return
	}

	response.Success(c, http.StatusCreated, "file uploaded", result)
}
