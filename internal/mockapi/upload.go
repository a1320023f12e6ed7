package mockapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/dnminh/vshop/internal/errors"
	"github.com/dnminh/vshop/internal/storage"
	"github.com/dnminh/vshop/pkg/logger"
)

// Upload accepts a multipart product image and stores it through the
// configured storage backend.
func (s *Server) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		apierrors.BadRequest(c, apierrors.ValidationInvalidInput, "missing file field")
		return
	}

	if err := storage.ValidateFileSize(header.Size); err != nil {
		apierrors.BadRequest(c, apierrors.UploadFileTooLarge, err.Error())
		return
	}
	contentType := header.Header.Get("Content-Type")
	if err := storage.ValidateContentType(contentType); err != nil {
		apierrors.BadRequest(c, apierrors.UploadInvalidFileType, err.Error())
		return
	}

	file, err := header.Open()
	if err != nil {
		apierrors.InternalError(c, "failed to read upload")
		return
	}
	defer file.Close()

	stored, err := s.uploads.Save(c.Request.Context(), header.Filename, contentType, file)
	if err != nil {
		logger.Error("Upload failed", err, map[string]interface{}{
			"filename": header.Filename,
		})
		apierrors.RespondWithError(c, http.StatusInternalServerError, apierrors.UploadFailed, "failed to store upload")
		return
	}

	c.JSON(http.StatusCreated, stored)
}
