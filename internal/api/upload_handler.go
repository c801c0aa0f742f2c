package api

import (
	"fmt"
	"net/http"

	app_errors "membox/backend/internal/errors"
	"membox/backend/internal/interfaces"
)

// maxUploadBytes caps an upload request at 32 MiB across all files.
const maxUploadBytes = 32 << 20

// UploadHandler handles image uploads.
type UploadHandler struct {
	service interfaces.UploadService
}

func NewUploadHandler(svc interfaces.UploadService) *UploadHandler {
	return &UploadHandler{service: svc}
}

// UploadResponse returns the public URLs of the stored images, in input order.
type UploadResponse struct {
	Success bool     `json:"success"`
	Count   int      `json:"count"`
	URLs    []string `json:"urls"`
}

// HandleUploadImages godoc
// @Summary      Upload images
// @Description  Accepts one or more image files as multipart form data under the "files" field and stores them for the acting user.
// @Tags         Upload
// @Accept       multipart/form-data
// @Produce      json
// @Param        files  formData  file  true  "Image files"
// @Success      200  {object}  UploadResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /v1/upload/images [post]
func (h *UploadHandler) HandleUploadImages(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondWithError(w, fmt.Errorf("%w: could not parse multipart form: %s", app_errors.ErrValidation, err.Error()))
		return
	}

	files := r.MultipartForm.File["files"]
	urls, err := h.service.SaveImages(files)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, UploadResponse{
		Success: true,
		Count:   len(urls),
		URLs:    urls,
	})
}
