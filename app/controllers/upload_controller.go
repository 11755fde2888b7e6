package controllers

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/pawhaven/pawhaven/pkg/logger"
	"github.com/pawhaven/pawhaven/pkg/response"
	"github.com/pawhaven/pawhaven/pkg/storage"
)

const maxUploadBytes = 8 << 20

// UploadController accepts image uploads and stores them on the default
// disk (local in dev, S3 in production).
type UploadController struct{}

func NewUploadController() *UploadController {
	return &UploadController{}
}

var allowedImageExt = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// UploadImage handles POST /upload-image: multipart form, field "image".
// Responds with the public URL of the stored object.
func (c *UploadController) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.BadRequest(w, "multipart form required")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.BadRequest(w, "image field required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExt[ext] {
		response.ValidationError(w, map[string]string{"image": "unsupported image type"})
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(w, "unreadable upload")
		return
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		response.Upstream(w)
		return
	}
	path := "images/" + hex.EncodeToString(buf) + ext

	if err := storage.Put(path, data); err != nil {
		logger.WithCtx(r.Context()).Error("image store failed", "error", err)
		response.Upstream(w)
		return
	}
	response.Created(w, map[string]string{"url": storage.URL(path)})
}
