// internal/app/features/documents/upload.go
package documents

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/dalemusser/chapterhub/internal/app/system/authz"
	"github.com/dalemusser/chapterhub/internal/app/system/httpjson"
	"github.com/dalemusser/chapterhub/internal/app/system/limits"
	"github.com/dalemusser/chapterhub/internal/app/system/normalize"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// storagePrefix marks file ids that live in our storage backend, as
// opposed to external drive links recorded via HandleCreate.
const storagePrefix = "documents/"

// HandleUpload accepts a multipart upload, stores the content through
// the storage backend, and records the document with the stored path
// as its file id.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if h.Storage == nil {
		httpjson.Internal(w, "file storage is not configured")
		return
	}
	_, name, _, _ := authz.UserCtx(r)

	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxUploadSize)
	if err := r.ParseMultipartForm(limits.MaxUploadSize); err != nil {
		httpjson.BadRequest(w, "upload too large or malformed")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httpjson.BadRequest(w, "a file field is required")
		return
	}
	defer file.Close()

	category := normalize.Category(r.FormValue("category"))
	if category == "" {
		category = "document"
	}
	if !models.IsValidDocumentCategory(category) {
		httpjson.BadRequest(w, "invalid category")
		return
	}

	docName := strings.TrimSpace(r.FormValue("name"))
	if docName == "" {
		docName = header.Filename
	}

	now := time.Now().UTC()
	path := fmt.Sprintf("%s%04d/%02d/%s-%s", storagePrefix, now.Year(), now.Month(),
		uuid.NewString()[:8], sanitizeFilename(header.Filename))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	contentType := header.Header.Get("Content-Type")
	if err := h.Storage.Put(ctx, path, file, &storage.PutOptions{ContentType: contentType}); err != nil {
		h.Log.Error("store uploaded file", zap.Error(err))
		httpjson.Internal(w, "failed to store file")
		return
	}

	doc, err := h.Documents.Create(ctx, models.Document{
		Name:       docName,
		Type:       fileType(header.Filename, contentType),
		Size:       humanSize(header.Size),
		Category:   category,
		Year:       now.Year(),
		FileID:     path,
		UploadedBy: name,
	})
	if err != nil {
		// Keep storage and metadata consistent.
		if delErr := h.Storage.Delete(ctx, path); delErr != nil {
			h.Log.Warn("clean up stored file", zap.String("path", path), zap.Error(delErr))
		}
		h.Log.Error("record uploaded document", zap.Error(err))
		httpjson.Internal(w, "failed to record document")
		return
	}

	httpjson.Created(w, doc)
}

func sanitizeFilename(filename string) string {
	filename = filepath.Base(filename)

	out := make([]byte, 0, len(filename))
	for i := 0; i < len(filename); i++ {
		c := filename[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9',
			c == '.', c == '-', c == '_':
			out = append(out, c)
		default:
			out = append(out, '_')
		}
	}
	if len(out) == 0 {
		return "file"
	}
	return string(out)
}

func fileType(filename, contentType string) string {
	if ext := strings.TrimPrefix(filepath.Ext(filename), "."); ext != "" {
		return strings.ToUpper(ext)
	}
	return contentType
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGT"[exp])
}
