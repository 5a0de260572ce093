// internal/app/features/documents/documents.go
package documents

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	documentstore "github.com/dalemusser/chapterhub/internal/app/store/documents"
	"github.com/dalemusser/chapterhub/internal/app/system/authz"
	"github.com/dalemusser/chapterhub/internal/app/system/httpjson"
	"github.com/dalemusser/chapterhub/internal/app/system/limits"
	"github.com/dalemusser/chapterhub/internal/app/system/normalize"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleList returns document records newest first.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	f := documentstore.Filter{
		Category: normalize.Category(r.URL.Query().Get("category")),
	}
	if raw := normalize.QueryParam(r.URL.Query().Get("year")); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			httpjson.BadRequest(w, "invalid year")
			return
		}
		f.Year = y
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	docs, err := h.Documents.List(ctx, f)
	if err != nil {
		h.Log.Error("list documents", zap.Error(err))
		httpjson.Internal(w, "failed to list documents")
		return
	}

	httpjson.OK(w, docs)
}

// HandleYears returns the distinct archive years, newest first.
func (h *Handler) HandleYears(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	years, err := h.Documents.Years(ctx)
	if err != nil {
		h.Log.Error("list document years", zap.Error(err))
		httpjson.Internal(w, "failed to list years")
		return
	}

	httpjson.OK(w, years)
}

type createRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Size     string `json:"size"`
	Category string `json:"category"`
	Year     int    `json:"year"`
	FileID   string `json:"fileId"`
	FileLink string `json:"fileLink"`
}

// HandleCreate records a document whose content already lives
// elsewhere (an external drive link). Uploading content through this
// service goes through HandleUpload instead.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	_, name, _, _ := authz.UserCtx(r)

	var req createRequest
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxJSONBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.BadRequest(w, "invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Category = normalize.Category(req.Category)
	if req.Name == "" {
		httpjson.BadRequest(w, "name is required")
		return
	}
	if !models.IsValidDocumentCategory(req.Category) {
		httpjson.BadRequest(w, "invalid category")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	doc, err := h.Documents.Create(ctx, models.Document{
		Name:       req.Name,
		Type:       strings.TrimSpace(req.Type),
		Size:       strings.TrimSpace(req.Size),
		Category:   req.Category,
		Year:       req.Year,
		FileID:     strings.TrimSpace(req.FileID),
		FileLink:   strings.TrimSpace(req.FileLink),
		UploadedBy: name,
	})
	if err != nil {
		h.Log.Error("create document", zap.Error(err))
		httpjson.Internal(w, "failed to create document")
		return
	}

	httpjson.Created(w, doc)
}

// HandleDelete removes a document record and, when the content lives
// in our storage backend, the stored file as well.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.BadRequest(w, "invalid document id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	doc, err := h.Documents.Delete(ctx, id)
	if err != nil {
		if err == documentstore.ErrNotFound {
			httpjson.NotFound(w, "document not found")
			return
		}
		h.Log.Error("delete document", zap.Error(err))
		httpjson.Internal(w, "failed to delete document")
		return
	}

	if h.Storage != nil && strings.HasPrefix(doc.FileID, storagePrefix) {
		if err := h.Storage.Delete(ctx, doc.FileID); err != nil {
			h.Log.Warn("delete stored file",
				zap.String("path", doc.FileID), zap.Error(err))
		}
	}

	httpjson.OKMessage(w, "document deleted")
}
