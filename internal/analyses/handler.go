package analyses

import (
	"errors"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/documents"
	"resume-optimizer/internal/extract"
	"resume-optimizer/internal/shared/server/middleware"
	"resume-optimizer/internal/shared/server/respond"
)

const defaultMaxUploadBytes = 5 << 20

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler. A non-positive maxUploadBytes falls back
// to the 5MB default.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyses", h.createAnalysis)
	rg.GET("/analyses", h.listAnalyses)
	rg.GET("/analyses/:id", h.getAnalysis)
}

// createAnalysis accepts a multipart form with either a resume file or a
// previously uploaded document_id, plus the job description, and runs the
// full pipeline synchronously.
func (h *Handler) createAnalysis(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	jobDescription := strings.TrimSpace(c.PostForm("job_description"))
	if jobDescription == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "job_description is required", nil)
		return
	}
	jobTitle := strings.TrimSpace(c.PostForm("job_title"))
	companyName := strings.TrimSpace(c.PostForm("company_name"))

	doc, ok := h.resolveDocument(c, userID)
	if !ok {
		return
	}

	analysis, err := h.Svc.Run(c.Request.Context(), userID, doc, jobDescription, jobTitle, companyName)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to run analysis", nil)
		return
	}

	respond.JSON(c, http.StatusCreated, ToDTO(analysis))
}

func (h *Handler) resolveDocument(c *gin.Context, userID string) (documents.Document, bool) {
	if documentID := strings.TrimSpace(c.PostForm("document_id")); documentID != "" {
		doc, err := h.Svc.Docs.Get(c.Request.Context(), userID, documentID)
		if err != nil {
			if errors.Is(err, documents.ErrNotFound) {
				respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
			} else {
				respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load document", nil)
			}
			return documents.Document{}, false
		}
		return doc, true
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file or document_id is required", nil)
		return documents.Document{}, false
	}
	if fileHeader.Size > h.MaxUploadBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds the upload limit", nil)
		return documents.Document{}, false
	}

	fileType, ok := fileTypeFromName(fileHeader.Filename)
	if !ok {
		respond.Error(c, http.StatusBadRequest, "unsupported_file_type", "only PDF and DOCX files are supported", nil)
		return documents.Document{}, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "failed to read uploaded file", nil)
		return documents.Document{}, false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.MaxUploadBytes+1))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "failed to read uploaded file", nil)
		return documents.Document{}, false
	}
	if int64(len(data)) > h.MaxUploadBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds the upload limit", nil)
		return documents.Document{}, false
	}

	doc, _, err := h.Svc.Docs.Upload(c.Request.Context(), userID, fileHeader.Filename, fileType, data)
	if err != nil {
		var extractErr *extract.ExtractionError
		switch {
		case errors.As(err, &extractErr):
			respond.Error(c, http.StatusUnprocessableEntity, "extraction_failed", "could not extract text from the uploaded file", nil)
		case errors.Is(err, documents.ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "uploaded file is empty", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store document", nil)
		}
		return documents.Document{}, false
	}
	return doc, true
}

func (h *Handler) getAnalysis(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	analysisID := c.Param("id")

	analysis, err := h.Svc.Get(c.Request.Context(), userID, analysisID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "analysis not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "analysis id is required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch analysis", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, ToDTO(analysis))
}

func (h *Handler) listAnalyses(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := 10
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	analyses, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list analyses", nil)
		return
	}

	resp := make([]CompositeAnalysisDTO, 0, len(analyses))
	for _, a := range analyses {
		resp = append(resp, ToDTO(a))
	}
	respond.JSON(c, http.StatusOK, resp)
}

func fileTypeFromName(name string) (string, bool) {
	switch strings.ToLower(path.Ext(name)) {
	case ".pdf":
		return extract.TypePDF, true
	case ".docx":
		return extract.TypeDOCX, true
	default:
		return "", false
	}
}
