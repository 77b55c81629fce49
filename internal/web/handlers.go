package web

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/MichaelReichel/clock2doc/internal/core"
	"github.com/MichaelReichel/clock2doc/internal/render"
	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
)

// multipartOverhead is the room left for form boundaries and headers on top
// of the export size limit.
const multipartOverhead = 1 << 20

// draftResponse is the API view of a draft. Entries are served separately.
type draftResponse struct {
	ID        string                `json:"id"`
	FileName  string                `json:"fileName"`
	Items     []core.AggregatedItem `json:"items"`
	Details   core.InvoiceDetails   `json:"details"`
	Report    core.ImportReport     `json:"report"`
	Totals    core.Totals           `json:"totals"`
	Projects  []core.ProjectHours   `json:"projects"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

func toDraftResponse(d *core.Draft) draftResponse {
	return draftResponse{
		ID:        d.ID,
		FileName:  d.FileName,
		Items:     d.Items,
		Details:   d.Details,
		Report:    d.Report,
		Totals:    d.Totals(),
		Projects:  core.ProjectBreakdown(d.Items),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// handleHealth reports liveness and the import queue state.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"imports": s.service.ImportStatus(),
	})
}

// handleListFormats returns the export formats the importer recognizes.
func (s *Server) handleListFormats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Formats())
}

// handlePreview runs an uploaded export through the pipeline without
// storing anything.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	file, header, err := s.formFile(w, r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	defer file.Close()

	preview, err := s.service.Preview(r.Context(), header.Filename, file, header.Size)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, preview)
}

// handleImport stores an uploaded export as a new draft.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	file, header, err := s.formFile(w, r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	defer file.Close()

	draft, err := s.service.Import(r.Context(), header.Filename, file, header.Size)
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/drafts/"+draft.ID)
	writeJSON(w, http.StatusCreated, toDraftResponse(draft))
}

// formFile extracts the "file" part of a multipart upload, bounding the
// request body by the configured export size.
func (s *Server) formFile(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	maxSize := s.cfg.Upload.MaxFileSize
	if maxSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return nil, nil, fmt.Errorf("%w: %v", core.ErrFileTooLarge, err)
		}
		if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
			return nil, nil, core.ErrNoFile
		}
		return nil, nil, fmt.Errorf("%w: %v", core.ErrInvalidRequest, err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, nil, core.ErrNoFile
	}
	return file, header, nil
}

// handleGetDraft returns a draft with its totals.
func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	draft, err := s.service.Draft(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toDraftResponse(draft))
}

// handleDeleteDraft discards a draft.
func (s *Server) handleDeleteDraft(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteDraft(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDraftEntries returns the normalized time entries behind a draft.
func (s *Server) handleDraftEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.service.Entries(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// handleUpdateDetails applies a partial update to the invoice details.
// Fields absent from the body are left unchanged.
func (s *Server) handleUpdateDetails(w http.ResponseWriter, r *http.Request) {
	var patch core.DetailsPatch
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, r, err)
		return
	}

	draft, err := s.service.UpdateDetails(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toDraftResponse(draft))
}

// rateRequest is the body of a rate change. A missing rate reprices at the
// draft's current hourly rate.
type rateRequest struct {
	Rate *float64 `json:"rate"`
}

// handleApplyRate prices every line item at one hourly rate.
func (s *Server) handleApplyRate(w http.ResponseWriter, r *http.Request) {
	var req rateRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	draft, err := s.service.ApplyGlobalRate(r.Context(), chi.URLParam(r, "id"), req.Rate)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toDraftResponse(draft))
}

// handleGenerateSummary writes an executive summary into the invoice notes.
func (s *Server) handleGenerateSummary(w http.ResponseWriter, r *http.Request) {
	draft, err := s.service.GenerateSummary(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toDraftResponse(draft))
}

// handleInvoicePage renders a printable invoice. The optional template query
// parameter previews another theme without changing the draft.
func (s *Server) handleInvoicePage(w http.ResponseWriter, r *http.Request) {
	var override core.Template
	if t := r.URL.Query().Get("template"); t != "" {
		override = core.Template(t)
		if !override.Valid() {
			respondError(w, r, fmt.Errorf("%w: %q", core.ErrInvalidTemplate, t))
			return
		}
	}

	draft, err := s.service.Draft(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	// Render fully before writing so a failure can still send a clean error.
	var buf bytes.Buffer
	if err := render.Page(render.NewView(draft, override)).Render(r.Context(), &buf); err != nil {
		respondError(w, r, fmt.Errorf("render invoice: %w", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// decodeJSON decodes the request body into v.
func decodeJSON(r *http.Request, v any) error {
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", core.ErrInvalidRequest, err)
	}
	return nil
}

// decodeOptionalJSON is decodeJSON for bodies that may be empty.
func decodeOptionalJSON(r *http.Request, v any) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrInvalidRequest, err)
	}
	if len(body) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %v", core.ErrInvalidRequest, err)
	}
	return nil
}
