package web

import (
	"net/http"

	"github.com/MichaelReichel/clock2doc/internal/admin"
	"github.com/go-chi/chi/v5"
)

// handleContact stores a message from the public contact form.
func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var form admin.ContactForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, r, err)
		return
	}

	ctx := WithRequestMetadata(r.Context(), r)
	msg, err := s.inbox.Submit(ctx, form)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": msg.ID})
}

// handleListMessages returns the inbox, newest first.
func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := s.inbox.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

// handleDeleteMessage removes one message.
func (s *Server) handleDeleteMessage(w http.ResponseWriter, r *http.Request) {
	if err := s.inbox.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleClearMessages empties the inbox.
func (s *Server) handleClearMessages(w http.ResponseWriter, r *http.Request) {
	n, err := s.inbox.Clear(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": n})
}

type changeSecretRequest struct {
	Old     string `json:"old"`
	New     string `json:"new"`
	Confirm string `json:"confirm"`
}

// handleChangeSecret replaces the admin secret.
func (s *Server) handleChangeSecret(w http.ResponseWriter, r *http.Request) {
	var req changeSecretRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.inbox.ChangeSecret(r.Context(), req.Old, req.New, req.Confirm); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
