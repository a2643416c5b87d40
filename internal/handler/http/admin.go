package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/osmlabs/authkeeper/internal/logger"
	"github.com/osmlabs/authkeeper/internal/store"
	"github.com/osmlabs/authkeeper/models"
)

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accounts, err := h.services.Auth.ListAccounts(ctx)
	if err != nil {
		log.Err(err).Msg("listing cached accounts failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	// digests stay out of the response
	type accountView struct {
		Email        string `json:"email"`
		Name         string `json:"name"`
		Mobile       string `json:"mobile"`
		RegisteredAt string `json:"registeredAt"`
	}
	views := make([]accountView, 0, len(accounts))
	for _, account := range accounts {
		views = append(views, accountView{
			Email:        account.Email,
			Name:         account.Name,
			Mobile:       account.Mobile,
			RegisteredAt: account.RegisteredAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(views); err != nil {
		log.Err(err).Msg("encoding account list failed")
	}
}

func (h *Handler) revokeUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	email, err := url.PathUnescape(chi.URLParam(r, "email"))
	if err != nil || models.NormalizeEmail(email) == "" {
		http.Error(w, "invalid email", http.StatusBadRequest)
		return
	}

	if err = h.services.Auth.RevokeAccount(ctx, email); err != nil {
		log.Err(err).Str("email", email).Msg("account revocation failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) currentSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, err := h.services.Sessions.Restore(ctx)
	if err != nil {
		if errors.Is(err, store.ErrLocalSessionNotFound) {
			http.Error(w, "no active session", http.StatusNotFound)
			return
		}
		log.Err(err).Msg("reading current session failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	type sessionView struct {
		ID       string `json:"id"`
		Email    string `json:"email"`
		Name     string `json:"name"`
		Mobile   string `json:"mobile"`
		IssuedAt string `json:"issuedAt"`
	}

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(sessionView{
		ID:       session.ID,
		Email:    session.Email,
		Name:     session.Name,
		Mobile:   session.Mobile,
		IssuedAt: session.IssuedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
	if err != nil {
		log.Err(err).Msg("encoding session failed")
	}
}
