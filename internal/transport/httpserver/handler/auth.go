package handler

import (
	"net/http"

	"sponsorship-app-go/internal/transport/httpserver/middleware"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	account, err := h.Users.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.log.Info("user registered", "userId", account.ID, "username", account.Username)
	writeJSON(w, http.StatusCreated, account)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	account, err := h.Users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.respondError(w, err)
		return
	}

	item, err := h.sessions.Create(r.Context(), account.ID, h.cfg.SessionTTL)
	if err != nil {
		h.respondError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.SessionCookie,
		Value:    item.Token,
		Path:     "/",
		Expires:  item.ExpiresAt,
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	h.log.Info("user logged in", "userId", account.ID)
	writeJSON(w, http.StatusOK, account)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.cfg.SessionCookie); err == nil {
		if err := h.sessions.Delete(r.Context(), cookie.Value); err != nil {
			h.log.Error("logout: session delete failed", "error", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	items, err := h.Users.List(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handlers) ApproveUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	account, err := h.Users.Approve(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.log.Info("user approved", "userId", id)
	writeJSON(w, http.StatusOK, account)
}
