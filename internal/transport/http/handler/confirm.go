package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-accounts-api/internal/application/account"
)

// ConfirmHandler handles the account confirmation flow. The emailed link
// carries token and code as query parameters; API clients may POST them as
// JSON instead.
type ConfirmHandler struct {
	svc account.Service
}

func NewConfirmHandler(svc account.Service) *ConfirmHandler {
	return &ConfirmHandler{svc: svc}
}

func (h *ConfirmHandler) ConfirmFromLink(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	code := r.URL.Query().Get("code")
	h.confirm(w, r, token, code)
}

func (h *ConfirmHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Token string `json:"token"`
		Code  string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.confirm(w, r, body.Token, body.Code)
}

func (h *ConfirmHandler) confirm(w http.ResponseWriter, r *http.Request, token, code string) {
	if token == "" || code == "" {
		writeError(w, http.StatusBadRequest, "token and code required")
		return
	}
	conf, err := h.svc.Confirm(r.Context(), token, code)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, conf)
}

func (h *ConfirmHandler) Resend(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" {
		writeError(w, http.StatusBadRequest, "email required")
		return
	}
	if err := h.svc.ResendConfirmation(r.Context(), body.Email); err != nil {
		httpError(w, err)
		return
	}
	// Always the same message so the endpoint cannot be used to probe accounts.
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "if the account exists, a confirmation email has been sent"})
}
