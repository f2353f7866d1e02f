package handlers

import "net/http"

// CreateChallenge issues a fresh arithmetic challenge. The answer stays
// server-side; only token, question and expiry go out.
func (h *Handlers) CreateChallenge(w http.ResponseWriter, r *http.Request) {
	purpose := r.URL.Query().Get("purpose")

	challenge, err := h.verifyService.CreateChallenge(r.Context(), purpose)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, challenge)
}

func (h *Handlers) APIHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
