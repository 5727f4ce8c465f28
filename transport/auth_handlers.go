package transport

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	// Optional; configuration defaults apply when absent.
	Active *bool `json:"active"`
	Admin  *bool `json:"admin"`
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, errBadRequest)
		return
	}

	active := h.cfg.NewUserActive
	if req.Active != nil {
		active = *req.Active
	}
	admin := h.cfg.NewUserAdmin
	if req.Admin != nil {
		admin = *req.Admin
	}

	user, err := h.users.Register(req.Name, req.Email, req.Password, active, admin)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message": fmt.Sprintf("user %s created", user.Name),
		"user_id": user.ID.String(),
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeError(w, errBadRequest)
		return
	}

	_, pair, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"token_type":    "bearer",
	})
}

// loginForm accepts form-encoded credentials and answers with the access
// token only.
func (h *Handler) loginForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, errBadRequest)
		return
	}
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		writeError(w, errBadRequest)
		return
	}

	_, pair, err := h.auth.Login(email, password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": pair.AccessToken,
		"token_type":   "bearer",
	})
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	accessToken, err := h.auth.Refresh(actor(r).ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": accessToken,
		"token_type":   "bearer",
	})
}
