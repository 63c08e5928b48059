package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ellurunanda/Shopping-Cart/internal/domain"
	"github.com/ellurunanda/Shopping-Cart/internal/server/auth"
)

type AuthHandler struct {
	users *auth.Store
}

func NewAuthHandler(users *auth.Store) *AuthHandler {
	return &AuthHandler{users: users}
}

type userResponse struct {
	User domain.User `json:"user"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := h.users.Authenticate(creds.Username, creds.Password)
	if err != nil {
		respondError(w, http.StatusUnauthorized, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, userResponse{User: user})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var reg domain.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := h.users.Register(reg)
	if err != nil {
		var ve *auth.ValidationError
		if errors.As(err, &ve) {
			// express-validator style body so clients can surface the first message
			respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
				Errors: []ValidationErrorEntry{{Field: ve.Field, Msg: ve.Msg}},
			})
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, userResponse{User: user})
}
