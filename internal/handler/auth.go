package handler

import (
	"net/http"

	"github.com/pkordes/talentrail/internal/dto"
)

// register handles POST /auth/register.
func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var body dto.Credentials
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	u, token, err := s.auth.Register(r.Context(), body.Username, body.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.TokenResponse{Username: u.Username, Token: token})
}

// login handles POST /auth/login.
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var body dto.Credentials
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	u, token, err := s.auth.Login(r.Context(), body.Username, body.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.TokenResponse{Username: u.Username, Token: token})
}
