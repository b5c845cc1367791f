package handler

import (
	"net/http"

	"github.com/pkordes/talentrail/internal/dto"
)

// createSkill handles POST /skill.
func (s *Server) createSkill(w http.ResponseWriter, r *http.Request) {
	var body dto.SkillRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	sk, err := body.ToDomain()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	created, err := s.skills.Create(r.Context(), sk)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.SkillFromDomain(created))
}

// listSkills handles GET /skill.
func (s *Server) listSkills(w http.ResponseWriter, r *http.Request) {
	skills, err := s.skills.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.SkillsFromDomain(skills))
}

// getSkill handles GET /skill/{id}.
func (s *Server) getSkill(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sk, err := s.skills.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.SkillFromDomain(sk))
}

// updateSkill handles PUT /skill/{id}.
func (s *Server) updateSkill(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var body dto.SkillRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := matchBodyID(id, body.ID); err != nil {
		s.writeError(w, r, err)
		return
	}
	patch, err := body.ToPatch()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	updated, err := s.skills.Update(r.Context(), id, patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.SkillFromDomain(updated))
}

// deleteSkill handles DELETE /skill/{id}.
func (s *Server) deleteSkill(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.skills.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
