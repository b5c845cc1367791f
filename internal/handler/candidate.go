package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pkordes/talentrail/internal/domain"
	"github.com/pkordes/talentrail/internal/dto"
)

// createCandidate handles POST /candidate. Skills in the body are ignored;
// a new candidate always starts with an empty skill set.
func (s *Server) createCandidate(w http.ResponseWriter, r *http.Request) {
	var body dto.CandidateRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	created, err := s.candidates.Create(r.Context(), body.ToDomain())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.CandidateFromDomain(created))
}

// listCandidates handles GET /candidate, optionally filtered by a skill
// ?category=.
func (s *Server) listCandidates(w http.ResponseWriter, r *http.Request) {
	var (
		candidates []domain.Candidate
		err        error
	)
	if raw := r.URL.Query().Get("category"); strings.TrimSpace(raw) != "" {
		category, perr := domain.ParseSkillCategory(raw)
		if perr != nil {
			s.writeError(w, r, perr)
			return
		}
		candidates, err = s.candidates.ListBySkillCategory(r.Context(), category)
	} else {
		candidates, err = s.candidates.List(r.Context())
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.CandidatesFromDomain(candidates))
}

// getCandidate handles GET /candidate/{id}. Skill statistics are merged in
// when the provider answers; otherwise they are simply absent.
func (s *Server) getCandidate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := s.candidates.GetEnriched(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// updateCandidate handles PUT /candidate/{id}.
func (s *Server) updateCandidate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var body dto.CandidateRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := matchBodyID(id, body.ID); err != nil {
		s.writeError(w, r, err)
		return
	}
	updated, err := s.candidates.Update(r.Context(), id, body.ToPatch())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.CandidateFromDomain(updated))
}

// deleteCandidate handles DELETE /candidate/{id}.
func (s *Server) deleteCandidate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.candidates.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// linkSkill handles PUT /candidate/{id}/skills/{skillId}. Linking an
// already linked skill is a no-op that still answers 204.
func (s *Server) linkSkill(w http.ResponseWriter, r *http.Request) {
	candidateID, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	skillID, err := pathID(r, "skillId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ok, err := s.candidates.LinkSkill(r.Context(), candidateID, skillID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !ok {
		s.writeError(w, r, fmt.Errorf("%w: candidate %d or skill %d", domain.ErrNotFound, candidateID, skillID))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// topCandidate handles GET /candidate/reports/top-by-popularity.
func (s *Server) topCandidate(w http.ResponseWriter, r *http.Request) {
	top, ok, err := s.candidates.TopByPopularity(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusOK, dto.TopCandidateReport{Message: "no candidate has skills with popularity data"})
		return
	}
	writeJSON(w, http.StatusOK, dto.TopCandidateFromDomain(top))
}
