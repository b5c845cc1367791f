package handler

import (
	"net/http"

	"github.com/pkordes/talentrail/internal/dto"
)

// createGuide handles POST /guide.
func (s *Server) createGuide(w http.ResponseWriter, r *http.Request) {
	var body dto.GuideRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	created, err := s.guides.Create(r.Context(), body.ToDomain())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.GuideFromDomain(created))
}

// listGuides handles GET /guide.
func (s *Server) listGuides(w http.ResponseWriter, r *http.Request) {
	guides, err := s.guides.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]dto.Guide, len(guides))
	for i, g := range guides {
		out[i] = dto.GuideFromDomain(g)
	}
	writeJSON(w, http.StatusOK, out)
}

// getGuide handles GET /guide/{id}.
func (s *Server) getGuide(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	g, err := s.guides.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.GuideFromDomain(g))
}

// updateGuide handles PUT /guide/{id}.
func (s *Server) updateGuide(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var body dto.GuideRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := matchBodyID(id, body.ID); err != nil {
		s.writeError(w, r, err)
		return
	}
	updated, err := s.guides.Update(r.Context(), id, body.ToPatch())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.GuideFromDomain(updated))
}

// deleteGuide handles DELETE /guide/{id}.
func (s *Server) deleteGuide(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.guides.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
