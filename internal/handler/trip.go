package handler

import (
	"net/http"
	"strings"

	"github.com/pkordes/talentrail/internal/domain"
	"github.com/pkordes/talentrail/internal/dto"
)

// createTrip handles POST /trip.
func (s *Server) createTrip(w http.ResponseWriter, r *http.Request) {
	var body dto.TripRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	trip, err := body.ToDomain()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	created, err := s.trips.Create(r.Context(), trip)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.TripFromDomain(created))
}

// listTrips handles GET /trip, optionally filtered by ?category=.
func (s *Server) listTrips(w http.ResponseWriter, r *http.Request) {
	var (
		trips []domain.Trip
		err   error
	)
	if raw := r.URL.Query().Get("category"); strings.TrimSpace(raw) != "" {
		category, perr := domain.ParseTripCategory(raw)
		if perr != nil {
			s.writeError(w, r, perr)
			return
		}
		trips, err = s.trips.ListByCategory(r.Context(), category)
	} else {
		trips, err = s.trips.List(r.Context())
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.TripsFromDomain(trips))
}

// getTrip handles GET /trip/{id}. The response carries the packing list for
// the trip's category; a provider failure fails the request with 502.
func (s *Server) getTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	trip, err := s.trips.GetEnriched(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// updateTrip handles PUT /trip/{id}.
func (s *Server) updateTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var body dto.TripRequest
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
	updated, err := s.trips.Update(r.Context(), id, patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.TripFromDomain(updated))
}

// deleteTrip handles DELETE /trip/{id}.
func (s *Server) deleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.trips.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// linkGuide handles PUT /trip/{id}/guides/{guideId} and returns the
// re-pointed trip.
func (s *Server) linkGuide(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	guideID, err := pathID(r, "guideId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	trip, err := s.trips.LinkGuide(r.Context(), tripID, guideID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.TripFromDomain(trip))
}

// totalPricePerGuide handles GET /trip/guides/totalprice.
func (s *Server) totalPricePerGuide(w http.ResponseWriter, r *http.Request) {
	totals, err := s.trips.TotalPricePerGuide(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.GuideTotalsFromDomain(totals))
}

// packingWeight handles GET /trip/{id}/packing/weight.
func (s *Server) packingWeight(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	weight, err := s.trips.PackingWeight(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.PackingWeightFromDomain(weight))
}
