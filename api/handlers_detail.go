package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/status-im/coin-browser/coinranking"
	"github.com/status-im/coin-browser/listing"
)

type favoriteResponse struct {
	ID         string `json:"id"`
	IsFavorite bool   `json:"isFavorite"`
}

// handleDetail loads the history of an accumulated coin, ?period defaults to 24h
func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	engine, err := s.listing.Select(id)
	if err != nil {
		if errors.Is(err, listing.ErrCoinNotFound) {
			s.sendError(w, http.StatusNotFound, "coin not found in listing")
			return
		}
		s.sendError(w, http.StatusInternalServerError, err.Error())
		return
	}

	period := r.URL.Query().Get("period")
	if period == "" {
		period = string(coinranking.DefaultPeriod)
	}

	err = engine.FetchHistory(r.Context(), period)
	if errors.Is(err, coinranking.ErrInvalidPeriod) {
		s.sendError(w, http.StatusBadRequest, engine.ErrorMessage())
		return
	}
	s.sendJSONResponseWithStatus(w, statusForError(err), engine.Snapshot())
}

// handleToggleFavorite flips the favorite flag of a coin
func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := s.listing.ToggleFavorite(id); err != nil {
		s.sendError(w, http.StatusInternalServerError, s.listing.ErrorMessage())
		return
	}
	s.sendJSONResponse(w, favoriteResponse{ID: id, IsFavorite: s.listing.IsFavorite(id)})
}
