package api

import (
	"net/http"

	"github.com/status-im/coin-browser/listing"
)

// handleListing responds with the current listing snapshot
func (s *Server) handleListing(w http.ResponseWriter, r *http.Request) {
	s.sendJSONResponse(w, s.listing.Snapshot())
}

// handleNextPage fetches the next page and responds with the new snapshot.
// The snapshot is returned on failure too, carrying the error message.
func (s *Server) handleNextPage(w http.ResponseWriter, r *http.Request) {
	err := s.listing.FetchNextPage(r.Context())
	s.sendJSONResponseWithStatus(w, statusForError(err), s.listing.Snapshot())
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	err := s.listing.Refresh(r.Context())
	s.sendJSONResponseWithStatus(w, statusForError(err), s.listing.Snapshot())
}

// handleSort applies ?by=price|change|name&order=asc|desc, order defaults to asc
func (s *Server) handleSort(w http.ResponseWriter, r *http.Request) {
	field, err := listing.ParseSortField(getParamLowercase(r, "by"))
	if err != nil {
		s.sendError(w, http.StatusBadRequest, "by parameter must be one of price, change, name")
		return
	}

	ascending := true
	switch getParamLowercase(r, "order") {
	case "", "asc":
	case "desc":
		ascending = false
	default:
		s.sendError(w, http.StatusBadRequest, "order parameter must be asc or desc")
		return
	}

	s.listing.Sort(field, ascending)
	s.sendJSONResponse(w, s.listing.Snapshot())
}

// handlePageView switches back to the paged prefix
func (s *Server) handlePageView(w http.ResponseWriter, r *http.Request) {
	s.listing.UpdateDisplayedCoins()
	s.sendJSONResponse(w, s.listing.Snapshot())
}
