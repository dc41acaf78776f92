package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/status-im/coin-browser/coinranking"
)

type favoritesResponse struct {
	IDs   []string           `json:"ids"`
	Coins []coinranking.Coin `json:"coins"`
}

type removedResponse struct {
	Removed bool `json:"removed"`
	Index   int  `json:"index"`
	favoritesResponse
}

func (s *Server) favorites() favoritesResponse {
	return favoritesResponse{
		IDs:   s.listing.Favorites(),
		Coins: s.listing.FavoriteCoins(),
	}
}

// handleFavorites responds with the favorite ids and the displayed favorite coins
func (s *Server) handleFavorites(w http.ResponseWriter, r *http.Request) {
	s.sendJSONResponse(w, s.favorites())
}

// handleFavoritesViewToggle unfavorites a coin from the favorites screen and
// reports the index it was removed from
func (s *Server) handleFavoritesViewToggle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	index, removed := s.listing.FavoritesView().ToggleAndRemovedIndex(id)
	s.sendJSONResponse(w, removedResponse{
		Removed:           removed,
		Index:             index,
		favoritesResponse: s.favorites(),
	})
}
