package interfaces

import "github.com/status-im/coin-browser/events"

//go:generate mockgen -destination=mocks/favorites_store.go . FavoritesStore

// FavoritesStore holds the set of favorite coin ids shared by all screens
type FavoritesStore interface {
	Contains(id string) bool

	// Toggle flips membership of id and returns whether it is now a favorite
	Toggle(id string) (bool, error)

	// IDs returns the favorite ids in sorted order
	IDs() []string

	// Subscribe notifies with the full id set after every change
	Subscribe() events.ISubscription[[]string]
}
