package favorites

import (
	"sync"

	"github.com/status-im/coin-browser/coinranking"
)

// View is the favorites screen: a list of favorite coins that shrinks as
// coins are unfavorited. toggle forwards every change to the shared store.
type View struct {
	mu     sync.Mutex
	coins  []coinranking.Coin
	toggle func(id string)
}

func NewView(coins []coinranking.Coin, toggle func(id string)) *View {
	return &View{
		coins:  append([]coinranking.Coin(nil), coins...),
		toggle: toggle,
	}
}

// Coins returns the coins currently shown
func (v *View) Coins() []coinranking.Coin {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]coinranking.Coin(nil), v.coins...)
}

// ToggleAndRemovedIndex removes id from the view and returns the index it
// was shown at. ok is false, and nothing is toggled, when id is not shown.
func (v *View) ToggleAndRemovedIndex(id string) (int, bool) {
	v.mu.Lock()
	index := v.indexOfLocked(id)
	if index < 0 {
		v.mu.Unlock()
		return 0, false
	}
	v.coins = append(v.coins[:index], v.coins[index+1:]...)
	v.mu.Unlock()

	if v.toggle != nil {
		v.toggle(id)
	}
	return index, true
}

// Toggle removes id from the view, if shown, and always forwards the toggle
func (v *View) Toggle(id string) {
	v.mu.Lock()
	kept := v.coins[:0]
	for _, coin := range v.coins {
		if coin.ID != id {
			kept = append(kept, coin)
		}
	}
	v.coins = kept
	v.mu.Unlock()

	if v.toggle != nil {
		v.toggle(id)
	}
}

func (v *View) indexOfLocked(id string) int {
	for i, coin := range v.coins {
		if coin.ID == id {
			return i
		}
	}
	return -1
}
