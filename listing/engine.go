package listing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/status-im/coin-browser/coinranking"
	cr "github.com/status-im/coin-browser/coinranking_common"
	"github.com/status-im/coin-browser/config"
	"github.com/status-im/coin-browser/detail"
	"github.com/status-im/coin-browser/events"
	"github.com/status-im/coin-browser/favorites"
	"github.com/status-im/coin-browser/interfaces"
	"github.com/status-im/coin-browser/metrics"
	"github.com/status-im/coin-browser/scheduler"
)

var ErrCoinNotFound = errors.New("coin not found in listing")

// Snapshot is a consistent copy of the listing state
type Snapshot struct {
	DisplayedCoins []coinranking.Coin `json:"displayedCoins"`
	Favorites      []string           `json:"favorites"`
	CurrentPage    int                `json:"currentPage"`
	TotalCoins     int                `json:"totalCoins"`
	Projection     string             `json:"projection"`
	ErrorMessage   string             `json:"errorMessage"`
	IsLoading      bool               `json:"isLoading"`
	// ShowErrorPanel is set when the first page failed and nothing is shown
	ShowErrorPanel bool `json:"showErrorPanel"`
}

// Engine owns the accumulated coin list, the page cursor and the displayed
// projection. Fetches run outside the lock; each one is tagged with the
// generation and page it was issued for and its result is dropped when
// either moved on in the meantime. Refresh starts a new generation and
// cancels fetches still in flight.
type Engine struct {
	mu           sync.Mutex
	repo         interfaces.CoinRepository
	favorites    interfaces.FavoritesStore
	pageSize     int
	coins        []coinranking.Coin
	ids          map[string]struct{}
	currentPage  int
	displayed    []coinranking.Coin
	projection   projection
	errorMessage string
	generation   uint64
	nextFetchID  uint64
	inflight     map[uint64]context.CancelFunc

	autoRefresh *scheduler.Scheduler
	favSub      events.ISubscription[[]string]
	subs        *events.SubscriptionManager[Snapshot]
	logger      *zap.Logger
}

// NewEngine creates an empty listing. Favorites are shared with every
// detail and favorites view created from it.
func NewEngine(repo interfaces.CoinRepository, store interfaces.FavoritesStore, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		repo:        repo,
		favorites:   store,
		pageSize:    config.DefaultPageSize,
		coins:       []coinranking.Coin{},
		ids:         make(map[string]struct{}),
		currentPage: 1,
		displayed:   []coinranking.Coin{},
		inflight:    make(map[uint64]context.CancelFunc),
		subs:        events.NewSubscriptionManager[Snapshot](),
		logger:      logger.Named("listing"),
	}
}

// WithPageSize overrides the number of coins fetched per page
func (e *Engine) WithPageSize(pageSize int) *Engine {
	if pageSize > 0 {
		e.pageSize = pageSize
	}
	return e
}

// WithAutoRefresh refreshes the listing every interval while started.
// A zero interval disables it.
func (e *Engine) WithAutoRefresh(interval time.Duration) *Engine {
	if interval <= 0 {
		e.autoRefresh = nil
		return e
	}
	e.autoRefresh = scheduler.New("auto-refresh", interval, func(ctx context.Context) {
		if err := e.Refresh(ctx); err != nil && !errors.Is(err, coinranking.ErrStaleResponse) {
			e.logger.Warn("auto refresh failed", zap.Error(err))
		}
	}, e.logger)
	return e
}

// Start implements core.Interface. It forwards favorite changes made
// elsewhere to listing subscribers and starts the auto refresh if configured.
func (e *Engine) Start(ctx context.Context) error {
	if e.repo == nil {
		return fmt.Errorf("coin repository dependency not provided")
	}
	if e.favorites == nil {
		return fmt.Errorf("favorites store dependency not provided")
	}

	e.favSub = e.favorites.Subscribe().Watch(ctx, func([]string) {
		e.notify()
	})
	if e.autoRefresh != nil {
		e.autoRefresh.Start(ctx, false)
	}
	return nil
}

// Stop implements core.Interface
func (e *Engine) Stop() {
	if e.autoRefresh != nil {
		e.autoRefresh.Stop()
	}
	if e.favSub != nil {
		e.favSub.Cancel()
	}

	e.mu.Lock()
	for _, cancel := range e.inflight {
		cancel()
	}
	e.mu.Unlock()
}

// FetchNextPage fetches the page under the cursor and appends the coins not
// seen yet. On failure the accumulated coins stay as they were and only the
// error message changes. A result superseded by a refresh or by another
// fetch of the same page is discarded with coinranking.ErrStaleResponse.
func (e *Engine) FetchNextPage(ctx context.Context) error {
	e.mu.Lock()
	generation := e.generation
	page := e.currentPage
	fetchID := e.nextFetchID
	e.nextFetchID++
	fetchCtx, cancel := context.WithCancel(ctx)
	e.inflight[fetchID] = cancel
	e.mu.Unlock()
	defer cancel()
	e.notify()

	e.logger.Debug("fetching page", zap.Int("page", page), zap.Uint64("generation", generation))
	coins, err := e.repo.FetchCoins(fetchCtx, page, e.pageSize)

	e.mu.Lock()
	delete(e.inflight, fetchID)

	if generation != e.generation || page != e.currentPage {
		e.mu.Unlock()
		e.logger.Debug("discarding stale page",
			zap.Int("page", page),
			zap.Uint64("generation", generation),
			zap.Error(err))
		metrics.RecordStaleResponse("listing")
		e.notify()
		return coinranking.ErrStaleResponse
	}

	if err != nil {
		e.errorMessage = cr.MessageFor(err)
		e.mu.Unlock()
		e.logger.Warn("failed to fetch page", zap.Int("page", page), zap.Error(err))
		e.notify()
		return err
	}

	added := e.mergeLocked(coins)
	e.currentPage++
	e.projection = projection{}
	e.recomputeLocked()
	e.errorMessage = ""
	total := len(e.coins)
	e.mu.Unlock()

	metrics.RecordListingSize(total)
	e.logger.Debug("fetched page",
		zap.Int("page", page),
		zap.Int("received", len(coins)),
		zap.Int("added", added),
		zap.Int("total", total))
	e.notify()
	return nil
}

// Refresh discards every accumulated coin and fetches the first page again
func (e *Engine) Refresh(ctx context.Context) error {
	e.mu.Lock()
	e.generation++
	for id, cancel := range e.inflight {
		cancel()
		delete(e.inflight, id)
	}
	e.coins = []coinranking.Coin{}
	e.ids = make(map[string]struct{})
	e.currentPage = 1
	e.recomputeLocked()
	e.mu.Unlock()

	metrics.RecordListingSize(0)
	e.logger.Debug("refreshing listing")
	return e.FetchNextPage(ctx)
}

// SortByPrice shows every accumulated coin ordered by price
func (e *Engine) SortByPrice(ascending bool) {
	e.setProjection(projection{field: SortByPrice, ascending: ascending})
}

// SortByChange shows every accumulated coin ordered by 24h change
func (e *Engine) SortByChange(ascending bool) {
	e.setProjection(projection{field: SortByChange, ascending: ascending})
}

// SortByName shows every accumulated coin ordered by name
func (e *Engine) SortByName(ascending bool) {
	e.setProjection(projection{field: SortByName, ascending: ascending})
}

// Sort applies field, SortNone goes back to the paged prefix
func (e *Engine) Sort(field SortField, ascending bool) {
	e.setProjection(projection{field: field, ascending: ascending})
}

// UpdateDisplayedCoins shows the first currentPage*pageSize accumulated coins
func (e *Engine) UpdateDisplayedCoins() {
	e.setProjection(projection{})
}

func (e *Engine) setProjection(p projection) {
	e.mu.Lock()
	e.projection = p
	e.recomputeLocked()
	e.mu.Unlock()

	e.logger.Debug("projection changed", zap.Stringer("projection", p))
	e.notify()
}

// ToggleFavorite flips id in the favorites store. Empty ids are ignored.
// Favorites only flag coins, the displayed projection is not recomputed.
func (e *Engine) ToggleFavorite(id string) error {
	if id == "" {
		return nil
	}
	if _, err := e.favorites.Toggle(id); err != nil {
		e.mu.Lock()
		e.errorMessage = cr.MessageFor(err)
		e.mu.Unlock()
		e.notify()
		return err
	}
	e.notify()
	return nil
}

func (e *Engine) IsFavorite(id string) bool {
	return e.favorites.Contains(id)
}

func (e *Engine) Favorites() []string {
	return e.favorites.IDs()
}

// FavoriteCoins returns the displayed coins that are favorites
func (e *Engine) FavoriteCoins() []coinranking.Coin {
	displayed := e.DisplayedCoins()
	result := make([]coinranking.Coin, 0, len(displayed))
	for _, coin := range displayed {
		if e.favorites.Contains(coin.ID) {
			result = append(result, coin)
		}
	}
	return result
}

// FavoritesView opens the favorites screen over the displayed favorite coins
func (e *Engine) FavoritesView() *favorites.View {
	return favorites.NewView(e.FavoriteCoins(), e.toggleFromView)
}

// Select opens the detail screen of an accumulated coin. Toggling the
// favorite there is forwarded to this engine's store.
func (e *Engine) Select(id string) (*detail.Engine, error) {
	coin, ok := e.coin(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCoinNotFound, id)
	}
	return detail.NewEngine(coin, e.repo, e.favorites.Contains(id), e.toggleFromDetail, e.logger), nil
}

// toggleFromDetail reports the store's membership after the toggle
func (e *Engine) toggleFromDetail(id string) (bool, error) {
	err := e.ToggleFavorite(id)
	return e.favorites.Contains(id), err
}

func (e *Engine) toggleFromView(id string) {
	if err := e.ToggleFavorite(id); err != nil {
		e.logger.Warn("failed to toggle favorite", zap.String("coin_id", id), zap.Error(err))
	}
}

func (e *Engine) coin(id string) (coinranking.Coin, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.ids[id]; !ok {
		return coinranking.Coin{}, false
	}
	for _, coin := range e.coins {
		if coin.ID == id {
			return coin, true
		}
	}
	return coinranking.Coin{}, false
}

func (e *Engine) DisplayedCoins() []coinranking.Coin {
	e.mu.Lock()
	defer e.mu.Unlock()
	return copyCoins(e.displayed)
}

// Coins returns every accumulated coin in insertion order
func (e *Engine) Coins() []coinranking.Coin {
	e.mu.Lock()
	defer e.mu.Unlock()
	return copyCoins(e.coins)
}

func (e *Engine) CurrentPage() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentPage
}

func (e *Engine) PageSize() int {
	return e.pageSize
}

func (e *Engine) ErrorMessage() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.errorMessage
}

// IsLoading reports whether a fetch is in flight
func (e *Engine) IsLoading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.inflight) > 0
}

func (e *Engine) Snapshot() Snapshot {
	favoriteIDs := e.favorites.IDs()

	e.mu.Lock()
	defer e.mu.Unlock()
	return Snapshot{
		DisplayedCoins: copyCoins(e.displayed),
		Favorites:      favoriteIDs,
		CurrentPage:    e.currentPage,
		TotalCoins:     len(e.coins),
		Projection:     e.projection.String(),
		ErrorMessage:   e.errorMessage,
		IsLoading:      len(e.inflight) > 0,
		ShowErrorPanel: e.errorMessage != "" && len(e.coins) == 0,
	}
}

// Subscribe notifies with a snapshot after every state change
func (e *Engine) Subscribe() events.ISubscription[Snapshot] {
	return e.subs.Subscribe()
}

func (e *Engine) notify() {
	e.subs.Emit(context.Background(), e.Snapshot())
}

// mergeLocked appends coins whose id is new, keeping first-seen order
func (e *Engine) mergeLocked(coins []coinranking.Coin) int {
	added := 0
	for _, coin := range coins {
		if _, seen := e.ids[coin.ID]; seen {
			continue
		}
		e.ids[coin.ID] = struct{}{}
		e.coins = append(e.coins, coin)
		added++
	}
	return added
}

func (e *Engine) recomputeLocked() {
	if e.projection.field != SortNone {
		e.displayed = sortedCoins(e.coins, e.projection.field, e.projection.ascending)
		return
	}

	end := e.currentPage * e.pageSize
	if end > len(e.coins) {
		end = len(e.coins)
	}
	e.displayed = copyCoins(e.coins[:end])
}

func copyCoins(coins []coinranking.Coin) []coinranking.Coin {
	return append(make([]coinranking.Coin, 0, len(coins)), coins...)
}
