// README: Quote service ranks routes and records them in the history store.
package quote

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"freightcalc/internal/modules/calculation"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// History is the persistence the service needs; *Store implements it.
type History interface {
	Save(ctx context.Context, q *Quote) error
	Get(ctx context.Context, id string) (*Quote, error)
	ListRecent(ctx context.Context, limit int) ([]Quote, error)
}

type Service struct {
	history History
	now     func() time.Time
}

// NewService accepts a nil history, in which case quotes are ranked but not stored.
func NewService(history History) *Service {
	return &Service{history: history, now: time.Now}
}

func (s *Service) HistoryEnabled() bool {
	return s.history != nil
}

// Rank orders routes by total cost, cheapest first, keeping the input order for ties.
func Rank(routes []BestPriceRoute) []BestPriceRoute {
	out := append([]BestPriceRoute(nil), routes...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.Amount < out[j].Total.Amount
	})
	return out
}

// Record ranks routes and stores them with req. Without history the quote is
// still returned, with an id, but nothing is persisted.
func (s *Service) Record(ctx context.Context, req calculation.CalculationRequest, routes []BestPriceRoute) (Quote, error) {
	q := Quote{
		ID:        uuid.NewString(),
		Request:   req,
		Routes:    Rank(routes),
		CreatedAt: s.now().UTC(),
	}
	if s.history == nil {
		return q, nil
	}
	if err := s.history.Save(ctx, &q); err != nil {
		return Quote{}, err
	}
	return q, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Quote, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	return s.history.Get(ctx, id)
}

func (s *Service) Recent(ctx context.Context, limit int) ([]Quote, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return s.history.ListRecent(ctx, limit)
}
