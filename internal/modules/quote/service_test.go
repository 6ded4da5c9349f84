package quote

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freightcalc/internal/modules/calculation"
	"freightcalc/internal/types"
)

type memoryHistory struct {
	saved   []Quote
	saveErr error
	limit   int
}

func (m *memoryHistory) Save(_ context.Context, q *Quote) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, *q)
	return nil
}

func (m *memoryHistory) Get(_ context.Context, id string) (*Quote, error) {
	for i := range m.saved {
		if m.saved[i].ID == id {
			return &m.saved[i], nil
		}
	}
	return nil, ErrNotFound
}

func (m *memoryHistory) ListRecent(_ context.Context, limit int) ([]Quote, error) {
	m.limit = limit
	return m.saved, nil
}

func routeCosting(id string, amount float64) BestPriceRoute {
	return BestPriceRoute{ID: id, Mode: calculation.ModeSea, Total: types.FromMajor(amount, "USD")}
}

func TestRankCheapestFirstStable(t *testing.T) {
	in := []BestPriceRoute{routeCosting("a", 300), routeCosting("b", 100), routeCosting("c", 300), routeCosting("d", 50)}
	got := Rank(in)
	ids := []string{got[0].ID, got[1].ID, got[2].ID, got[3].ID}
	assert.Equal(t, []string{"d", "b", "a", "c"}, ids)
	assert.Equal(t, "a", in[0].ID, "input must not be reordered")
}

func TestRecordStoresRankedQuote(t *testing.T) {
	h := &memoryHistory{}
	svc := NewService(h)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }

	q, err := svc.Record(context.Background(), calculation.CalculationRequest{}, []BestPriceRoute{routeCosting("x", 9), routeCosting("y", 1)})
	require.NoError(t, err)
	assert.NotEmpty(t, q.ID)
	cheapest, ok := q.Cheapest()
	require.True(t, ok)
	assert.Equal(t, "y", cheapest.ID)
	require.Len(t, h.saved, 1)
	assert.Equal(t, q.ID, h.saved[0].ID)

	got, err := svc.Get(context.Background(), q.ID)
	require.NoError(t, err)
	assert.Equal(t, q.CreatedAt, got.CreatedAt)
}

func TestRecordPropagatesStoreError(t *testing.T) {
	svc := NewService(&memoryHistory{saveErr: errors.New("db down")})
	_, err := svc.Record(context.Background(), calculation.CalculationRequest{}, nil)
	assert.EqualError(t, err, "db down")
}

func TestServiceWithoutHistory(t *testing.T) {
	svc := NewService(nil)
	assert.False(t, svc.HistoryEnabled())

	q, err := svc.Record(context.Background(), calculation.CalculationRequest{}, []BestPriceRoute{routeCosting("x", 1)})
	require.NoError(t, err)
	assert.NotEmpty(t, q.ID)

	_, err = svc.Get(context.Background(), q.ID)
	assert.ErrorIs(t, err, ErrHistoryDisabled)
	_, err = svc.Recent(context.Background(), 5)
	assert.ErrorIs(t, err, ErrHistoryDisabled)
}

func TestRecentClampsLimit(t *testing.T) {
	h := &memoryHistory{}
	svc := NewService(h)
	for in, want := range map[int]int{0: DefaultListLimit, -3: DefaultListLimit, 7: 7, 1000: MaxListLimit} {
		_, err := svc.Recent(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, want, h.limit, "limit %d", in)
	}
}
