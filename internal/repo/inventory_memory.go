package repo

import (
	"context"
	"sort"
	"time"

	"github.com/salespilot/backoffice/internal/models"
)

type InMemoryInventoryRepository struct {
	snaps map[int]models.InventorySnapshot
	// Insertion counter stands in for last_updated ordering, which wall-clock
	// timestamps can't guarantee within a test run.
	order   map[int]int
	counter int
}

func NewInMemoryInventoryRepository() *InMemoryInventoryRepository {
	return &InMemoryInventoryRepository{
		snaps: make(map[int]models.InventorySnapshot),
		order: make(map[int]int),
	}
}

func (r *InMemoryInventoryRepository) Upsert(_ context.Context, s models.InventorySnapshot) error {
	s.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	r.snaps[s.ProductID] = s
	r.counter++
	r.order[s.ProductID] = r.counter
	return nil
}

func (r *InMemoryInventoryRepository) GetAll(_ context.Context) ([]models.InventorySnapshot, error) {
	out := make([]models.InventorySnapshot, 0, len(r.snaps))
	for _, s := range r.snaps {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

func (r *InMemoryInventoryRepository) OutOfRange(_ context.Context, low, high int) ([]models.InventorySnapshot, error) {
	var out []models.InventorySnapshot
	for _, s := range r.snaps {
		if s.AvailableStock < low || s.AvailableStock > high {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return r.order[out[i].ProductID] > r.order[out[j].ProductID]
	})
	return out, nil
}

func (r *InMemoryInventoryRepository) Clear() {
	r.snaps = make(map[int]models.InventorySnapshot)
	r.order = make(map[int]int)
	r.counter = 0
}
