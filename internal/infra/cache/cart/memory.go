package cart

import (
	"context"
	"sort"
	"sync"

	"github.com/m04kA/EquestrianHub/internal/domain"
)

// MemoryStore корзины в памяти процесса, когда Redis выключен или недоступен
type MemoryStore struct {
	mu    sync.Mutex
	carts map[int64]map[int64]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[int64]map[int64]int)}
}

func (s *MemoryStore) Lines(_ context.Context, userID int64) ([]domain.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]domain.CartLine, 0, len(s.carts[userID]))
	for productID, qty := range s.carts[userID] {
		lines = append(lines, domain.CartLine{ProductID: productID, Quantity: qty})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })
	return lines, nil
}

func (s *MemoryStore) Add(_ context.Context, userID, productID int64, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[userID]
	if lines == nil {
		lines = make(map[int64]int)
		s.carts[userID] = lines
	}
	lines[productID] += delta
	if lines[productID] <= 0 {
		delete(lines, productID)
		return 0, nil
	}
	return lines[productID], nil
}

func (s *MemoryStore) Set(_ context.Context, userID, productID int64, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if qty <= 0 {
		delete(s.carts[userID], productID)
		return nil
	}
	if s.carts[userID] == nil {
		s.carts[userID] = make(map[int64]int)
	}
	s.carts[userID][productID] = qty
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, userID, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts[userID], productID)
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, userID)
	return nil
}
