package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/SerhiiL06/feathered-friends-marketplace/internal/domain"
	"github.com/SerhiiL06/feathered-friends-marketplace/internal/repository"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// callLog records side effects across mocks so tests can assert ordering.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) record(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, name)
}

func (l *callLog) recorded() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

type mockCartStore struct {
	mu       sync.Mutex
	carts    map[string]map[string]int64
	log      *callLog
	clearErr error
}

func newMockCartStore() *mockCartStore {
	return &mockCartStore{carts: make(map[string]map[string]int64)}
}

func (m *mockCartStore) Add(_ context.Context, sessionKey, productID string, qty int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.carts[sessionKey] == nil {
		m.carts[sessionKey] = make(map[string]int64)
	}
	m.carts[sessionKey][productID] += qty
	return nil
}

func (m *mockCartStore) Remove(_ context.Context, sessionKey, productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts[sessionKey], productID)
	return nil
}

func (m *mockCartStore) Clear(_ context.Context, sessionKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.log != nil {
		m.log.record("clear")
	}
	if m.clearErr != nil {
		return m.clearErr
	}
	delete(m.carts, sessionKey)
	return nil
}

func (m *mockCartStore) Entries(_ context.Context, sessionKey string) (map[string]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := make(map[string]int64, len(m.carts[sessionKey]))
	for id, qty := range m.carts[sessionKey] {
		entries[id] = qty
	}
	return entries, nil
}

type mockProductRepo struct {
	mu         sync.Mutex
	products   []domain.Product
	byIDsCalls int
}

func (m *mockProductRepo) Create(_ context.Context, p *domain.Product) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = append(m.products, *p)
	return p.ID, nil
}

func (m *mockProductRepo) BySlug(_ context.Context, slug string) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.Slug == slug {
			found := p
			return &found, nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (m *mockProductRepo) BySlugs(_ context.Context, slugs []string) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Product
	for _, p := range m.products {
		for _, s := range slugs {
			if p.Slug == s {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func (m *mockProductRepo) ByIDs(_ context.Context, ids []string) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byIDsCalls++
	var out []domain.Product
	for _, p := range m.products {
		for _, id := range ids {
			if p.ID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func (m *mockProductRepo) List(context.Context, domain.ProductFilter) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Product(nil), m.products...), nil
}

func (m *mockProductRepo) Update(_ context.Context, slug string, patch domain.ProductPatch) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.products {
		if m.products[i].Slug == slug {
			if patch.Title != nil {
				m.products[i].Title = *patch.Title
			}
			if patch.Retail != nil {
				m.products[i].Price.Retail = *patch.Retail
			}
			updated := m.products[i]
			return &updated, nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (m *mockProductRepo) AddComment(_ context.Context, slug string, comment domain.Comment) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.products {
		if m.products[i].Slug == slug {
			m.products[i].Comments = append(m.products[i].Comments, comment)
			updated := m.products[i]
			return &updated, nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (m *mockProductRepo) Delete(_ context.Context, slug string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.products {
		if p.Slug == slug {
			m.products = append(m.products[:i], m.products[i+1:]...)
			return nil
		}
	}
	return repository.ErrProductNotFound
}

func (m *mockProductRepo) CategoriesByTitle(_ context.Context, titles []string) ([]domain.CategoryRef, error) {
	refs := make([]domain.CategoryRef, 0, len(titles))
	for i, t := range titles {
		refs = append(refs, domain.CategoryRef{ID: string(rune('a' + i)), Title: t})
	}
	return refs, nil
}

func (m *mockProductRepo) RemoveStaleNewTags(context.Context, time.Time) (int64, error) {
	return 0, nil
}

type mockOrderRepo struct {
	mu        sync.Mutex
	orders    map[string]domain.Order
	nextID    int
	log       *callLog
	createErr error
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[string]domain.Order)}
}

func (m *mockOrderRepo) Create(_ context.Context, order *domain.Order) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.log != nil {
		m.log.record("create")
	}
	if m.createErr != nil {
		return "", m.createErr
	}
	m.nextID++
	id := fmt.Sprintf("order-%d", m.nextID)
	stored := *order
	stored.ID = id
	m.orders[id] = stored
	return id, nil
}

func (m *mockOrderRepo) List(context.Context) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Order, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, o)
	}
	return out, nil
}

func (m *mockOrderRepo) Get(_ context.Context, id string) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	return &order, nil
}

type mockPaymentGateway struct {
	mu     sync.Mutex
	log    *callLog
	links  map[string]string
	issued []string
	err    error
}

func newMockPaymentGateway() *mockPaymentGateway {
	return &mockPaymentGateway{links: make(map[string]string)}
}

func (m *mockPaymentGateway) IssueLink(_ context.Context, order *domain.Order) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.log != nil {
		m.log.record("link")
	}
	if m.err != nil {
		return "", m.err
	}
	link := "https://pay.example/" + order.ID
	m.links[order.ID] = link
	m.issued = append(m.issued, order.ID)
	return link, nil
}

func (m *mockPaymentGateway) Status(_ context.Context, orderID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.links[orderID]; ok {
		return "success", nil
	}
	return "failure", nil
}
