package movements_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/estoquepro/estoque-api/internal/application/movements"
	"github.com/estoquepro/estoque-api/internal/domain/entity"
	"github.com/estoquepro/estoque-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória com a mesma semântica do Postgres: update condicional por
// situação, bloqueio por transação e rollback quando a função falha.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu       sync.Mutex
	movs     map[int64]entity.Movement
	products map[string]entity.Product
	nextID   int64
}

func newMemStore() *memStore {
	return &memStore{
		movs:     map[int64]entity.Movement{},
		products: map[string]entity.Product{},
	}
}

func (s *memStore) addProduct(id string, stock int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[id] = entity.Product{
		ID: id, Code: "P-" + id, Name: "Produto " + id, UnitMeasure: "UN",
		Stock: decimal.NewFromInt(stock),
	}
}

func (s *memStore) removeProduct(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.products, id)
}

func (s *memStore) movement(id int64) entity.Movement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.movs[id]
}

func (s *memStore) productStock(id string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id].Stock
}

func (s *memStore) snapshot() (map[int64]entity.Movement, map[string]entity.Product) {
	movs := make(map[int64]entity.Movement, len(s.movs))
	for k, v := range s.movs {
		movs[k] = v
	}
	products := make(map[string]entity.Product, len(s.products))
	for k, v := range s.products {
		products[k] = v
	}
	return movs, products
}

// memTxRunner segura o mutex durante toda a transação (equivale ao bloqueio de
// linha) e restaura o snapshot quando fn falha (equivale ao rollback).
type memTxRunner struct{ store *memStore }

func (r *memTxRunner) Run(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	movs, products := r.store.snapshot()
	err := fn(&memMovementRepo{store: r.store, inTx: true}, &memProductRepo{store: r.store, inTx: true})
	if err != nil {
		r.store.movs = movs
		r.store.products = products
		return err
	}
	return nil
}

type memMovementRepo struct {
	store *memStore
	inTx  bool
}

func (r *memMovementRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *memMovementRepo) Create(m *entity.Movement) error {
	defer r.lock()()
	r.store.nextID++
	m.ID = r.store.nextID
	r.store.movs[m.ID] = *m
	return nil
}

func (r *memMovementRepo) GetByID(id int64) (*entity.Movement, error) {
	defer r.lock()()
	m, ok := r.store.movs[id]
	if !ok {
		return nil, nil
	}
	cp := m
	return &cp, nil
}

func (r *memMovementRepo) GetForUpdate(id int64) (*entity.Movement, error) {
	return r.GetByID(id)
}

func (r *memMovementRepo) UpdatePending(m *entity.Movement) (bool, error) {
	defer r.lock()()
	current, ok := r.store.movs[m.ID]
	if !ok || current.Status != entity.MovementStatusPendente {
		return false, nil
	}
	current.ProductID = m.ProductID
	current.Kind = m.Kind
	current.Quantity = m.Quantity
	current.ReasonCode = m.ReasonCode
	current.ReasonNote = m.ReasonNote
	current.Note = m.Note
	r.store.movs[m.ID] = current
	return true, nil
}

func (r *memMovementRepo) MarkReviewed(m *entity.Movement) (bool, error) {
	defer r.lock()()
	current, ok := r.store.movs[m.ID]
	if !ok || current.Status != entity.MovementStatusPendente {
		return false, nil
	}
	current.Status = m.Status
	current.ReviewedBy = m.ReviewedBy
	current.ReviewedAt = m.ReviewedAt
	current.RejectionReason = m.RejectionReason
	r.store.movs[m.ID] = current
	return true, nil
}

func (r *memMovementRepo) List(filter repository.MovementFilter) ([]repository.MovementListItem, error) {
	defer r.lock()()
	var items []repository.MovementListItem
	for _, m := range r.store.movs {
		if filter.SubmittedBy != "" && m.SubmittedBy != filter.SubmittedBy {
			continue
		}
		if filter.Status != "" && m.Status != filter.Status {
			continue
		}
		item := repository.MovementListItem{Movement: m}
		if p, ok := r.store.products[m.ProductID]; ok {
			item.ProductName = p.Name
			item.ProductCode = p.Code
			item.ProductUnit = p.UnitMeasure
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID > items[j].ID })
	if filter.Offset > 0 {
		if filter.Offset >= len(items) {
			return nil, nil
		}
		items = items[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(items) {
		items = items[:filter.Limit]
	}
	return items, nil
}

type memProductRepo struct {
	store *memStore
	inTx  bool
}

func (r *memProductRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *memProductRepo) Create(p *entity.Product) error {
	defer r.lock()()
	r.store.products[p.ID] = *p
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	defer r.lock()()
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	cp := p
	return &cp, nil
}

func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *memProductRepo) UpdateStock(id string, qty decimal.Decimal, at time.Time) error {
	defer r.lock()()
	p, ok := r.store.products[id]
	if !ok {
		return nil
	}
	p.Stock = qty
	p.UpdatedAt = at
	r.store.products[id] = p
	return nil
}

func (r *memProductRepo) List(search string, limit, offset int) ([]*entity.Product, error) {
	defer r.lock()()
	var out []*entity.Product
	for _, p := range r.store.products {
		cp := p
		out = append(out, &cp)
	}
	return out, nil
}

// countingLedger embrulha um LedgerApplier contando invocações e registrando
// os argumentos da última chamada.
type countingLedger struct {
	inner movements.LedgerApplier
	mu    sync.Mutex
	calls int

	lastProductID string
	lastKind      string
	lastQty       decimal.Decimal
}

func (l *countingLedger) Apply(productRepo repository.ProductRepository, productID, kind string, qty decimal.Decimal) error {
	l.mu.Lock()
	l.calls++
	l.lastProductID = productID
	l.lastKind = kind
	l.lastQty = qty
	l.mu.Unlock()
	return l.inner.Apply(productRepo, productID, kind, qty)
}

func (l *countingLedger) Calls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

// failingLedger simula indisponibilidade do componente de estoque.
type failingLedger struct{ err error }

func (l *failingLedger) Apply(repository.ProductRepository, string, string, decimal.Decimal) error {
	return l.err
}
