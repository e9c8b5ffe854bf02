package procurement_test

import (
	"context"
	"sort"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/Importaciones-api/internal/application/procurement"
	"github.com/jhoicas/Importaciones-api/internal/domain"
	"github.com/jhoicas/Importaciones-api/internal/domain/entity"
	"github.com/jhoicas/Importaciones-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén transaccional en memoria: escrituras en staging hasta el commit,
// bloqueo de fila al actualizar una orden o bloquear una billetera.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu       sync.Mutex
	orders   map[string]*entity.PurchaseOrder
	events   []entity.StatusEvent
	seq      map[string]int
	batches  []entity.InventoryBatch
	wallets  map[string]entity.SupplierWallet
	notes    []entity.WalletNote
	rowLocks map[string]*sync.Mutex
	barrier  *loadBarrier
}

func newMemStore() *memStore {
	return &memStore{
		orders:   map[string]*entity.PurchaseOrder{},
		seq:      map[string]int{},
		wallets:  map[string]entity.SupplierWallet{},
		rowLocks: map[string]*sync.Mutex{},
	}
}

// loadBarrier retiene las primeras n lecturas de orden hasta que todas llegan.
type loadBarrier struct {
	mu      sync.Mutex
	n       int
	arrived int
	ch      chan struct{}
}

func newLoadBarrier(n int) *loadBarrier { return &loadBarrier{n: n, ch: make(chan struct{})} }

func (b *loadBarrier) arrive() {
	b.mu.Lock()
	if b.arrived < b.n {
		b.arrived++
		if b.arrived == b.n {
			close(b.ch)
		}
	}
	b.mu.Unlock()
	<-b.ch
}

func (s *memStore) rowLock(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.rowLocks[key]
	if !ok {
		l = &sync.Mutex{}
		s.rowLocks[key] = l
	}
	return l
}

func (s *memStore) Run(_ context.Context, fn func(
	orderRepo repository.PurchaseOrderRepository,
	batchRepo repository.InventoryBatchRepository,
	walletRepo repository.SupplierWalletRepository,
) error) error {
	tx := s.begin()
	defer tx.release()
	if err := fn(&txOrders{tx}, &txBatches{tx}, &txWallets{tx}); err != nil {
		return err
	}
	tx.commit()
	return nil
}

// read repos ligados al "pool": ven solo lo confirmado.
func (s *memStore) orderRepo() repository.PurchaseOrderRepository   { return &txOrders{s.begin()} }
func (s *memStore) batchRepo() repository.InventoryBatchRepository  { return &txBatches{s.begin()} }
func (s *memStore) walletRepo() repository.SupplierWalletRepository { return &txWallets{s.begin()} }

func (s *memStore) committedOrder(id string) *entity.PurchaseOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders[id].Clone()
}

func (s *memStore) committedBatches() []entity.InventoryBatch {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.InventoryBatch(nil), s.batches...)
}

func (s *memStore) committedNotes() []entity.WalletNote {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.WalletNote(nil), s.notes...)
}

func (s *memStore) committedWallet(id string) entity.SupplierWallet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wallets[id]
}

func (s *memStore) committedEvents(orderID string) []entity.StatusEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.StatusEvent
	for _, e := range s.events {
		if e.OrderID == orderID {
			out = append(out, e)
		}
	}
	return out
}

type memTx struct {
	s       *memStore
	orders  map[string]*entity.PurchaseOrder
	created map[string]bool
	events  []entity.StatusEvent
	seq     map[string]int
	batches []entity.InventoryBatch
	wallets map[string]entity.SupplierWallet
	notes   []entity.WalletNote
	held    map[string]*sync.Mutex
}

func (s *memStore) begin() *memTx {
	return &memTx{
		s:       s,
		orders:  map[string]*entity.PurchaseOrder{},
		created: map[string]bool{},
		seq:     map[string]int{},
		wallets: map[string]entity.SupplierWallet{},
		held:    map[string]*sync.Mutex{},
	}
}

func (tx *memTx) lock(key string) {
	if _, ok := tx.held[key]; ok {
		return
	}
	l := tx.s.rowLock(key)
	l.Lock()
	tx.held[key] = l
}

func (tx *memTx) release() {
	for _, l := range tx.held {
		l.Unlock()
	}
	tx.held = map[string]*sync.Mutex{}
}

func (tx *memTx) commit() {
	s := tx.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, o := range tx.orders {
		s.orders[id] = o
	}
	s.events = append(s.events, tx.events...)
	for k, n := range tx.seq {
		s.seq[k] += n
	}
	s.batches = append(s.batches, tx.batches...)
	for id, w := range tx.wallets {
		s.wallets[id] = w
	}
	s.notes = append(s.notes, tx.notes...)
}

type txOrders struct{ tx *memTx }

func (r *txOrders) Create(_ context.Context, order *entity.PurchaseOrder) error {
	r.tx.orders[order.ID] = order.Clone()
	r.tx.created[order.ID] = true
	return nil
}

func (r *txOrders) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	if o, ok := r.tx.orders[id]; ok {
		return o.Clone(), nil
	}
	s := r.tx.s
	if s.barrier != nil {
		s.barrier.arrive()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders[id].Clone(), nil
}

func (r *txOrders) Update(_ context.Context, order *entity.PurchaseOrder, expectedVersion int) error {
	r.tx.lock("order:" + order.ID)
	s := r.tx.s
	s.mu.Lock()
	current, ok := s.orders[order.ID]
	s.mu.Unlock()
	if !ok || current.Version != expectedVersion {
		return domain.ErrConcurrentModification
	}
	order.Version = expectedVersion + 1
	r.tx.orders[order.ID] = order.Clone()
	return nil
}

func (r *txOrders) AppendStatusEvent(_ context.Context, event entity.StatusEvent) error {
	r.tx.events = append(r.tx.events, event)
	return nil
}

func (r *txOrders) ListStatusEvents(_ context.Context, orderID string) ([]entity.StatusEvent, error) {
	out := r.tx.s.committedEvents(orderID)
	for _, e := range r.tx.events {
		if e.OrderID == orderID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *txOrders) NextSequence(_ context.Context, companyID, period string) (int, error) {
	key := companyID + "/" + period
	r.tx.lock("seq:" + key)
	s := r.tx.s
	s.mu.Lock()
	base := s.seq[key]
	s.mu.Unlock()
	r.tx.seq[key]++
	return base + r.tx.seq[key], nil
}

type txBatches struct{ tx *memTx }

func (r *txBatches) Append(_ context.Context, batch *entity.InventoryBatch) error {
	r.tx.batches = append(r.tx.batches, *batch)
	return nil
}

func (r *txBatches) ListByProduct(_ context.Context, companyID, productID string) ([]entity.InventoryBatch, error) {
	var out []entity.InventoryBatch
	for _, b := range r.tx.s.committedBatches() {
		if b.CompanyID == companyID && b.ProductID == productID {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *txBatches) ListByOrder(_ context.Context, orderID string) ([]entity.InventoryBatch, error) {
	var out []entity.InventoryBatch
	for _, b := range r.tx.s.committedBatches() {
		if b.OrderID == orderID {
			out = append(out, b)
		}
	}
	return out, nil
}

type txWallets struct{ tx *memTx }

func (r *txWallets) Get(_ context.Context, supplierID string) (*entity.SupplierWallet, error) {
	if w, ok := r.tx.wallets[supplierID]; ok {
		return &w, nil
	}
	s := r.tx.s
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.wallets[supplierID]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r *txWallets) GetForUpdate(ctx context.Context, supplierID string) (*entity.SupplierWallet, error) {
	r.tx.lock("wallet:" + supplierID)
	return r.Get(ctx, supplierID)
}

func (r *txWallets) Save(_ context.Context, w *entity.SupplierWallet) error {
	r.tx.wallets[w.SupplierID] = *w
	return nil
}

func (r *txWallets) AppendNote(_ context.Context, note *entity.WalletNote) error {
	r.tx.notes = append(r.tx.notes, *note)
	return nil
}

func (r *txWallets) ListNotes(_ context.Context, supplierID string, limit int) ([]entity.WalletNote, error) {
	var out []entity.WalletNote
	for _, n := range r.tx.s.committedNotes() {
		if n.SupplierID == supplierID {
			out = append(out, n)
		}
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo y caché
// ──────────────────────────────────────────────────────────────────────────────

type staticCatalog map[string]bool

func (c staticCatalog) Exists(_ context.Context, companyID, productID string) (bool, error) {
	return c[companyID+"/"+productID], nil
}

type cacheMock struct{ mock.Mock }

func (m *cacheMock) Get(ctx context.Context, orderID string) (*entity.PurchaseOrder, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(*entity.PurchaseOrder)
	return o, args.Error(1)
}

func (m *cacheMock) Set(ctx context.Context, order *entity.PurchaseOrder) error {
	return m.Called(ctx, order).Error(0)
}

func (m *cacheMock) Delete(ctx context.Context, orderID string) error {
	return m.Called(ctx, orderID).Error(0)
}

// versionedCache caché en memoria con la misma regla que la de Redis: una versión anterior
// no reemplaza a la guardada.
type versionedCache struct {
	mu     sync.Mutex
	orders map[string]*entity.PurchaseOrder
}

func newVersionedCache() *versionedCache {
	return &versionedCache{orders: map[string]*entity.PurchaseOrder{}}
}

func (c *versionedCache) Get(_ context.Context, orderID string) (*entity.PurchaseOrder, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	o, ok := c.orders[orderID]
	if !ok {
		return nil, procurement.ErrCacheMiss
	}
	return o.Clone(), nil
}

func (c *versionedCache) Set(_ context.Context, order *entity.PurchaseOrder) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cur, ok := c.orders[order.ID]; ok && cur.Version > order.Version {
		return nil
	}
	c.orders[order.ID] = order.Clone()
	return nil
}

func (c *versionedCache) Delete(_ context.Context, orderID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.orders, orderID)
	return nil
}

// interleavedOrderRepo ejecuta afterRead una sola vez, justo después de la primera lectura
// sin transacción, para intercalar un commit entre la lectura y el llenado de la caché.
type interleavedOrderRepo struct {
	repository.PurchaseOrderRepository
	once      sync.Once
	afterRead func()
}

func (r *interleavedOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	o, err := r.PurchaseOrderRepository.GetByID(ctx, id)
	if r.afterRead != nil {
		r.once.Do(r.afterRead)
	}
	return o, err
}
