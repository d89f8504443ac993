// Package memory implementa los repositorios sobre mapas en memoria, con snapshot opcional a disco.
//
// Un único sync.RWMutex protege el estado. Run toma el lock de escritura y ejecuta sobre una copia
// del estado: si fn retorna nil y el snapshot se guarda, la copia reemplaza al estado; si no se descarta (Rollback).
// Dentro de Run solo deben usarse los repositorios recibidos en TxRepos.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// state colecciones de la tienda.
type state struct {
	Products       map[string]*entity.Product       `msgpack:"products"`
	Customers      map[string]*entity.Customer      `msgpack:"customers"`
	Bills          map[string]*entity.Bill          `msgpack:"bills"`
	Movements      []*entity.StockMovement          `msgpack:"movements"`
	PurchaseOrders map[string]*entity.PurchaseOrder `msgpack:"purchase_orders"`
	Activities     []*entity.Activity               `msgpack:"activities"`
}

func newState() *state {
	return &state{
		Products:       map[string]*entity.Product{},
		Customers:      map[string]*entity.Customer{},
		Bills:          map[string]*entity.Bill{},
		PurchaseOrders: map[string]*entity.PurchaseOrder{},
	}
}

// clone copia el estado. Movimientos y actividades son solo-anexar, se comparten los punteros.
func (s *state) clone() *state {
	c := &state{
		Products:       make(map[string]*entity.Product, len(s.Products)),
		Customers:      make(map[string]*entity.Customer, len(s.Customers)),
		Bills:          make(map[string]*entity.Bill, len(s.Bills)),
		PurchaseOrders: make(map[string]*entity.PurchaseOrder, len(s.PurchaseOrders)),
		Movements:      append([]*entity.StockMovement(nil), s.Movements...),
		Activities:     append([]*entity.Activity(nil), s.Activities...),
	}
	for k, v := range s.Products {
		p := *v
		c.Products[k] = &p
	}
	for k, v := range s.Customers {
		cu := *v
		c.Customers[k] = &cu
	}
	for k, v := range s.Bills {
		c.Bills[k] = v
	}
	for k, v := range s.PurchaseOrders {
		po := *v
		c.PurchaseOrders[k] = &po
	}
	return c
}

// fill inicializa mapas nulos (snapshot vacío o parcial).
func (s *state) fill() {
	if s.Products == nil {
		s.Products = map[string]*entity.Product{}
	}
	if s.Customers == nil {
		s.Customers = map[string]*entity.Customer{}
	}
	if s.Bills == nil {
		s.Bills = map[string]*entity.Bill{}
	}
	if s.PurchaseOrders == nil {
		s.PurchaseOrders = map[string]*entity.PurchaseOrder{}
	}
}

// Store estado en memoria compartido por todos los repositorios.
type Store struct {
	mu           sync.RWMutex
	st           *state
	snapshotPath string
}

// NewStore crea el store. Si snapshotPath no está vacío carga el snapshot existente
// y guarda uno nuevo tras cada escritura confirmada.
func NewStore(snapshotPath string) (*Store, error) {
	s := &Store{st: newState(), snapshotPath: snapshotPath}
	if snapshotPath == "" {
		return s, nil
	}
	st, err := loadSnapshot(snapshotPath)
	if err != nil {
		return nil, err
	}
	if st != nil {
		s.st = st
	}
	return s, nil
}

// Repos repositorios fuera de transacción; cada operación toma su propio lock.
func (s *Store) Repos() repository.TxRepos {
	return reposFor(scope{store: s})
}

// Run implementa inventory.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(tx repository.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := s.st.clone()
	if err := fn(reposFor(scope{store: s, tx: tx})); err != nil {
		return err
	}
	return s.commitLocked(tx)
}

// commitLocked guarda el snapshot de next y solo entonces lo publica; requiere el lock de escritura.
func (s *Store) commitLocked(next *state) error {
	if s.snapshotPath != "" {
		if err := writeSnapshot(s.snapshotPath, next); err != nil {
			return err
		}
	}
	s.st = next
	return nil
}

func reposFor(sc scope) repository.TxRepos {
	return repository.TxRepos{
		Products:       &ProductRepository{sc: sc},
		Customers:      &CustomerRepository{sc: sc},
		Bills:          &BillRepository{sc: sc},
		Movements:      &StockMovementRepository{sc: sc},
		PurchaseOrders: &PurchaseOrderRepository{sc: sc},
		Activities:     &ActivityRepository{sc: sc},
	}
}

// scope decide sobre qué estado opera un repositorio: la copia de una tx o el estado del store con lock.
type scope struct {
	store *Store
	tx    *state
}

func (sc scope) read(fn func(st *state) error) error {
	if sc.tx != nil {
		return fn(sc.tx)
	}
	sc.store.mu.RLock()
	defer sc.store.mu.RUnlock()
	return fn(sc.store.st)
}

func (sc scope) write(fn func(st *state) error) error {
	if sc.tx != nil {
		return fn(sc.tx)
	}
	sc.store.mu.Lock()
	defer sc.store.mu.Unlock()
	if sc.store.snapshotPath == "" {
		return fn(sc.store.st)
	}
	next := sc.store.st.clone()
	if err := fn(next); err != nil {
		return err
	}
	return sc.store.commitLocked(next)
}

// paginate aplica limit/offset sobre una lista ya ordenada.
func paginate[T any](list []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return []T{}
	}
	end := len(list)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return list[offset:end]
}

// sortByCreatedDesc ordena más recientes primero.
func sortByCreatedDesc[T any](list []T, createdAt func(T) time.Time) {
	sort.SliceStable(list, func(i, j int) bool { return createdAt(list[i]).After(createdAt(list[j])) })
}
