// Package memory implementa los puertos de persistencia en memoria, protegidos por un mutex.
// Se usa en desarrollo (STORAGE_DRIVER=memory) y como respaldo de los tests.
package memory

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"github.com/jhoicas/bookkeeping-api/internal/domain/entity"
)

type state struct {
	businesses   map[string]entity.Business
	products     map[string]entity.Product
	contacts     map[string]entity.Contact
	transactions []entity.Transaction
}

func newState() *state {
	return &state{
		businesses: make(map[string]entity.Business),
		products:   make(map[string]entity.Product),
		contacts:   make(map[string]entity.Contact),
	}
}

// clone copia los mapas; las transacciones son inmutables y se comparten.
func (s *state) clone() *state {
	c := &state{
		businesses:   make(map[string]entity.Business, len(s.businesses)),
		products:     make(map[string]entity.Product, len(s.products)),
		contacts:     make(map[string]entity.Contact, len(s.contacts)),
		transactions: make([]entity.Transaction, len(s.transactions), len(s.transactions)+1),
	}
	for k, v := range s.businesses {
		c.businesses[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.contacts {
		c.contacts[k] = v
	}
	copy(c.transactions, s.transactions)
	return c
}

// Store contenedor del estado en memoria.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// scope decide sobre qué estado opera un repositorio: el compartido (con bloqueo)
// o la copia de trabajo de una transacción en curso (el TxRunner ya tiene el bloqueo).
type scope struct {
	store *Store
	tx    *state
}

func (sc scope) acquire() (*state, func()) {
	if sc.tx != nil {
		return sc.tx, func() {}
	}
	sc.store.mu.Lock()
	return sc.store.st, sc.store.mu.Unlock
}

// containsFold "contiene" sin distinguir mayúsculas. Un Caser no se comparte entre goroutines.
func containsFold(s, substr string) bool {
	fold := cases.Fold()
	return strings.Contains(fold.String(s), fold.String(substr))
}
