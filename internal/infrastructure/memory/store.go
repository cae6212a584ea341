// Package memory implementa los puertos de persistencia en memoria (STORAGE_DRIVER=memory).
// Se usa para desarrollo local y en los tests de casos de uso y handlers.
package memory

import (
	"sync"

	"github.com/jhoicas/lfc-estoque/internal/domain/entity"
)

// state datos de todas las colecciones. Los slices *Order guardan el orden de inserción.
type state struct {
	products     map[string]entity.Product
	productOrder []string
	shelves      map[string]entity.Shelf
	shelfOrder   []string
	links        map[string]entity.StockLink
	linkOrder    []string
	users        map[string]entity.User
	movements    []entity.StockMovement
}

func newState() *state {
	return &state{
		products: make(map[string]entity.Product),
		shelves:  make(map[string]entity.Shelf),
		links:    make(map[string]entity.StockLink),
		users:    make(map[string]entity.User),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.shelves {
		c.shelves[k] = v
	}
	for k, v := range s.links {
		c.links[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	c.productOrder = append([]string(nil), s.productOrder...)
	c.shelfOrder = append([]string(nil), s.shelfOrder...)
	c.linkOrder = append([]string(nil), s.linkOrder...)
	c.movements = append([]entity.StockMovement(nil), s.movements...)
	return c
}

// Store contenedor compartido por los repositorios en memoria. Un único mutex serializa
// todas las operaciones; TxRunner lo mantiene tomado durante toda la transacción.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// scope ejecuta fn sobre el estado; inTx indica que el mutex ya lo tiene TxRunner.
func (s *Store) scope(inTx bool, fn func(st *state) error) error {
	if !inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(s.st)
}

func removeID(order []string, id string) []string {
	for i, v := range order {
		if v == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}
