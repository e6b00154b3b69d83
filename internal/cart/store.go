package cart

import (
	"encoding/json"
	"sync"
	"time"

	"atelie_back_end/internal/models"
	"atelie_back_end/internal/storage"
)

// StorageKey é a chave fixa do carrinho no armazenamento local.
const StorageKey = "atelie-store-cart"

// addedSignalTTL é a janela do sinal "acabou de adicionar" (só cosmético).
const addedSignalTTL = time.Second

// Store é o dono exclusivo do estado do carrinho. Todas as leituras e
// escritas passam pelas operações daqui, nada de mutação ambiente.
type Store struct {
	mu      sync.Mutex
	items   []models.CartItem
	backend storage.Store

	// Guardados para depois vivem só em memória; ao contrário do
	// carrinho, a lista não sobrevive a reinícios.
	saved []models.CartItem

	addedGen  int
	justAdded bool
	signalTTL time.Duration
}

// NewStore reidrata o carrinho do armazenamento local. Ausência ou JSON
// corrompido viram carrinho vazio, nunca erro.
func NewStore(backend storage.Store) *Store {
	s := &Store{backend: backend, signalTTL: addedSignalTTL}

	if data, ok := backend.Get(StorageKey); ok {
		var items []models.CartItem
		if err := json.Unmarshal(data, &items); err == nil {
			s.items = items
		}
	}
	return s
}

// Add incrementa a quantidade se o produto já está no carrinho, senão
// acrescenta uma linha nova com quantidade 1. Sempre funciona.
func (s *Store) Add(product models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addLocked(product)
}

func (s *Store) addLocked(product models.Product) {
	found := false
	for i := range s.items {
		if s.items[i].Product.ID == product.ID {
			s.items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		s.items = append(s.items, models.CartItem{Product: product, Quantity: 1})
	}

	s.persistLocked()
	s.triggerAddedLocked()
}

// Remove apaga a linha do produto; id inexistente é no-op, nunca erro.
func (s *Store) Remove(productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Product.ID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persistLocked()
			return
		}
	}
}

// Decrease diminui a quantidade em 1; com quantidade 1 a linha sai do
// carrinho. Operação de primeira classe: não redispara o sinal de adição
// como faria um remove+add.
func (s *Store) Decrease(productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Product.ID == productID {
			if s.items[i].Quantity > 1 {
				s.items[i].Quantity--
			} else {
				s.items = append(s.items[:i], s.items[i+1:]...)
			}
			s.persistLocked()
			return
		}
	}
}

// SaveForLater tira a linha do carrinho e guarda para depois, com a
// quantidade que tinha. Os guardados ficam fora dos totais; id
// inexistente é no-op.
func (s *Store) SaveForLater(productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Product.ID == productID {
			s.saved = append(s.saved, s.items[i])
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persistLocked()
			return
		}
	}
}

// MoveToCart devolve um produto guardado ao carrinho como uma adição
// normal (quantidade 1, mesclando com a linha existente) e descarta a
// entrada guardada.
func (s *Store) MoveToCart(productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var product models.Product
	found := false
	kept := make([]models.CartItem, 0, len(s.saved))
	for _, item := range s.saved {
		if item.Product.ID == productID {
			product = item.Product
			found = true
			continue
		}
		kept = append(kept, item)
	}
	if !found {
		return
	}

	s.saved = kept
	s.addLocked(product)
}

// RemoveSaved descarta o produto da lista de guardados.
func (s *Store) RemoveSaved(productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.saved[:0]
	for _, item := range s.saved {
		if item.Product.ID != productID {
			kept = append(kept, item)
		}
	}
	s.saved = kept
}

// SavedItems devolve uma cópia da lista de guardados.
func (s *Store) SavedItems() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.CartItem, len(s.saved))
	copy(out, s.saved)
	return out
}

// Clear esvazia o carrinho e apaga a chave do armazenamento; os
// guardados para depois ficam.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	_ = s.backend.Delete(StorageKey)
}

// Items devolve uma cópia das linhas; ordem só importa para exibição.
func (s *Store) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// TotalItems soma as quantidades de todas as linhas.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// JustAdded informa se o sinal transitório de "acabou de adicionar" está
// ativo. Ele se apaga sozinho depois de ~1s.
func (s *Store) JustAdded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.justAdded
}

func (s *Store) triggerAddedLocked() {
	s.addedGen++
	gen := s.addedGen
	s.justAdded = true

	time.AfterFunc(s.signalTTL, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		// Um Add mais recente mantém o sinal aceso pela janela dele.
		if s.addedGen == gen {
			s.justAdded = false
		}
	})
}

// persistLocked serializa o carrinho inteiro a cada mutação.
func (s *Store) persistLocked() {
	data, err := json.Marshal(s.items)
	if err != nil {
		return
	}
	_ = s.backend.Set(StorageKey, data)
}
