package cart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelie_back_end/internal/models"
	"atelie_back_end/internal/storage"
)

var (
	bandeja = models.Product{ID: 1, Name: "Bandeja de Resina Oceano", Price: 89.90, Category: models.CategoryResina}
	tabua   = models.Product{ID: 4, Name: "Tábua de Madeira Nobre", Price: 119.90, Category: models.CategoryMadeira}
)

func newTestStore(t *testing.T) (*Store, *storage.MemoryStore) {
	t.Helper()
	backend := storage.NewMemoryStore()
	return NewStore(backend), backend
}

func TestAdd_SameProductTwiceMergesIntoOneLine(t *testing.T) {
	s, _ := newTestStore(t)

	s.Add(bandeja)
	s.Add(bandeja)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 2, s.TotalItems())
}

func TestAdd_DistinctProductsGetOwnLines(t *testing.T) {
	s, _ := newTestStore(t)

	s.Add(bandeja)
	s.Add(tabua)

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 2, s.TotalItems())
}

func TestRemove_MissingIDIsNoOp(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add(bandeja)

	before := s.Items()
	s.Remove(999)

	assert.Equal(t, before, s.Items())
}

func TestDecrease_ReducesQuantityWithoutAddedSignal(t *testing.T) {
	s, _ := newTestStore(t)
	s.signalTTL = 50 * time.Millisecond

	s.Add(bandeja)
	s.Add(bandeja)
	time.Sleep(100 * time.Millisecond) // deixa o sinal do Add apagar

	s.Decrease(bandeja.ID)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
	assert.False(t, s.JustAdded())
}

func TestDecrease_AtQuantityOneRemovesLine(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add(bandeja)

	s.Decrease(bandeja.ID)

	assert.Zero(t, s.Len())
}

func TestClear_EmptiesCart(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add(bandeja)
	s.Add(tabua)

	s.Clear()

	assert.Zero(t, s.Len())
	assert.Zero(t, s.TotalItems())
}

func TestClear_DeletesStoredKeyButKeepsSaved(t *testing.T) {
	s, backend := newTestStore(t)
	s.Add(bandeja)
	s.Add(tabua)
	s.SaveForLater(tabua.ID)

	s.Clear()

	_, ok := backend.Get(StorageKey)
	assert.False(t, ok, "chave deve sumir do armazenamento")
	assert.Len(t, s.SavedItems(), 1)
}

func TestSaveForLater_MovesLineWithQuantity(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add(bandeja)
	s.Add(bandeja)
	s.Add(tabua)

	s.SaveForLater(bandeja.ID)

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 1, s.TotalItems()) // guardados ficam fora dos totais

	saved := s.SavedItems()
	require.Len(t, saved, 1)
	assert.Equal(t, bandeja.ID, saved[0].Product.ID)
	assert.Equal(t, 2, saved[0].Quantity)
}

func TestSaveForLater_MissingIDIsNoOp(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add(bandeja)

	s.SaveForLater(999)

	assert.Equal(t, 1, s.Len())
	assert.Empty(t, s.SavedItems())
}

func TestMoveToCart_MergesLikeRegularAdd(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add(bandeja)
	s.Add(bandeja)
	s.SaveForLater(bandeja.ID)
	s.Add(bandeja) // nova linha enquanto a antiga está guardada

	s.MoveToCart(bandeja.ID)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity) // volta como adição de 1, mesclada
	assert.Empty(t, s.SavedItems())
	assert.True(t, s.JustAdded())
}

func TestMoveToCart_MissingIDIsNoOp(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add(bandeja)

	s.MoveToCart(tabua.ID)

	assert.Equal(t, 1, s.Len())
}

func TestRemoveSaved_DiscardsEntry(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add(bandeja)
	s.Add(tabua)
	s.SaveForLater(bandeja.ID)
	s.SaveForLater(tabua.ID)

	s.RemoveSaved(bandeja.ID)

	saved := s.SavedItems()
	require.Len(t, saved, 1)
	assert.Equal(t, tabua.ID, saved[0].Product.ID)
}

func TestSavedItems_DoNotSurviveRestart(t *testing.T) {
	backend := storage.NewMemoryStore()
	first := NewStore(backend)
	first.Add(bandeja)
	first.Add(tabua)
	first.SaveForLater(tabua.ID)

	second := NewStore(backend)

	assert.Equal(t, 1, second.Len()) // só o carrinho é persistido
	assert.Empty(t, second.SavedItems())
}

func TestJustAdded_SignalAutoClears(t *testing.T) {
	s, _ := newTestStore(t)
	s.signalTTL = 30 * time.Millisecond

	s.Add(bandeja)
	assert.True(t, s.JustAdded())

	assert.Eventually(t, func() bool { return !s.JustAdded() },
		500*time.Millisecond, 10*time.Millisecond)
}

func TestNewStore_RehydratesFromStorage(t *testing.T) {
	backend := storage.NewMemoryStore()

	first := NewStore(backend)
	first.Add(bandeja)
	first.Add(bandeja)
	first.Add(tabua)

	second := NewStore(backend)
	assert.Equal(t, 3, second.TotalItems())
	assert.Equal(t, 2, second.Len())
}

func TestNewStore_CorruptStorageFallsBackToEmpty(t *testing.T) {
	backend := storage.NewMemoryStore()
	require.NoError(t, backend.Set(StorageKey, []byte("{isso não é json válido")))

	s := NewStore(backend)

	assert.Zero(t, s.Len())
}

func TestMutations_PersistAfterEveryChange(t *testing.T) {
	backend := storage.NewMemoryStore()
	s := NewStore(backend)

	s.Add(bandeja)
	_, ok := backend.Get(StorageKey)
	assert.True(t, ok)

	s.Remove(bandeja.ID)
	assert.Zero(t, NewStore(backend).Len())
}
