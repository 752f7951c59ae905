package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrineshop.org/vitrine-web/internal/catalog"
)

var (
	phone = catalog.Product{ID: 1, Title: "Phone", Brand: "Acme", Price: 549, Discount: 12.96, Thumbnail: "p.jpg"}
	mouse = catalog.Product{ID: 2, Title: "Mouse", Brand: "Logi", Price: 29}
)

func TestAddAppendsNewLine(t *testing.T) {
	s := State{}.Add(phone)

	require.Len(t, s, 1)
	assert.Equal(t, 1, s[0].Quantity)
	assert.Equal(t, phone.Title, s[0].Title)
	assert.Equal(t, phone.Price, s[0].Price)
}

func TestAddMergesExistingLine(t *testing.T) {
	s := State{}.Add(phone).Add(mouse).Add(phone)

	require.Len(t, s, 2)
	line, ok := s.Find(phone.ID)
	require.True(t, ok)
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, 3, s.TotalItems())
}

func TestAddDoesNotMutateReceiver(t *testing.T) {
	orig := State{}.Add(phone)
	_ = orig.Add(phone)

	line, _ := orig.Find(phone.ID)
	assert.Equal(t, 1, line.Quantity)
}

func TestSetQuantity(t *testing.T) {
	s := State{}.Add(phone).SetQuantity(phone.ID, 5)

	line, ok := s.Find(phone.ID)
	require.True(t, ok)
	assert.Equal(t, 5, line.Quantity)
}

func TestSetQuantityBelowOneRemoves(t *testing.T) {
	s := State{}.Add(phone).Add(mouse)

	s = s.SetQuantity(phone.ID, 0)
	_, ok := s.Find(phone.ID)
	assert.False(t, ok)
	assert.Len(t, s, 1)

	s = s.SetQuantity(mouse.ID, -3)
	assert.Empty(t, s)
}

func TestRemoveUnknownIDIsNoop(t *testing.T) {
	s := State{}.Add(phone)
	assert.Len(t, s.Remove(99), 1)
}

func TestClear(t *testing.T) {
	s := State{}.Add(phone).Add(mouse).Clear()
	assert.Empty(t, s)
	assert.Zero(t, s.TotalItems())
	assert.Zero(t, s.TotalPrice())
}

func TestUnitPriceAppliesDiscount(t *testing.T) {
	line := LineFromProduct(phone)
	assert.InDelta(t, 549*(1-12.96/100), line.UnitPrice(), 0.0001)

	plain := LineFromProduct(mouse)
	assert.Equal(t, 29.0, plain.UnitPrice())
}

func TestTotals(t *testing.T) {
	s := State{}.Add(phone).Add(phone).Add(mouse)

	assert.Equal(t, 3, s.TotalItems())
	want := 2*549*(1-12.96/100) + 29
	assert.InDelta(t, want, s.TotalPrice(), 0.0001)
}
