package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sutradhar/internal/repos"
)

func cartFixture(t *testing.T) (*CartService, *repos.ProductRepo) {
	t.Helper()
	db := memdb(t)
	seedUser(t, db, "u-buyer", "buyer")
	seedUser(t, db, "u-other", "buyer")
	seedUser(t, db, "u-weaver", "seller")
	seedSeller(t, db, "sel-a", "u-weaver", "Kanchi Weaves")
	seedProduct(t, db, "p-saree", "sel-a", 4500, true)
	seedProduct(t, db, "p-stole", "sel-a", 850, true)
	seedProduct(t, db, "p-draft", "sel-a", 100, false)
	prods := repos.NewProductRepo(db)
	return NewCartService(repos.NewCartRepo(db), prods), prods
}

func TestCartTotalsIdentity(t *testing.T) {
	cart, _ := cartFixture(t)
	require.NoError(t, cart.Add("u-buyer", "p-saree", 1))
	require.NoError(t, cart.Add("u-buyer", "p-stole", 2))

	cv, err := cart.View("u-buyer")
	require.NoError(t, err)
	require.Len(t, cv.Lines, 2)
	assert.Equal(t, 3, cv.ItemCount)

	var want float64
	for _, l := range cv.Lines {
		want += l.PriceAtAdd * float64(l.Quantity)
	}
	assert.InDelta(t, want, cv.TotalAmount, 0.001)
	assert.InDelta(t, 6200.0, cv.TotalAmount, 0.001)
}

func TestCartAddFreezesPrice(t *testing.T) {
	cart, prods := cartFixture(t)
	require.NoError(t, cart.Add("u-buyer", "p-stole", 1))

	// A later price change must not touch lines already in the cart.
	p, err := prods.Get("p-stole")
	require.NoError(t, err)
	p.Product.Price = 999
	require.NoError(t, prods.Update(&p.Product))

	require.NoError(t, cart.Add("u-buyer", "p-stole", 2))
	cv, err := cart.View("u-buyer")
	require.NoError(t, err)
	require.Len(t, cv.Lines, 1)
	assert.Equal(t, 3, cv.Lines[0].Quantity)
	assert.InDelta(t, 850.0, cv.Lines[0].PriceAtAdd, 0.001)
}

func TestCartUpdateQuantityZeroRemoves(t *testing.T) {
	cart, _ := cartFixture(t)
	require.NoError(t, cart.Add("u-buyer", "p-saree", 2))
	cv, _ := cart.View("u-buyer")
	require.Len(t, cv.Lines, 1)

	require.NoError(t, cart.UpdateQuantity("u-buyer", cv.Lines[0].ID, 0))
	cv, err := cart.View("u-buyer")
	require.NoError(t, err)
	assert.Empty(t, cv.Lines)
}

func TestCartLineOwnership(t *testing.T) {
	cart, _ := cartFixture(t)
	require.NoError(t, cart.Add("u-buyer", "p-saree", 1))
	cv, _ := cart.View("u-buyer")
	require.Len(t, cv.Lines, 1)

	// Another user touching the line id is a silent no-op.
	require.NoError(t, cart.Remove("u-other", cv.Lines[0].ID))
	require.NoError(t, cart.UpdateQuantity("u-other", cv.Lines[0].ID, 9))
	cv, _ = cart.View("u-buyer")
	require.Len(t, cv.Lines, 1)
	assert.Equal(t, 1, cv.Lines[0].Quantity)
}

func TestCartRejectsUnpublished(t *testing.T) {
	cart, _ := cartFixture(t)
	assert.Error(t, cart.Add("u-buyer", "p-draft", 1))
}

func TestCartViewWithoutUser(t *testing.T) {
	cart, _ := cartFixture(t)
	cv, err := cart.View("")
	require.NoError(t, err)
	assert.Empty(t, cv.Lines)
	assert.Zero(t, cv.TotalAmount)
	assert.Zero(t, cv.ItemCount)
}
