package product_models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	t.Run("AllReturnsCopy", func(t *testing.T) {
		products := All()
		require.Len(t, products, 6)

		products[0].Price = 0
		fresh, err := GetByID(products[0].ID)
		require.NoError(t, err)
		assert.NotZero(t, fresh.Price, "mutating the returned slice must not touch the catalog")
	})

	t.Run("GetByID", func(t *testing.T) {
		p, err := GetByID(2)
		require.NoError(t, err)
		assert.Equal(t, "Weed Control Plus", p.Name)
		assert.InDelta(t, 45.99, p.Price, 0.001)
	})

	t.Run("UnknownID", func(t *testing.T) {
		_, err := GetByID(999)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}
