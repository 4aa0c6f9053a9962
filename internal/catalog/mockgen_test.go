package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GenerateMock(t *testing.T) {
	products, categories := GenerateMock(1)

	require.Len(t, categories, 25)
	require.NotEmpty(t, products)

	seen := make(map[int64]bool, len(products))
	for i := range products {
		p := &products[i]
		assert.Positive(t, p.Stock, "generated catalog never contains out-of-stock products")
		assert.False(t, seen[p.ID], "product IDs are unique")
		seen[p.ID] = true
		assert.GreaterOrEqual(t, p.Rating, 0.0)
		assert.LessOrEqual(t, p.Rating, 5.0)
		assert.NotEmpty(t, p.Images)
		assert.Equal(t, p.Images[0], p.Image)
		if p.DiscountPrice != nil {
			assert.Less(t, *p.DiscountPrice, p.Price)
		}
	}
}

func Test_GenerateMock_Deterministic(t *testing.T) {
	firstProducts, firstCategories := GenerateMock(42)
	secondProducts, secondCategories := GenerateMock(42)

	assert.Equal(t, firstProducts, secondProducts)
	assert.Equal(t, firstCategories, secondCategories)

	otherProducts, _ := GenerateMock(7)
	assert.NotEqual(t, firstProducts, otherProducts)
}
