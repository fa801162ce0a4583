package model

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProduct_SellingPrice(t *testing.T) {
	tests := []struct {
		name            string
		price           float64
		discountPercent int
		want            float64
	}{
		{"No discount", 1200.00, 0, 1200.00},
		{"Twenty percent", 1200.00, 20, 960.00},
		{"Full discount", 1200.00, 100, 0.00},
		{"Rounds to 2 decimals", 999.99, 33, 669.99},
		{"Small price", 0.99, 50, 0.50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{Price: tt.price, DiscountPercent: tt.discountPercent}
			assert.InDelta(t, tt.want, p.SellingPrice(), 0.001)
		})
	}
}

func TestProduct_SellingPrice_WholeDiscountRange(t *testing.T) {
	// selling price must stay within [0, price] for every legal discount
	p := Product{Price: 1499.50}
	for d := 0; d <= 100; d++ {
		p.DiscountPercent = d
		got := p.SellingPrice()
		assert.GreaterOrEqual(t, got, 0.0, fmt.Sprintf("discount %d", d))
		assert.LessOrEqual(t, got, p.Price, fmt.Sprintf("discount %d", d))
	}
}

func TestProductVariant_InStock(t *testing.T) {
	assert.False(t, ProductVariant{Stock: 0}.InStock())
	assert.True(t, ProductVariant{Stock: 5}.InStock())
}

func TestValidGender(t *testing.T) {
	assert.True(t, ValidGender(GenderMen))
	assert.True(t, ValidGender(GenderKids))
	assert.False(t, ValidGender(Gender("X")))
	assert.False(t, ValidGender(Gender("")))
}

func TestValidSize(t *testing.T) {
	assert.True(t, ValidSize(SizeM))
	assert.True(t, ValidSize(Size32))
	assert.True(t, ValidSize(SizeFree))
	assert.False(t, ValidSize(VariantSize("XXXL")))
}
