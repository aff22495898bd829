package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BauthyBa/bautigatica/internal/models"
)

func TestFormatARS(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{0, "$0"},
		{950, "$950"},
		{1200, "$1.200"},
		{25500, "$25.500"},
		{1250000, "$1.250.000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatARS(tt.amount))
	}
}

func TestComposeItemizesCart(t *testing.T) {
	lines := []Line{
		{Product: models.Product{Name: "Torta de chocolate", Price: 1200}, Quantity: 2},
		{Product: models.Product{Name: "Brownie", Price: 950}, Quantity: 1},
	}

	order := Compose(lines, "3515306105")

	assert.Equal(t, 3350.0, order.Total)
	assert.Contains(t, order.Message, "Hola! Quisiera hacer la siguiente compra:")
	assert.Contains(t, order.Message, "• Torta de chocolate x2 ($1.200 c/u) = $2.400")
	assert.Contains(t, order.Message, "• Brownie x1 ($950 c/u) = $950")
	assert.Contains(t, order.Message, "Total: $3.350")
}

func TestComposeURLEncoding(t *testing.T) {
	lines := []Line{
		{Product: models.Product{Name: "Budín de limón", Price: 800}, Quantity: 1},
	}

	order := Compose(lines, "3515306105")

	assert.True(t, len(order.WhatsAppURL) > 0)
	assert.Contains(t, order.WhatsAppURL, "https://wa.me/3515306105?text=")
	// Spaces must be percent-encoded, not "+", so WhatsApp renders them.
	assert.NotContains(t, order.WhatsAppURL, "+")
	assert.Contains(t, order.WhatsAppURL, "%20")
}

func TestComposeSkipsNonPositiveQuantities(t *testing.T) {
	lines := []Line{
		{Product: models.Product{Name: "Brownie", Price: 950}, Quantity: 0},
		{Product: models.Product{Name: "Flan", Price: 700}, Quantity: -2},
		{Product: models.Product{Name: "Alfajor", Price: 500}, Quantity: 3},
	}

	order := Compose(lines, "3515306105")

	assert.Equal(t, 1500.0, order.Total)
	assert.NotContains(t, order.Message, "Brownie")
	assert.NotContains(t, order.Message, "Flan")
}

func TestComposeEmptyCart(t *testing.T) {
	order := Compose(nil, "3515306105")

	assert.Empty(t, order.Message)
	assert.Empty(t, order.WhatsAppURL)
	assert.Zero(t, order.Total)
}
