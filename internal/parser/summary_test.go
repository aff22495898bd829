package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectGenericUnits(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		portions float64
		wholes   float64
	}{
		{"bare portions", "quiero 3 porciones", 3, 0},
		{"bare wholes", "2 tortas para el sabado", 0, 2},
		{"both units", "3 porciones y 2 tortas", 3, 2},
		{"multiplier counts for both", "dame 4x", 4, 4},
		{"decimal portion", "1,5 porciones porfa", 1.5, 0},
		{"accented keyword", "2 porciónes", 2, 0},
		{"nothing", "hola, quiero comprar algo", 0, 0},
		{"empty", "", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			portions, wholes := DetectGenericUnits(tt.message)
			assert.Equal(t, tt.portions, portions)
			assert.Equal(t, tt.wholes, wholes)
		})
	}
}

func TestSummarizeResolvesCategoriesFromCatalog(t *testing.T) {
	catalog := []CatalogItem{
		{ID: "torta-choc", Name: "Torta de chocolate"},
		{ID: "brownie", Name: "Brownie"},
	}
	items := []LineItem{
		{ProductID: "torta-choc", Quantity: 1},
		{ProductID: "brownie", Quantity: 3},
	}

	summary := Summarize(items, catalog, "1 torta de chocolate y 3 brownies")

	assert.Equal(t, 4.0, summary.TotalItems)
	assert.Equal(t, 3.0, summary.Portions)
	assert.Equal(t, 1.0, summary.Wholes)
}

func TestSummarizeExplicitCategoryWins(t *testing.T) {
	// "brownie" infers as portion, but the caller corrected it to whole.
	catalog := []CatalogItem{{ID: "brownie", Name: "Brownie gigante"}}
	items := []LineItem{{ProductID: "brownie", Quantity: 2, Category: CategoryWhole}}

	summary := Summarize(items, catalog, "2 brownie gigante")

	assert.Equal(t, 2.0, summary.Wholes)
	assert.Equal(t, 0.0, summary.Portions)
}

func TestSummarizeSkipsNonPositiveQuantities(t *testing.T) {
	catalog := []CatalogItem{{ID: "brownie", Name: "Brownie"}}
	items := []LineItem{
		{ProductID: "brownie", Quantity: 0},
		{ProductID: "brownie", Quantity: -1},
		{ProductID: "brownie", Quantity: 2},
	}

	summary := Summarize(items, catalog, "")

	assert.Equal(t, 2.0, summary.TotalItems)
	assert.Equal(t, 2.0, summary.Portions)
}

func TestSummarizeFallbackFillsZeroFigures(t *testing.T) {
	// No catalog item matched "tortas", but the message still mentions two of
	// them: the generic fallback fills the whole-cake figure.
	summary := Summarize(nil, nil, "hola! te encargo 2 tortas para el viernes")

	assert.Equal(t, 0.0, summary.TotalItems)
	assert.Equal(t, 2.0, summary.Wholes)
	assert.Equal(t, 0.0, summary.Portions)
}

func TestSummarizeFallbackDoesNotOverrideItemCounts(t *testing.T) {
	catalog := []CatalogItem{{ID: "torta-choc", Name: "Torta de chocolate"}}
	items := []LineItem{{ProductID: "torta-choc", Quantity: 1}}

	// The message also says "5 tortas" generically, but the item-level whole
	// count is non-zero so the fallback must not replace it.
	summary := Summarize(items, catalog, "1 torta de chocolate y 5 tortas mas")

	assert.Equal(t, 1.0, summary.Wholes)
}

func TestSummarizeEmptyInputs(t *testing.T) {
	summary := Summarize(nil, nil, "")

	assert.Zero(t, summary.TotalItems)
	assert.Zero(t, summary.Portions)
	assert.Zero(t, summary.Wholes)
}
