package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "Torta De Chocolate", "torta de chocolate"},
		{"strips diacritics", "porción de budín", "porcion de budin"},
		{"collapses punctuation", "hola!! quiero: 2 tortas, porfa...", "hola quiero 2 tortas porfa"},
		{"collapses whitespace", "  torta   de \n chocolate  ", "torta de chocolate"},
		{"empty", "", ""},
		{"only punctuation", "?!¡¿--", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Hola! Quisiera 2 Tortas de Chocolate",
		"porción de budín x3",
		"  ya   normalizado  ",
		"1,5 porciones de flan",
	}
	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "normalize should be idempotent for %q", input)
	}
}

func TestParseMessageOrderInvariance(t *testing.T) {
	catalog := []CatalogItem{{ID: "choc", Name: "chocolate"}}

	before := ParseMessage("2 tortas de chocolate", catalog)
	after := ParseMessage("chocolate x2", catalog)

	expected := []LineItem{{ProductID: "choc", Quantity: 2}}
	assert.Equal(t, expected, before)
	assert.Equal(t, expected, after)
}

func TestParseMessageAccumulatesRepeatedMentions(t *testing.T) {
	catalog := []CatalogItem{{ID: "choc", Name: "chocolate"}}

	items := ParseMessage("1 torta de chocolate y 3 tortas de chocolate", catalog)

	require.Len(t, items, 1)
	assert.Equal(t, "choc", items[0].ProductID)
	assert.Equal(t, 4.0, items[0].Quantity)
}

func TestParseMessageAccumulatesAcrossLines(t *testing.T) {
	catalog := []CatalogItem{{ID: "brw", Name: "brownies"}}

	items := ParseMessage("2 brownies\nbrownies x3", catalog)

	require.Len(t, items, 1)
	assert.Equal(t, 5.0, items[0].Quantity)
}

func TestParseMessageNoMatch(t *testing.T) {
	catalog := []CatalogItem{
		{ID: "choc", Name: "torta de chocolate"},
		{ID: "flan", Name: "flan"},
	}

	items := ParseMessage("hola, quiero comprar algo", catalog)
	assert.Empty(t, items)

	portions, wholes := DetectGenericUnits("hola, quiero comprar algo")
	assert.Zero(t, portions)
	assert.Zero(t, wholes)
}

func TestParseMessageEmptyInputs(t *testing.T) {
	catalog := []CatalogItem{{ID: "choc", Name: "chocolate"}}

	assert.Empty(t, ParseMessage("", catalog))
	assert.Empty(t, ParseMessage("2 tortas de chocolate", nil))
	assert.Empty(t, ParseMessage("   !!   ", catalog))
}

func TestParseMessageSkipsUnnameableItems(t *testing.T) {
	catalog := []CatalogItem{
		{ID: "blank", Name: "   "},
		{ID: "punct", Name: "!!!"},
		{ID: "choc", Name: "chocolate"},
	}

	items := ParseMessage("2 chocolate", catalog)

	require.Len(t, items, 1)
	assert.Equal(t, "choc", items[0].ProductID)
}

func TestParseMessageDecimalSeparators(t *testing.T) {
	catalog := []CatalogItem{{ID: "flan", Name: "flan"}}

	withComma := ParseMessage("1,5 porciones de flan", catalog)
	require.Len(t, withComma, 1)
	assert.Equal(t, 1.5, withComma[0].Quantity)

	withDot := ParseMessage("1.5 porciones de flan", catalog)
	require.Len(t, withDot, 1)
	assert.Equal(t, 1.5, withDot[0].Quantity)
}

func TestParseMessageAccentInsensitive(t *testing.T) {
	catalog := []CatalogItem{{ID: "bud", Name: "Budín de Limón"}}

	items := ParseMessage("quisiera 2 budin de limon por favor", catalog)

	require.Len(t, items, 1)
	assert.Equal(t, "bud", items[0].ProductID)
	assert.Equal(t, 2.0, items[0].Quantity)
}

func TestParseMessageMidSentence(t *testing.T) {
	catalog := []CatalogItem{{ID: "alf", Name: "alfajores"}}

	items := ParseMessage("buenas! aparte del pedido anterior sumame 3 alfajores y listo, gracias", catalog)

	require.Len(t, items, 1)
	assert.Equal(t, 3.0, items[0].Quantity)
}

func TestParseMessagePrefersLongestName(t *testing.T) {
	// Overlapping names: the more specific product wins the match.
	catalog := []CatalogItem{
		{ID: "torta", Name: "torta"},
		{ID: "torta-choc", Name: "torta chocolate"},
	}

	items := ParseMessage("2 torta chocolate", catalog)

	require.NotEmpty(t, items)
	assert.Equal(t, "torta-choc", items[0].ProductID)
	assert.Equal(t, 2.0, items[0].Quantity)
}

func TestParseMessageQuantitiesAlwaysPositive(t *testing.T) {
	catalog := []CatalogItem{
		{ID: "choc", Name: "chocolate"},
		{ID: "flan", Name: "flan"},
	}
	messages := []string{
		"0 tortas de chocolate",
		"0 chocolate y 2 flan",
		"chocolate x0",
		"999 tortas de chocolate, flan x0",
	}
	for _, msg := range messages {
		for _, item := range ParseMessage(msg, catalog) {
			assert.Greater(t, item.Quantity, 0.0, "message %q emitted a non-positive quantity", msg)
		}
	}
}

func TestInferCategory(t *testing.T) {
	tests := []struct {
		name     string
		expected ProductCategory
	}{
		{"Torta de chocolate", CategoryWhole},
		{"TORTA oreo", CategoryWhole},
		{"Porción de cheesecake", CategoryPortion},
		{"porciones de flan", CategoryPortion},
		{"Brownie con nuez", CategoryPortion},
		{"Budín de limón", CategoryPortion},
		{"Medialunas x docena", CategoryPortion},
		{"Cookie de avena", CategoryPortion},
		{"Pan de masa madre", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, InferCategory(tt.name))
		})
	}
}

func TestInferCategoryWholeWinsOverPortionHints(t *testing.T) {
	// A name matching both keyword sets classifies as whole cake.
	assert.Equal(t, CategoryWhole, InferCategory("torta brownie"))
	assert.Equal(t, CategoryWhole, InferCategory("torta en porciones"))
}
