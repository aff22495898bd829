package parser

import "regexp"

// Summary aggregates a parsed purchase for reporting.
type Summary struct {
	TotalItems float64 `json:"totalItems"`
	Portions   float64 `json:"porciones"`
	Wholes     float64 `json:"tortas"`
}

// Generic unit patterns: a bare quantity followed by a unit keyword, not tied
// to any catalog item ("3 porciones", "2 tortas", "4x").
var (
	genericPortionRe = regexp.MustCompile(quantityPattern + `\s*(?:x|porciones?|porcion|porc)\b`)
	genericWholeRe   = regexp.MustCompile(quantityPattern + `\s*(?:x|tortas?|torta)\b`)
)

// DetectGenericUnits scans a raw message for quantity+unit-keyword occurrences
// with no product named, summing portion and whole-cake counts independently.
// Used as a fallback when item-level detection produced a zero figure.
func DetectGenericUnits(message string) (portions, wholes float64) {
	normalized := normalizeMessage(message)
	if normalized == "" {
		return 0, 0
	}
	return sumMatches(genericPortionRe, normalized), sumMatches(genericWholeRe, normalized)
}

func sumMatches(re *regexp.Regexp, text string) float64 {
	var total float64
	for _, match := range re.FindAllStringSubmatch(text, -1) {
		if qty := parseQuantity(match[1]); qty > 0 {
			total += qty
		}
	}
	return total
}

// Summarize computes the purchase totals for a list of line items. An explicit
// category on a line item always wins over the category inferred from the
// catalog name. Portion or whole figures that come out zero are backfilled
// from the generic unit fallback against the raw message.
func Summarize(items []LineItem, catalog []CatalogItem, rawMessage string) Summary {
	byID := make(map[string]CatalogItem, len(catalog))
	for _, item := range catalog {
		byID[item.ID] = item
	}

	var summary Summary
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		summary.TotalItems += item.Quantity

		category := item.Category
		if category == "" {
			if product, ok := byID[item.ProductID]; ok {
				category = InferCategory(product.Name)
			}
		}
		switch category {
		case CategoryWhole:
			summary.Wholes += item.Quantity
		case CategoryPortion:
			summary.Portions += item.Quantity
		}
	}

	fallbackPortions, fallbackWholes := DetectGenericUnits(rawMessage)
	if summary.Portions == 0 {
		summary.Portions = fallbackPortions
	}
	if summary.Wholes == 0 {
		summary.Wholes = fallbackWholes
	}
	return summary
}
