// Package parser extracts purchase line items from free-text WhatsApp messages.
//
// Customers write orders in casual Spanish ("2 tortas de chocolate y 3 brownies",
// "chocolate x2"), so matching works over a normalized form of the message and
// tolerates both quantity-before-name and name-before-quantity orderings. Every
// function here is pure: no I/O, no state shared between calls.
package parser

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ProductCategory classifies how a product is sold.
type ProductCategory string

const (
	CategoryPortion ProductCategory = "PORTION" // sold by the slice/unit
	CategoryWhole   ProductCategory = "WHOLE"   // sold as a complete cake
)

// CatalogItem is the minimal product view the parser needs.
type CatalogItem struct {
	ID   string
	Name string
}

// LineItem is one (product, quantity) pair detected in a message. Category is
// empty until inferred or set explicitly by the caller.
type LineItem struct {
	ProductID string          `json:"productId"`
	Quantity  float64         `json:"quantity"`
	Category  ProductCategory `json:"category,omitempty"`
}

// Unit/connector words that may sit between a quantity and a product name.
const unitWords = `(?:x|porciones?|porcion|tortas?|torta|u|unidad(?:es)?|porc)`

// Quantity pattern: integer or decimal, with "." or "," as separator.
const quantityPattern = `(\d+(?:[.,]\d*)?)`

var (
	stripMarks   = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	nonAlnumRe   = regexp.MustCompile(`[^a-z0-9\s]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	decimalRe    = regexp.MustCompile(`(\d)[.,](\d)`)
	protectedRe  = regexp.MustCompile("[^a-z0-9\x01\\s]")
)

// foldText lowercases text and strips diacritics so accented chat spelling
// ("porción", "budín") matches the unaccented catalog form.
func foldText(text string) string {
	lowered := strings.ToLower(text)
	folded, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		return lowered
	}
	return folded
}

// Normalize canonicalizes free-form text for matching: lowercase, diacritics
// stripped, punctuation collapsed to single spaces, trimmed. The output holds
// only lowercase ASCII letters, digits and single spaces. Idempotent.
func Normalize(text string) string {
	folded := nonAlnumRe.ReplaceAllString(foldText(text), " ")
	folded = whitespaceRe.ReplaceAllString(folded, " ")
	return strings.TrimSpace(folded)
}

// normalizeMessage is Normalize with one exception: a "." or "," sitting
// between two digits is kept (as ".") so decimal quantities like "1,5
// porciones" survive into quantity matching.
func normalizeMessage(text string) string {
	folded := foldText(text)
	folded = decimalRe.ReplaceAllString(folded, "${1}\x01${2}")
	folded = protectedRe.ReplaceAllString(folded, " ")
	folded = strings.ReplaceAll(folded, "\x01", ".")
	folded = whitespaceRe.ReplaceAllString(folded, " ")
	return strings.TrimSpace(folded)
}

// itemMatcher holds the compiled patterns for one catalog item.
type itemMatcher struct {
	productID string
	before    *regexp.Regexp // "2 tortas de chocolate"
	after     *regexp.Regexp // "chocolate x2"
}

func newItemMatcher(item CatalogItem) *itemMatcher {
	name := Normalize(item.Name)
	if name == "" {
		return nil
	}
	tokens := strings.Fields(name)
	for i, tok := range tokens {
		tokens[i] = regexp.QuoteMeta(tok)
	}
	namePattern := strings.Join(tokens, `\s+`)

	return &itemMatcher{
		productID: item.ID,
		before:    regexp.MustCompile(quantityPattern + `\s*` + unitWords + `?\s*(?:de\s+)?` + namePattern + `\b`),
		after:     regexp.MustCompile(`\b` + namePattern + `\s*` + unitWords + `?\s*` + quantityPattern),
	}
}

// ParseMessage scans a raw message against the catalog and returns the detected
// line items. All non-overlapping matches for an item are summed into a single
// entry, quantities that parse to zero or garbage contribute nothing, and items
// without matches are omitted. When catalog names overlap as substrings the
// longest normalized name is tried first so "torta de chocolate" beats "torta".
func ParseMessage(message string, catalog []CatalogItem) []LineItem {
	normalized := normalizeMessage(message)
	if normalized == "" {
		return nil
	}

	ordered := make([]CatalogItem, len(catalog))
	copy(ordered, catalog)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(Normalize(ordered[i].Name)) > len(Normalize(ordered[j].Name))
	})

	totals := make(map[string]float64)
	var seen []string

	accumulate := func(productID, raw string) {
		qty := parseQuantity(raw)
		if qty <= 0 {
			return
		}
		if _, ok := totals[productID]; !ok {
			seen = append(seen, productID)
		}
		totals[productID] += qty
	}

	for _, item := range ordered {
		m := newItemMatcher(item)
		if m == nil {
			continue
		}
		for _, match := range m.before.FindAllStringSubmatch(normalized, -1) {
			accumulate(m.productID, match[1])
		}
		for _, match := range m.after.FindAllStringSubmatch(normalized, -1) {
			accumulate(m.productID, match[1])
		}
	}

	items := make([]LineItem, 0, len(seen))
	for _, id := range seen {
		if totals[id] <= 0 {
			continue
		}
		items = append(items, LineItem{ProductID: id, Quantity: totals[id]})
	}
	return items
}

// parseQuantity converts a matched quantity string to a float, accepting ","
// as decimal separator. Unparseable input is treated as zero, not an error.
func parseQuantity(raw string) float64 {
	qty, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return 0
	}
	return qty
}
