package parser

import (
	"regexp"
	"strings"
)

// wholeCakeRe matches the whole-cake keyword at a word boundary ("torta",
// "tortas"). It takes precedence over the portion checks: a "torta de
// porciones" is still a whole cake.
var wholeCakeRe = regexp.MustCompile(`\btorta`)

// portionHints are product-name words for items sold by the unit.
var portionHints = []string{
	"brownie",
	"budin",
	"alfajor",
	"medialuna",
	"cuadrado",
	"slice",
	"cupcake",
	"muffin",
	"galleta",
	"cookie",
}

// InferCategory classifies a product name as whole cake or portion from its
// keywords. Returns the empty category when nothing matches.
func InferCategory(name string) ProductCategory {
	normalized := Normalize(name)
	if normalized == "" {
		return ""
	}
	if wholeCakeRe.MatchString(normalized) {
		return CategoryWhole
	}
	if strings.Contains(normalized, "porcion") {
		return CategoryPortion
	}
	for _, hint := range portionHints {
		if strings.Contains(normalized, hint) {
			return CategoryPortion
		}
	}
	return ""
}
