// Package checkout composes the WhatsApp handoff for the storefront cart.
// There is no payment integration: checkout means opening a chat with the
// bakery, pre-filled with an itemized order message.
package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/BauthyBa/bautigatica/internal/models"
)

// Line is one cart entry already resolved against the catalog.
type Line struct {
	Product  models.Product
	Quantity int
}

// Order is the composed handoff: the message shown to the customer and the
// wa.me link that opens the chat with it.
type Order struct {
	Message     string  `json:"message"`
	WhatsAppURL string  `json:"whatsappUrl"`
	Total       float64 `json:"total"`
}

var arPrinter = message.NewPrinter(language.MustParse("es-AR"))

// FormatARS renders an amount the way the shop quotes prices: peso sign,
// thousands separators, no cents.
func FormatARS(amount float64) string {
	return "$" + arPrinter.Sprintf("%v", number.Decimal(amount, number.MaxFractionDigits(0)))
}

// Compose builds the order message and wa.me URL for a cart. Lines with
// non-positive quantities are skipped; an empty cart yields a zero order.
func Compose(lines []Line, whatsappNumber string) Order {
	var (
		parts = []string{"Hola! Quisiera hacer la siguiente compra:"}
		total float64
		any   bool
	)

	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		subtotal := float64(line.Quantity) * line.Product.Price
		total += subtotal
		parts = append(parts, fmt.Sprintf("• %s x%d (%s c/u) = %s",
			line.Product.Name, line.Quantity, FormatARS(line.Product.Price), FormatARS(subtotal)))
		any = true
	}

	if !any {
		return Order{}
	}

	parts = append(parts, fmt.Sprintf("Total: %s", FormatARS(total)))
	msg := strings.Join(parts, "\n")

	encoded := strings.ReplaceAll(url.QueryEscape(msg), "+", "%20")
	return Order{
		Message:     msg,
		WhatsAppURL: fmt.Sprintf("https://wa.me/%s?text=%s", whatsappNumber, encoded),
		Total:       total,
	}
}
