package pricing

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	DefaultRate   = 83.50
	DefaultSymbol = "₹"
)

// Thousands-grouped decimal, e.g. 1,234.56
var amountPattern = regexp.MustCompile(`\d{1,3}(?:,\d{3})*(?:\.\d+)?`)

// Normalizer converts free-form source currency price text into the target currency
type Normalizer struct {
	Rate   float64
	Symbol string

	printer *message.Printer
}

// NewNormalizer creates a Normalizer with the given exchange rate and currency symbol
func NewNormalizer(rate float64, symbol string) *Normalizer {
	if symbol == "" {
		symbol = DefaultSymbol
	}
	return &Normalizer{
		Rate:    rate,
		Symbol:  symbol,
		printer: message.NewPrinter(language.English),
	}
}

// Normalize extracts the first amount from text and converts it with the exchange rate.
// It returns 0 when no amount can be found or parsed, or when it overflows.
func (n *Normalizer) Normalize(text string) float64 {
	match := amountPattern.FindString(text)
	if match == "" {
		return 0
	}
	amount, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", ""), 64)
	if err != nil {
		return 0
	}
	converted := amount * n.Rate
	if math.IsInf(converted, 0) || math.IsNaN(converted) {
		return 0
	}
	return converted
}

// NormalizeValue is Normalize for values of unknown type; anything but a string yields 0.
func (n *Normalizer) NormalizeValue(v interface{}) float64 {
	text, ok := v.(string)
	if !ok {
		return 0
	}
	return n.Normalize(text)
}

// Format renders a target currency amount as "<symbol> 1,234.50"
func (n *Normalizer) Format(amount float64) string {
	p := n.printer
	if p == nil {
		p = message.NewPrinter(language.English)
	}
	return n.Symbol + " " + p.Sprintf("%.2f", amount)
}
