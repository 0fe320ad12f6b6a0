package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Amounts are typed in pt-BR convention: "." groups thousands and "," marks
// the decimals, e.g. "R$ 1.234,56".
const (
	thousandsSeparator = "."
	decimalSeparator   = ","
)

var (
	amountPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)
	maxCents      = decimal.NewFromInt(math.MaxInt64)
)

// AmountNormalizer turns user-typed monetary text into integer cents.
type AmountNormalizer struct {
	markers []string
}

func NewAmountNormalizer(currencyMarkers []string) *AmountNormalizer {
	markers := make([]string, 0, len(currencyMarkers))
	for _, m := range currencyMarkers {
		if m = strings.TrimSpace(m); m != "" {
			markers = append(markers, m)
		}
	}
	return &AmountNormalizer{markers: markers}
}

// Normalize parses text and returns its value in cents. ok is false when the
// text is empty, not a number, or not strictly positive after rounding.
//
// Sub-cent digits are rounded half away from zero, so "0,005" is 1 cent and
// "0,004" is rejected. The value is parsed as an exact decimal, never a float.
func (n *AmountNormalizer) Normalize(text string) (cents int64, ok bool) {
	s := strings.TrimSpace(text)
	for _, m := range n.markers {
		if len(s) >= len(m) && strings.EqualFold(s[:len(m)], m) {
			s = strings.TrimSpace(s[len(m):])
			break
		}
	}

	s = strings.ReplaceAll(s, thousandsSeparator, "")
	s = strings.ReplaceAll(s, decimalSeparator, ".")
	if s == "" || !amountPattern.MatchString(s) {
		return 0, false
	}

	value, err := decimal.NewFromString(s)
	if err != nil || !value.IsPositive() {
		return 0, false
	}

	rounded := value.Shift(2).Round(0)
	if !rounded.IsPositive() || rounded.GreaterThan(maxCents) {
		return 0, false
	}
	return rounded.IntPart(), true
}

// FormatCents renders cents back into the input convention, "1.250,00".
func FormatCents(cents int64) string {
	sign := ""
	u := uint64(cents)
	if cents < 0 {
		sign = "-"
		u = uint64(-(cents + 1)) + 1
	}

	whole := strconv.FormatUint(u/100, 10)
	frac := u % 100

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(thousandsSeparator)
		}
		b.WriteRune(r)
	}
	b.WriteString(decimalSeparator)
	if frac < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatUint(frac, 10))
	return b.String()
}
