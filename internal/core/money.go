// Package core provides the domain model and money parsing utilities.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseAmount converts a raw amount string into absolute cents plus the sign
// it carried. Currency symbols ($), thousands separators (,) and wrapping
// parentheses are stripped; a value in parentheses or with a literal minus
// sign is reported as negative. The returned cents are always the absolute
// magnitude: direction is the caller's concern.
//
// Examples:
//
//	ParseAmount("4.85")     -> 485, false, nil
//	ParseAmount("$4.85")    -> 485, false, nil
//	ParseAmount("(4.85)")   -> 485, true, nil
//	ParseAmount("-1,200.5") -> 120050, true, nil
func ParseAmount(s string) (cents int64, negative bool, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false, ErrInvalidAmount
	}
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	}
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "-") {
		negative = true
		s = strings.TrimPrefix(s, "-")
	}
	s = strings.TrimPrefix(s, "+")

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, false, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	if intPart == "0" && fracPart == "" && len(parts) == 1 && s != "0" {
		return 0, false, ErrInvalidAmount
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, false, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, false, ErrInvalidAmount
		}
	}

	iv, perr := strconv.ParseInt(intPart, 10, 64)
	if perr != nil {
		return 0, false, ErrInvalidAmount
	}
	// Guard the *100 below.
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, false, ErrInvalidAmount
	}

	// First two fractional digits, half-up rounding on the third.
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	return iv*100 + fracCents, negative, nil
}

// Float64 returns the decimal value for display and API responses.
// Use cents for all arithmetic.
func (m Money) Float64() float64 {
	return float64(m.Cents) / 100.0
}

// FormatAmount renders cents as a plain decimal string, e.g. "3147.16".
func FormatAmount(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := strconv.FormatInt(cents/100, 10) + "." + pad2(cents%100)
	if neg {
		return "-" + s
	}
	return s
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
