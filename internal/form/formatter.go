package form

import "strings"

// Display caps enforced by callers, not by the formatters themselves.
const (
	CardNumberDisplayMax = 19 // 16 digits + 3 spaces
	ExpiryDisplayMax     = 5  // MM/YY
	CVVMaxPayment        = 4  // payment form accepts 4-digit codes
	CVVMaxBalance        = 3  // balance form caps at 3
)

// digits strips everything but ASCII digits from s.
func digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCardNumber renders raw keystrokes as a space-grouped card number.
// The first run of 4 to 16 digits is regrouped in blocks of 4 joined by
// single spaces; with fewer than 4 digits the stripped input is returned
// unchanged. Reformatting its own output is a no-op.
func FormatCardNumber(input string) string {
	v := digits(input)
	if len(v) < 4 {
		return v
	}
	match := v
	if len(match) > 16 {
		match = match[:16]
	}
	parts := make([]string, 0, 4)
	for i := 0; i < len(match); i += 4 {
		end := i + 4
		if end > len(match) {
			end = len(match)
		}
		parts = append(parts, match[i:end])
	}
	return strings.Join(parts, " ")
}

// FormatExpiry renders raw keystrokes as MM/YY. Once two or more digits are
// present a slash is inserted after the second; the caller truncates the
// result to five characters.
func FormatExpiry(input string) string {
	v := digits(input)
	if len(v) >= 2 {
		rest := v[2:]
		if len(rest) > 2 {
			rest = rest[:2]
		}
		return v[:2] + "/" + rest
	}
	return v
}

// FormatCVV strips non-digits. Length caps are applied at the call site
// (CVVMaxPayment or CVVMaxBalance) rather than here.
func FormatCVV(input string) string {
	return digits(input)
}

// FormatLocalPhoneNumber renders up to nine digits as "XX XXX XX XX".
// Inputs with more than nine digits are returned unchanged; the caller
// owns the length guard.
func FormatLocalPhoneNumber(input string) string {
	cleaned := digits(input)
	if len(cleaned) > 9 {
		return input
	}
	if len(cleaned) < 9 {
		return cleaned
	}
	return cleaned[0:2] + " " + cleaned[2:5] + " " + cleaned[5:7] + " " + cleaned[7:9]
}

// TruncateCVV applies a call-site cap to an already-stripped CVV.
func TruncateCVV(cvv string, max int) string {
	if len(cvv) > max {
		return cvv[:max]
	}
	return cvv
}
