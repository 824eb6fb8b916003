// Package address validates delivery addresses
package address

import "regexp"

// pattern accepts "Город, ул. Название, д. 10, кв. 5" style addresses:
// capitalized city word(s), optional comma, a street-type token, street name,
// house number with optional letter, optional apartment number.
var pattern = regexp.MustCompile(
	`(?i)^\s*` +
		`[А-ЯЁ][а-яё]+(?:\s[А-ЯЁ][а-яё]+)*\s*,?\s*` +
		`(?:ул\.?|улица|просп\.?|пер\.?|бул\.?|шоссе|пр-т|переулок)\s+[А-ЯЁа-яё\s\d\-]+,?\s*` +
		`д\.?\s*\d+[а-яА-ЯёЁ]?(?:,?\s*)?` +
		`(?:кв\.?\s*\d+)?\s*$`,
)

// Valid reports whether the address matches the delivery format
func Valid(address string) bool {
	return pattern.MatchString(address)
}
