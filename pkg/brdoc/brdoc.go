// Package brdoc validates Brazilian taxpayer documents: CPF for natural
// persons and CNPJ for legal entities.
package brdoc

import "strings"

// IsCPF reports whether value is a valid 11-digit CPF with correct check
// digits. Punctuation is stripped before validation.
func IsCPF(value string) bool {
	digits := stripNonDigits(value)
	if len(digits) != 11 || allSame(digits) {
		return false
	}

	d1 := checkDigit(digits[:9], []int{10, 9, 8, 7, 6, 5, 4, 3, 2})
	if digits[9]-'0' != byte(d1) {
		return false
	}
	d2 := checkDigit(digits[:10], []int{11, 10, 9, 8, 7, 6, 5, 4, 3, 2})
	return digits[10]-'0' == byte(d2)
}

// IsCNPJ reports whether value is a valid 14-digit CNPJ with correct check
// digits. Punctuation is stripped before validation.
func IsCNPJ(value string) bool {
	digits := stripNonDigits(value)
	if len(digits) != 14 || allSame(digits) {
		return false
	}

	d1 := checkDigit(digits[:12], []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2})
	if digits[12]-'0' != byte(d1) {
		return false
	}
	d2 := checkDigit(digits[:13], []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2})
	return digits[13]-'0' == byte(d2)
}

// Digits returns value with everything except decimal digits removed.
func Digits(value string) string {
	return stripNonDigits(value)
}

func checkDigit(digits string, weights []int) int {
	sum := 0
	for i, w := range weights {
		sum += int(digits[i]-'0') * w
	}
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}

func stripNonDigits(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func allSame(digits string) bool {
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return true
}
