package brdoc

import "strings"

// Brazilian document helpers shared by checkout and payment requests.
// CPF is the individual taxpayer id: 9 digits plus 2 check digits.

const cpfLength = 11

// ValidateCPF reports whether input is a valid CPF. Formatting characters
// are ignored; anything that does not reduce to exactly 11 digits fails.
func ValidateCPF(input string) bool {
	digits := stripNonDigits(input)
	if len(digits) != cpfLength {
		return false
	}

	// Sequences like "00000000000" pass the checksum but are not issued.
	if allSameDigit(digits) {
		return false
	}

	if checkDigit(digits, 9) != int(digits[9]-'0') {
		return false
	}
	if checkDigit(digits, 10) != int(digits[10]-'0') {
		return false
	}

	return true
}

// checkDigit computes the mod-11 check digit over digits[0:n] with
// descending weights starting at n+1.
func checkDigit(digits string, n int) int {
	sum := 0
	for i := 0; i < n; i++ {
		sum += int(digits[i]-'0') * (n + 1 - i)
	}

	check := 11 - (sum % 11)
	if check >= 10 {
		check = 0
	}
	return check
}

// FormatCPF masks raw input as "ddd.ddd.ddd-dd", progressively for
// partial input. Excess digits are truncated, never an error.
func FormatCPF(raw string) string {
	digits := stripNonDigits(raw)
	if len(digits) > cpfLength {
		digits = digits[:cpfLength]
	}

	var b strings.Builder
	for i := 0; i < len(digits); i++ {
		switch i {
		case 3, 6:
			b.WriteByte('.')
		case 9:
			b.WriteByte('-')
		}
		b.WriteByte(digits[i])
	}
	return b.String()
}

// FormatPhone masks raw input as "(dd) ddddd-dddd", progressively for
// partial input. Excess digits are truncated, never an error.
func FormatPhone(raw string) string {
	digits := stripNonDigits(raw)
	if len(digits) > 11 {
		digits = digits[:11]
	}

	var b strings.Builder
	for i := 0; i < len(digits); i++ {
		switch i {
		case 0:
			b.WriteByte('(')
		case 2:
			b.WriteString(") ")
		case 7:
			b.WriteByte('-')
		}
		b.WriteByte(digits[i])
	}
	return b.String()
}

// StripNonDigits removes everything but ASCII digits. The payment request
// sends CPF and phone as bare digits.
func StripNonDigits(s string) string {
	return stripNonDigits(s)
}

func stripNonDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func allSameDigit(digits string) bool {
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return true
}
