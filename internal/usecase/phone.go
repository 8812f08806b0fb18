package usecase

import (
	"strings"

	"myfatoorah-checkout/internal/domain"
)

// GetPhone normalizes a customer-supplied phone number into a country code
// and local number. Arabic-Indic and Persian digits are folded to ASCII,
// every other non-digit is dropped, and an international "00" prefix is
// stripped. An input with no digits yields two empty strings without error.
func GetPhone(input string) (code, number string, err error) {
	digits := strings.Map(foldDigit, input)

	if strings.HasPrefix(digits, "00") {
		digits = digits[2:]
	}
	if digits == "" {
		return "", "", nil
	}
	if len(digits) < 3 || len(digits) > 14 {
		return "", "", domain.ErrInvalidPhoneLength
	}

	// The leading 3 digits are a country code only when enough of a local
	// number remains behind them.
	if len(digits[3:]) > 3 {
		return digits[:3], digits[3:], nil
	}
	return "", digits, nil
}

// foldDigit maps Arabic-Indic (٠-٩) and Extended Arabic-Indic (۰-۹) digits
// onto ASCII and drops everything that is not a digit.
func foldDigit(r rune) rune {
	switch {
	case r >= '0' && r <= '9':
		return r
	case r >= '٠' && r <= '٩':
		return '0' + (r - '٠')
	case r >= '۰' && r <= '۹':
		return '0' + (r - '۰')
	default:
		return -1
	}
}
