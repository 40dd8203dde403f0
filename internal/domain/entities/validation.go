package entities

import (
	"math/big"
	"strings"

	domainerrors "charity-pay.backend/internal/domain/errors"
)

const taxIDLength = 10

// ValidateTaxID checks the fixed ten-digit tax identifier format.
func ValidateTaxID(taxID string) error {
	s := strings.ReplaceAll(strings.TrimSpace(taxID), "-", "")
	if len(s) != taxIDLength {
		return domainerrors.ErrInvalidTaxID
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return domainerrors.ErrInvalidTaxID
		}
	}
	return nil
}

var ibanMod97 = big.NewInt(97)

// ValidateBankAccount checks the IBAN format including the ISO 13616 mod-97
// check digits.
func ValidateBankAccount(iban string) error {
	s := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(iban), " ", ""))
	if len(s) < 15 || len(s) > 34 {
		return domainerrors.ErrInvalidBankAccount
	}
	if s[0] < 'A' || s[0] > 'Z' || s[1] < 'A' || s[1] > 'Z' {
		return domainerrors.ErrInvalidBankAccount
	}

	// Move the country code and check digits to the end, then expand
	// letters to two-digit numbers (A=10 .. Z=35).
	rearranged := s[4:] + s[:4]
	var sb strings.Builder
	for _, r := range rearranged {
		switch {
		case r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			sb.WriteString(big.NewInt(int64(r-'A') + 10).String())
		default:
			return domainerrors.ErrInvalidBankAccount
		}
	}

	n, ok := new(big.Int).SetString(sb.String(), 10)
	if !ok {
		return domainerrors.ErrInvalidBankAccount
	}
	if new(big.Int).Mod(n, ibanMod97).Int64() != 1 {
		return domainerrors.ErrInvalidBankAccount
	}
	return nil
}
