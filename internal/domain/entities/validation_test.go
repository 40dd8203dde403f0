package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"charity-pay.backend/internal/domain/entities"
	domainerrors "charity-pay.backend/internal/domain/errors"
)

func TestValidateTaxID(t *testing.T) {
	assert.NoError(t, entities.ValidateTaxID("1234567890"))
	assert.NoError(t, entities.ValidateTaxID("123-456-78-90"))
	assert.NoError(t, entities.ValidateTaxID(" 1234567890 "))

	assert.ErrorIs(t, entities.ValidateTaxID("123456789"), domainerrors.ErrInvalidTaxID)
	assert.ErrorIs(t, entities.ValidateTaxID("12345678901"), domainerrors.ErrInvalidTaxID)
	assert.ErrorIs(t, entities.ValidateTaxID("12345678AB"), domainerrors.ErrInvalidTaxID)
	assert.ErrorIs(t, entities.ValidateTaxID(""), domainerrors.ErrInvalidTaxID)
}

func TestValidateBankAccount(t *testing.T) {
	assert.NoError(t, entities.ValidateBankAccount("PL61109010140000071219812874"))
	assert.NoError(t, entities.ValidateBankAccount("PL61 1090 1014 0000 0712 1981 2874"))
	assert.NoError(t, entities.ValidateBankAccount("pl61109010140000071219812874"))
	assert.NoError(t, entities.ValidateBankAccount("GB82WEST12345698765432"))

	// Single flipped check digit fails the mod-97 check.
	assert.ErrorIs(t, entities.ValidateBankAccount("PL62109010140000071219812874"), domainerrors.ErrInvalidBankAccount)
	// Mutated account digit fails too.
	assert.ErrorIs(t, entities.ValidateBankAccount("PL61109010140000071219812875"), domainerrors.ErrInvalidBankAccount)

	assert.ErrorIs(t, entities.ValidateBankAccount(""), domainerrors.ErrInvalidBankAccount)
	assert.ErrorIs(t, entities.ValidateBankAccount("PL611090"), domainerrors.ErrInvalidBankAccount)
	assert.ErrorIs(t, entities.ValidateBankAccount("61109010140000071219812874PL"), domainerrors.ErrInvalidBankAccount)
	assert.ErrorIs(t, entities.ValidateBankAccount("PL61109010140000071219812874001122334455"), domainerrors.ErrInvalidBankAccount)
}

func TestDocumentTypeIsValid(t *testing.T) {
	assert.True(t, entities.DocumentTypeCorporateRegistration.IsValid())
	assert.True(t, entities.DocumentTypeOther.IsValid())
	assert.False(t, entities.DocumentType("selfie").IsValid())
}
