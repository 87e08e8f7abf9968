package validation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type sample struct {
	Plate  string `json:"carPlateNumber" validate:"omitempty,carplate"`
	Mobile string `json:"phone" validate:"required,mobile"`
	Branch string `json:"branchPhone" validate:"omitempty,phone10"`
	Size   string `json:"carSize" validate:"omitempty,oneof=small medium large"`
}

func TestCustomRules(t *testing.T) {
	require.NoError(t, ValidateStruct(sample{Plate: "ABC1234", Mobile: "0512345678", Branch: "0123456789"}))
	require.NoError(t, ValidateStruct(sample{Plate: "ABCD1234", Mobile: "0512345678"}))

	require.Error(t, ValidateStruct(sample{Plate: "AB12", Mobile: "0512345678"}))
	require.Error(t, ValidateStruct(sample{Mobile: "0612345678"}))
	require.Error(t, ValidateStruct(sample{Mobile: "0512345678", Branch: "12345"}))
}

func TestMessagesUseJSONNames(t *testing.T) {
	err := ValidateStruct(sample{Plate: "AB12", Size: "huge"})
	require.Error(t, err)

	msgs := Messages(err)
	require.Contains(t, msgs, "carPlateNumber must have exactly 7 or 8 characters")
	require.Contains(t, msgs, "phone is required")
	require.Contains(t, msgs, "carSize must be one of [small medium large]")
}

func TestIsValidCarPlate(t *testing.T) {
	require.True(t, IsValidCarPlate("1234567"))
	require.True(t, IsValidCarPlate(" 12345678 "))
	require.False(t, IsValidCarPlate("123456"))
	require.False(t, IsValidCarPlate("123456789"))
}
