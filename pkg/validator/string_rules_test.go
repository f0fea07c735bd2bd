package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/validator"
)

func TestRequiredString(t *testing.T) {
	assert.NoError(t, validator.Apply(validator.RequiredString("name", "Maria")))
	assert.NoError(t, validator.Apply(validator.RequiredString("name", " x ")))

	for _, v := range []string{"", " ", "\t\n"} {
		err := validator.Apply(validator.RequiredString("name", v))
		require.Error(t, err)
		errs := validator.ExtractValidationErrors(err)
		assert.Equal(t, "validation.required", errs[0].TranslationKey)
		assert.Equal(t, "name", errs[0].TranslationValues["field"])
	}
}

func TestMaxLenString(t *testing.T) {
	assert.NoError(t, validator.Apply(validator.MaxLenString("name", "João", 4)))
	assert.Error(t, validator.Apply(validator.MaxLenString("name", "Joãos", 4)))
}

func TestInListString(t *testing.T) {
	options := []string{"corte", "barba"}
	assert.NoError(t, validator.Apply(validator.InListString("service", "corte", options)))
	assert.NoError(t, validator.Apply(validator.InListString("service", "barba", options)))

	err := validator.Apply(validator.InListString("service", "manicure", options))
	require.Error(t, err)
	errs := validator.ExtractValidationErrors(err)
	assert.Equal(t, "validation.in_list", errs[0].TranslationKey)
	assert.Equal(t, "must be one of: corte, barba", errs[0].Message)
}
