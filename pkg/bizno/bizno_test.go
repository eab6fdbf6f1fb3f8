package bizno_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturas-api/pkg/bizno"
)

func TestValidate_NumerosValidos(t *testing.T) {
	for _, n := range []string{"2208162517", "220-81-62517", "124-81-00998", "1078155843", "120-81-47521"} {
		assert.NoError(t, bizno.Validate(n), n)
	}
}

func TestValidate_DigitoIncorrecto(t *testing.T) {
	err := bizno.Validate("1234567890")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "esperado 1")
}

func TestValidate_LongitudIncorrecta(t *testing.T) {
	for _, n := range []string{"", "123", "22081625170", "abc-de-fghij"} {
		assert.Error(t, bizno.Validate(n), n)
	}
}

func TestCheckDigit(t *testing.T) {
	d, err := bizno.CheckDigit("220-81-6251")
	require.NoError(t, err)
	assert.Equal(t, byte('7'), d)

	_, err = bizno.CheckDigit("12345")
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "220-81-62517", bizno.Normalize("2208162517"))
	assert.Equal(t, "220-81-62517", bizno.Normalize(" 220 81 62517 "))
	assert.Equal(t, "123", bizno.Normalize("123"))
}
