package pricelist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeInstallment(t *testing.T) {
	tests := []struct {
		name          string
		totalPrice    float64
		enrollmentFee float64
		count         int
		expected      float64
	}{
		{"divisão exata", 1_000_000, 100_000, 9, 100_000},
		{"arredonda para a centena mais próxima", 1_000_053, 0, 3, 333_400},
		{"meio arredonda para cima", 100_050, 0, 1, 100_100},
		{"abaixo do meio arredonda para baixo", 100_049, 0, 1, 100_000},
		{"matrícula cobre o total", 500_000, 500_000, 10, 0},
		{"matrícula maior que o total", 400_000, 500_000, 10, 0},
		{"parcela única", 350_000, 50_000, 1, 300_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := ComputeInstallment(tt.totalPrice, tt.enrollmentFee, tt.count)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, amount)
		})
	}

	t.Run("número de parcelas zero retorna erro", func(t *testing.T) {
		_, err := ComputeInstallment(1_000_000, 0, 0)
		assert.ErrorIs(t, err, ErrInvalidInstallmentCount)
	})

	t.Run("número de parcelas negativo retorna erro", func(t *testing.T) {
		_, err := ComputeInstallment(1_000_000, 0, -3)
		assert.ErrorIs(t, err, ErrInvalidInstallmentCount)
	})
}

func TestProductPriceRecompute(t *testing.T) {
	total := 1_000_000.0
	count := 9

	t.Run("produto financiável calcula a parcela", func(t *testing.T) {
		pp, err := NewProductPrice("pl-1", "prod-1", 900_000, &total, 100_000, &count, true)
		require.NoError(t, err)
		assert.Equal(t, 100_000.0, pp.InstallmentAmount)
	})

	t.Run("produto financiável sem preço total retorna erro", func(t *testing.T) {
		_, err := NewProductPrice("pl-1", "prod-1", 900_000, nil, 100_000, &count, true)
		assert.ErrorIs(t, err, ErrMissingFinancingFields)
	})

	t.Run("produto financiável sem número de parcelas retorna erro", func(t *testing.T) {
		_, err := NewProductPrice("pl-1", "prod-1", 900_000, &total, 100_000, nil, true)
		assert.ErrorIs(t, err, ErrMissingFinancingFields)
	})

	t.Run("matrícula acima do preço total retorna erro", func(t *testing.T) {
		_, err := NewProductPrice("pl-1", "prod-1", 900_000, &total, 1_100_000, &count, true)
		assert.ErrorIs(t, err, ErrEnrollmentExceedsTotal)
	})

	t.Run("produto não financiável zera os campos de financiamento", func(t *testing.T) {
		pp, err := NewProductPrice("pl-1", "prod-1", 900_000, &total, 100_000, &count, false)
		require.NoError(t, err)
		assert.Nil(t, pp.TotalPrice)
		assert.Nil(t, pp.InstallmentCount)
		assert.Zero(t, pp.InstallmentAmount)
	})

	t.Run("alteração recalcula a parcela", func(t *testing.T) {
		pp, err := NewProductPrice("pl-1", "prod-1", 900_000, &total, 100_000, &count, true)
		require.NoError(t, err)

		newTotal := 1_900_000.0
		pp.TotalPrice = &newTotal
		require.NoError(t, pp.Recompute(true))
		assert.Equal(t, 200_000.0, pp.InstallmentAmount)
	})
}
