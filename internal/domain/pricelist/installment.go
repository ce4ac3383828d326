package pricelist

import (
	"errors"
	"math"
)

// ErrInvalidInstallmentCount é retornado quando o número de parcelas é menor ou igual a zero
var ErrInvalidInstallmentCount = errors.New("número de parcelas deve ser maior que zero")

// ComputeInstallment calcula o valor de cada parcela de um produto
// financiado: (preço total − matrícula) dividido pelo número de parcelas,
// arredondado para a centena mais próxima (meio para cima). Se a matrícula
// cobre o preço total, o resultado é 0.
func ComputeInstallment(totalPrice, enrollmentFee float64, installmentCount int) (float64, error) {
	if installmentCount <= 0 {
		return 0, ErrInvalidInstallmentCount
	}

	financed := totalPrice - enrollmentFee
	if financed <= 0 {
		return 0, nil
	}

	raw := financed / float64(installmentCount)
	return math.Floor(raw/100+0.5) * 100, nil
}
