package discount

import (
	"github.com/hugohenrick/erp-educacional/internal/domain/pricelist"
)

// StackingInput agrupa as bases de cobrança sobre as quais os descontos
// elegíveis serão aplicados
type StackingInput struct {
	TotalPrice        float64
	EnrollmentFee     float64
	InstallmentAmount float64
	InstallmentCount  int // 0 quando o produto não é financiado
}

// StackingResult contém os valores ajustados após a aplicação dos descontos
type StackingResult struct {
	TotalPrice        float64
	EnrollmentFee     float64
	InstallmentAmount float64
	Applied           []*Application
	TotalDiscount     float64
}

// ApplyDiscounts aplica os descontos elegíveis sobre as três bases de
// cobrança. Entre os descontos não acumuláveis no máximo um é aplicado: o
// que produz o maior montante avaliado contra a própria base. Os
// acumuláveis são aplicados em sequência dentro do balde do seu alvo,
// sempre sobre o restante corrente. Se o preço total mudou, o valor da
// parcela é recalculado antes do balde de parcelas. Nenhum valor ajustado
// resulta negativo.
func ApplyDiscounts(in StackingInput, eligible []*Discount) StackingResult {
	result := StackingResult{
		TotalPrice:        in.TotalPrice,
		EnrollmentFee:     in.EnrollmentFee,
		InstallmentAmount: in.InstallmentAmount,
		Applied:           make([]*Application, 0),
	}

	buckets := buildBuckets(in, eligible)

	result.TotalPrice = applyBucket(&result, buckets[TargetTotalPrice], ConceptTotalPrice, in.TotalPrice)
	result.EnrollmentFee = applyBucket(&result, buckets[TargetEnrollmentFee], ConceptEnrollmentFee, in.EnrollmentFee)

	// Recalcular a parcela quando o preço total foi reduzido
	installmentBase := in.InstallmentAmount
	if in.InstallmentCount > 0 && result.TotalPrice != in.TotalPrice {
		if amount, err := pricelist.ComputeInstallment(result.TotalPrice, result.EnrollmentFee, in.InstallmentCount); err == nil {
			installmentBase = amount
		}
	}

	result.InstallmentAmount = applyBucket(&result, buckets[TargetInstallment], ConceptInstallment, installmentBase)

	result.TotalPrice = clampZero(result.TotalPrice)
	result.EnrollmentFee = clampZero(result.EnrollmentFee)
	result.InstallmentAmount = clampZero(result.InstallmentAmount)

	return result
}

// buildBuckets particiona os descontos por alvo. O vencedor entre os não
// acumuláveis entra primeiro no balde do seu alvo; os acumuláveis seguem na
// ordem de entrada.
func buildBuckets(in StackingInput, eligible []*Discount) map[Target][]*Discount {
	buckets := map[Target][]*Discount{}

	if winner := pickNonAccumulableWinner(in, eligible); winner != nil {
		buckets[winner.Target] = append(buckets[winner.Target], winner)
	}

	for _, d := range eligible {
		if d.Accumulable {
			buckets[d.Target] = append(buckets[d.Target], d)
		}
	}

	return buckets
}

// pickNonAccumulableWinner seleciona o desconto não acumulável de maior
// montante, avaliado contra a base original do seu próprio alvo
func pickNonAccumulableWinner(in StackingInput, eligible []*Discount) *Discount {
	var winner *Discount
	var best float64

	for _, d := range eligible {
		if d.Accumulable {
			continue
		}
		amount := d.AmountFor(baseFor(in, d.Target))
		if winner == nil || amount > best {
			winner = d
			best = amount
		}
	}

	return winner
}

// baseFor retorna a base original correspondente ao alvo
func baseFor(in StackingInput, target Target) float64 {
	switch target {
	case TargetTotalPrice:
		return in.TotalPrice
	case TargetEnrollmentFee:
		return in.EnrollmentFee
	case TargetInstallment:
		return in.InstallmentAmount
	}
	return 0
}

// applyBucket aplica os descontos do balde em sequência sobre o restante
// corrente, registrando cada aplicação e acumulando o total descontado
func applyBucket(result *StackingResult, bucket []*Discount, concept ConceptType, base float64) float64 {
	remaining := base
	for _, d := range bucket {
		amount := d.AmountFor(remaining)
		if amount <= 0 {
			continue
		}

		result.Applied = append(result.Applied, NewApplication(d.ID, concept, remaining, amount))
		result.TotalDiscount += amount
		remaining = clampZero(remaining - amount)
	}
	return remaining
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
