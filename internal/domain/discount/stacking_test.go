package discount

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDiscount(t *testing.T, name string, kind Kind, value float64, target Target, accumulable bool) *Discount {
	t.Helper()
	start := time.Now().AddDate(0, -1, 0)
	end := time.Now().AddDate(0, 1, 0)
	d, err := NewDiscount(name, kind, value, target, ActivationEnrollmentPromotion, start, end)
	require.NoError(t, err)
	d.Accumulable = accumulable
	d.Status = StatusActive
	return d
}

func TestApplyDiscountsNonAccumulableWinner(t *testing.T) {
	// Base 100.000: fixo de 20.000 contra 30% (30.000); só o percentual aplica
	fixed := testDiscount(t, "Fixo 20k", KindFixedAmount, 20_000, TargetTotalPrice, false)
	percent := testDiscount(t, "30%", KindPercentage, 30, TargetTotalPrice, false)

	in := StackingInput{TotalPrice: 100_000}
	result := ApplyDiscounts(in, []*Discount{fixed, percent})

	assert.Equal(t, 70_000.0, result.TotalPrice)
	assert.Equal(t, 30_000.0, result.TotalDiscount)
	require.Len(t, result.Applied, 1)
	assert.Equal(t, percent.ID, result.Applied[0].DiscountID)
}

func TestApplyDiscountsAccumulableStack(t *testing.T) {
	// Acumuláveis aplicam em sequência sobre o restante corrente:
	// 100.000 − 10% = 90.000; 90.000 − 10% = 81.000
	first := testDiscount(t, "10% A", KindPercentage, 10, TargetTotalPrice, true)
	second := testDiscount(t, "10% B", KindPercentage, 10, TargetTotalPrice, true)

	in := StackingInput{TotalPrice: 100_000}
	result := ApplyDiscounts(in, []*Discount{first, second})

	assert.Equal(t, 81_000.0, result.TotalPrice)
	assert.Equal(t, 19_000.0, result.TotalDiscount)
	assert.Len(t, result.Applied, 2)
}

func TestApplyDiscountsClampToZero(t *testing.T) {
	// Montante fixo maior que a base reduz exatamente a zero
	big := testDiscount(t, "Fixo 200k", KindFixedAmount, 200_000, TargetEnrollmentFee, true)

	in := StackingInput{TotalPrice: 1_000_000, EnrollmentFee: 100_000}
	result := ApplyDiscounts(in, []*Discount{big})

	assert.Equal(t, 0.0, result.EnrollmentFee)
	assert.Equal(t, 100_000.0, result.TotalDiscount)
	require.Len(t, result.Applied, 1)
	assert.Equal(t, 100_000.0, result.Applied[0].DiscountAmount)
	assert.Equal(t, 0.0, result.Applied[0].FinalAmount)
}

func TestApplyDiscountsBucketRouting(t *testing.T) {
	onTotal := testDiscount(t, "5% total", KindPercentage, 5, TargetTotalPrice, true)
	onFee := testDiscount(t, "50% matrícula", KindPercentage, 50, TargetEnrollmentFee, true)

	in := StackingInput{TotalPrice: 1_000_000, EnrollmentFee: 100_000, InstallmentAmount: 100_000, InstallmentCount: 9}
	result := ApplyDiscounts(in, []*Discount{onTotal, onFee})

	assert.Equal(t, 950_000.0, result.TotalPrice)
	assert.Equal(t, 50_000.0, result.EnrollmentFee)
	assert.Equal(t, 100_000.0, result.TotalDiscount)
}

func TestApplyDiscountsRecomputesInstallment(t *testing.T) {
	// Desconto no preço total exige recálculo da parcela:
	// total 1.000.000 − 10% = 900.000; (900.000 − 100.000) / 9 = 88.889 → 88.900
	onTotal := testDiscount(t, "10% total", KindPercentage, 10, TargetTotalPrice, true)

	in := StackingInput{TotalPrice: 1_000_000, EnrollmentFee: 100_000, InstallmentAmount: 100_000, InstallmentCount: 9}
	result := ApplyDiscounts(in, []*Discount{onTotal})

	assert.Equal(t, 900_000.0, result.TotalPrice)
	assert.Equal(t, 88_900.0, result.InstallmentAmount)
}

func TestApplyDiscountsInstallmentBucketAfterRecompute(t *testing.T) {
	onTotal := testDiscount(t, "10% total", KindPercentage, 10, TargetTotalPrice, true)
	onInstallment := testDiscount(t, "10% parcela", KindPercentage, 10, TargetInstallment, true)

	in := StackingInput{TotalPrice: 1_000_000, EnrollmentFee: 100_000, InstallmentAmount: 100_000, InstallmentCount: 9}
	result := ApplyDiscounts(in, []*Discount{onTotal, onInstallment})

	// Parcela recalculada para 88.900 e então reduzida em 10%
	assert.Equal(t, 80_010.0, result.InstallmentAmount)
}

func TestApplyDiscountsWinnerPlusAccumulables(t *testing.T) {
	winner := testDiscount(t, "20% não acumulável", KindPercentage, 20, TargetTotalPrice, false)
	loser := testDiscount(t, "Fixo 10k não acumulável", KindFixedAmount, 10_000, TargetTotalPrice, false)
	stackable := testDiscount(t, "5% acumulável", KindPercentage, 5, TargetTotalPrice, true)

	in := StackingInput{TotalPrice: 100_000}
	result := ApplyDiscounts(in, []*Discount{winner, loser, stackable})

	// Vencedor primeiro: 100.000 − 20% = 80.000; depois 80.000 − 5% = 76.000
	assert.Equal(t, 76_000.0, result.TotalPrice)
	assert.Equal(t, 24_000.0, result.TotalDiscount)
	assert.Len(t, result.Applied, 2)
}

func TestApplyDiscountsNoEligible(t *testing.T) {
	in := StackingInput{TotalPrice: 100_000, EnrollmentFee: 10_000, InstallmentAmount: 9_000}
	result := ApplyDiscounts(in, nil)

	assert.Equal(t, in.TotalPrice, result.TotalPrice)
	assert.Equal(t, in.EnrollmentFee, result.EnrollmentFee)
	assert.Equal(t, in.InstallmentAmount, result.InstallmentAmount)
	assert.Zero(t, result.TotalDiscount)
	assert.Empty(t, result.Applied)
}

func TestApplicationNeverNegative(t *testing.T) {
	app := NewApplication("d-1", ConceptTotalPrice, 50_000, 80_000)
	assert.Equal(t, 50_000.0, app.DiscountAmount)
	assert.Equal(t, 0.0, app.FinalAmount)
}
