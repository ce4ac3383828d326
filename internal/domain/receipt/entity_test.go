package receipt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/erp-educacional/internal/domain/site"
)

func newTestReceipt(t *testing.T) *PaymentReceipt {
	t.Helper()
	r, err := NewPaymentReceipt("site-1", "cashier-1", site.OriginAcademic, time.Now())
	require.NoError(t, err)
	return r
}

func TestNewPaymentReceipt(t *testing.T) {
	t.Run("criado em elaboração", func(t *testing.T) {
		r := newTestReceipt(t)
		assert.Equal(t, StatusInProcess, r.Status)
		assert.True(t, r.Editable())
	})

	t.Run("sem sede retorna erro", func(t *testing.T) {
		_, err := NewPaymentReceipt("", "cashier-1", site.OriginAcademic, time.Now())
		assert.ErrorIs(t, err, ErrEmptySite)
	})

	t.Run("origem inválida retorna erro", func(t *testing.T) {
		_, err := NewPaymentReceipt("site-1", "cashier-1", "outra", time.Now())
		assert.ErrorIs(t, err, site.ErrInvalidOrigin)
	})
}

func TestReceiptTotals(t *testing.T) {
	r := newTestReceipt(t)

	require.NoError(t, r.AddConcept("tuition", "", "Mensalidade", 300_000))
	require.NoError(t, r.AddProduct("prod-1", "pl-1", 1, 500_000))
	require.NoError(t, r.AddDiscount("disc-1", 50_000))
	require.NoError(t, r.AddPaymentMethod("cash", 750_000))

	assert.Equal(t, 800_000.0, r.TotalAmount)
	assert.Equal(t, 50_000.0, r.TotalDiscount)
	assert.Equal(t, []string{"pl-1"}, r.PriceListIDs)

	t.Run("limpar linhas zera os totais", func(t *testing.T) {
		require.NoError(t, r.ClearLines())
		assert.Zero(t, r.TotalAmount)
		assert.Zero(t, r.TotalDiscount)
		assert.Empty(t, r.PriceListIDs)
	})
}

func TestReceiptLifecycle(t *testing.T) {
	t.Run("fluxo normal até o fechamento", func(t *testing.T) {
		r := newTestReceipt(t)
		require.NoError(t, r.MarkCreated())
		assert.Equal(t, StatusCreated, r.Status)

		require.NoError(t, r.Close("L-2026-08"))
		assert.Equal(t, StatusClosed, r.Status)
		assert.Equal(t, "L-2026-08", r.ClosingBatch)
	})

	t.Run("fechado não pode ser anulado", func(t *testing.T) {
		r := newTestReceipt(t)
		require.NoError(t, r.MarkCreated())
		require.NoError(t, r.Close(""))

		assert.ErrorIs(t, r.Void(), ErrCannotVoidClosed)
	})

	t.Run("anulado não pode ser fechado", func(t *testing.T) {
		r := newTestReceipt(t)
		require.NoError(t, r.Void())

		assert.ErrorIs(t, r.Close(""), ErrCannotCloseVoided)
	})

	t.Run("fechar duas vezes falha", func(t *testing.T) {
		r := newTestReceipt(t)
		require.NoError(t, r.Close(""))
		assert.ErrorIs(t, r.Close(""), ErrAlreadyClosed)
	})

	t.Run("anular duas vezes falha", func(t *testing.T) {
		r := newTestReceipt(t)
		require.NoError(t, r.Void())
		assert.ErrorIs(t, r.Void(), ErrAlreadyVoided)
	})

	t.Run("anulação direta de recibo em elaboração é permitida", func(t *testing.T) {
		r := newTestReceipt(t)
		require.NoError(t, r.Void())
		assert.Equal(t, StatusVoided, r.Status)
	})
}

func TestReceiptLinesLockedAfterCreation(t *testing.T) {
	r := newTestReceipt(t)
	require.NoError(t, r.AddConcept("tuition", "", "Mensalidade", 100_000))
	require.NoError(t, r.MarkCreated())

	assert.ErrorIs(t, r.AddConcept("tuition", "", "Outra", 100_000), ErrNotEditable)
	assert.ErrorIs(t, r.AddProduct("prod-1", "pl-1", 1, 100_000), ErrNotEditable)
	assert.ErrorIs(t, r.AddDiscount("disc-1", 10_000), ErrNotEditable)
	assert.ErrorIs(t, r.AddPaymentMethod("cash", 100_000), ErrNotEditable)
	assert.ErrorIs(t, r.ClearLines(), ErrNotEditable)

	t.Run("emitir duas vezes falha", func(t *testing.T) {
		assert.ErrorIs(t, r.MarkCreated(), ErrNotEditable)
	})
}
