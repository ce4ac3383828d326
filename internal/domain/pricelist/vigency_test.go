package pricelist

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepository implementa Repository em memória para os testes do
// validador de vigência
type fakeRepository struct {
	Repository
	lists []*PriceList
}

func (f *fakeRepository) FindActiveByPopulation(_ context.Context, populationID, excludeID string) ([]*PriceList, error) {
	result := make([]*PriceList, 0)
	for _, pl := range f.lists {
		if pl.ID == excludeID {
			continue
		}
		if pl.Status != StatusActive {
			continue
		}
		if pl.CoversPopulation(populationID) {
			result = append(result, pl)
		}
	}
	return result, nil
}

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func activeList(t *testing.T, id string, start, end time.Time, populations ...string) *PriceList {
	t.Helper()
	pl, err := NewPriceList("Lista "+id, "", start, end, populations)
	require.NoError(t, err)
	pl.ID = id
	pl.Status = StatusActive
	return pl
}

func TestVigencyValidator(t *testing.T) {
	ctx := context.Background()

	existing := activeList(t, "pl-1", date(2026, 1, 1), date(2026, 6, 30), "pop-1")
	validator := NewVigencyValidator(&fakeRepository{lists: []*PriceList{existing}})

	t.Run("intervalo sem interseção é aceito", func(t *testing.T) {
		err := validator.ValidateNoOverlap(ctx, "pop-1", date(2026, 7, 1), date(2026, 12, 31), "")
		assert.NoError(t, err)
	})

	t.Run("início dentro da vigência existente conflita", func(t *testing.T) {
		err := validator.ValidateNoOverlap(ctx, "pop-1", date(2026, 6, 1), date(2026, 12, 31), "")
		assert.ErrorIs(t, err, ErrOverlappingVigency)
	})

	t.Run("fim dentro da vigência existente conflita", func(t *testing.T) {
		err := validator.ValidateNoOverlap(ctx, "pop-1", date(2025, 10, 1), date(2026, 2, 1), "")
		assert.ErrorIs(t, err, ErrOverlappingVigency)
	})

	t.Run("intervalo contendo a vigência existente conflita", func(t *testing.T) {
		err := validator.ValidateNoOverlap(ctx, "pop-1", date(2025, 12, 1), date(2026, 7, 31), "")
		assert.ErrorIs(t, err, ErrOverlappingVigency)
	})

	t.Run("bordas coincidentes conflitam", func(t *testing.T) {
		err := validator.ValidateNoOverlap(ctx, "pop-1", date(2026, 6, 30), date(2026, 12, 31), "")
		assert.ErrorIs(t, err, ErrOverlappingVigency)
	})

	t.Run("outra praça não conflita", func(t *testing.T) {
		err := validator.ValidateNoOverlap(ctx, "pop-2", date(2026, 1, 1), date(2026, 12, 31), "")
		assert.NoError(t, err)
	})

	t.Run("a própria lista é excluída da checagem", func(t *testing.T) {
		err := validator.ValidateNoOverlap(ctx, "pop-1", date(2026, 1, 1), date(2026, 6, 30), "pl-1")
		assert.NoError(t, err)
	})

	t.Run("data final anterior à inicial retorna erro", func(t *testing.T) {
		err := validator.ValidateNoOverlap(ctx, "pop-1", date(2026, 6, 1), date(2026, 1, 1), "")
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})
}

func TestVigencyValidatorIgnoresNonActive(t *testing.T) {
	ctx := context.Background()

	approved := activeList(t, "pl-2", date(2026, 1, 1), date(2026, 12, 31), "pop-1")
	approved.Status = StatusApproved
	inProcess := activeList(t, "pl-3", date(2026, 1, 1), date(2026, 12, 31), "pop-1")
	inProcess.Status = StatusInProcess
	inactive := activeList(t, "pl-4", date(2026, 1, 1), date(2026, 12, 31), "pop-1")
	inactive.Status = StatusInactive

	validator := NewVigencyValidator(&fakeRepository{lists: []*PriceList{approved, inProcess, inactive}})

	err := validator.ValidateNoOverlap(ctx, "pop-1", date(2026, 3, 1), date(2026, 9, 30), "")
	assert.NoError(t, err)
}

func TestVigencyValidatorForActivation(t *testing.T) {
	ctx := context.Background()

	existing := activeList(t, "pl-1", date(2026, 1, 1), date(2026, 6, 30), "pop-1")
	validator := NewVigencyValidator(&fakeRepository{lists: []*PriceList{existing}})

	t.Run("ativação conflitante é rejeitada", func(t *testing.T) {
		candidate := activeList(t, "pl-9", date(2026, 5, 1), date(2026, 12, 31), "pop-1", "pop-2")
		candidate.Status = StatusApproved

		err := validator.ValidateForActivation(ctx, candidate)
		assert.ErrorIs(t, err, ErrOverlappingVigency)
	})

	t.Run("ativação sem conflito é aceita", func(t *testing.T) {
		candidate := activeList(t, "pl-9", date(2026, 7, 1), date(2026, 12, 31), "pop-1", "pop-2")
		candidate.Status = StatusApproved

		assert.NoError(t, validator.ValidateForActivation(ctx, candidate))
	})
}

func TestPriceListLifecycle(t *testing.T) {
	pl, err := NewPriceList("Lista 2026", "L2026", date(2026, 1, 1), date(2026, 12, 31), []string{"pop-1"})
	require.NoError(t, err)
	assert.Equal(t, StatusInProcess, pl.Status)

	require.NoError(t, pl.Approve())
	assert.Equal(t, StatusApproved, pl.Status)

	require.NoError(t, pl.Activate())
	assert.Equal(t, StatusActive, pl.Status)

	require.NoError(t, pl.Deactivate())
	assert.Equal(t, StatusInactive, pl.Status)

	t.Run("ativação direta de lista em elaboração é rejeitada", func(t *testing.T) {
		fresh, err := NewPriceList("Outra", "", date(2026, 1, 1), date(2026, 12, 31), []string{"pop-1"})
		require.NoError(t, err)
		assert.ErrorIs(t, fresh.Activate(), ErrInvalidStatusChange)
	})

	t.Run("criação com intervalo invertido é rejeitada", func(t *testing.T) {
		_, err := NewPriceList("Invertida", "", date(2026, 12, 31), date(2026, 1, 1), []string{"pop-1"})
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})
}
