package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/erp-educacional/internal/domain/discount"
	"github.com/hugohenrick/erp-educacional/internal/domain/pricelist"
	"github.com/hugohenrick/erp-educacional/pkg/logger"
)

type fakePriceListRepository struct {
	pricelist.Repository

	approved []*pricelist.PriceList
	expiring []*pricelist.PriceList
	active   []*pricelist.PriceList
	statuses map[string]pricelist.Status
}

func (f *fakePriceListRepository) ListApprovedToActivate(_ context.Context, _ time.Time) ([]*pricelist.PriceList, error) {
	return f.approved, nil
}

func (f *fakePriceListRepository) ListActiveToExpire(_ context.Context, _ time.Time) ([]*pricelist.PriceList, error) {
	return f.expiring, nil
}

func (f *fakePriceListRepository) FindActiveByPopulation(_ context.Context, populationID, excludeID string) ([]*pricelist.PriceList, error) {
	var out []*pricelist.PriceList
	for _, pl := range f.active {
		if pl.ID != excludeID && pl.CoversPopulation(populationID) {
			out = append(out, pl)
		}
	}
	return out, nil
}

func (f *fakePriceListRepository) UpdateStatus(_ context.Context, id string, status pricelist.Status) error {
	f.statuses[id] = status
	return nil
}

type fakeDiscountRepository struct {
	discount.Repository

	approved []*discount.Discount
	expiring []*discount.Discount
	statuses map[string]discount.Status
}

func (f *fakeDiscountRepository) ListApprovedToActivate(_ context.Context, _ time.Time) ([]*discount.Discount, error) {
	return f.approved, nil
}

func (f *fakeDiscountRepository) ListActiveToExpire(_ context.Context, _ time.Time) ([]*discount.Discount, error) {
	return f.expiring, nil
}

func (f *fakeDiscountRepository) UpdateStatus(_ context.Context, id string, status discount.Status) error {
	f.statuses[id] = status
	return nil
}

func testPriceList(t *testing.T, name string, status pricelist.Status) *pricelist.PriceList {
	t.Helper()
	start := time.Now().AddDate(0, -1, 0)
	end := time.Now().AddDate(0, 1, 0)
	pl, err := pricelist.NewPriceList(name, "", start, end, []string{"pop-1"})
	require.NoError(t, err)
	pl.Status = status
	return pl
}

func testSchedulerDiscount(t *testing.T, name string, status discount.Status) *discount.Discount {
	t.Helper()
	start := time.Now().AddDate(0, -1, 0)
	end := time.Now().AddDate(0, 1, 0)
	d, err := discount.NewDiscount(name, discount.KindPercentage, 10, discount.TargetTotalPrice, discount.ActivationEnrollmentPromotion, start, end)
	require.NoError(t, err)
	d.Status = status
	return d
}

func newTestScheduler(plRepo *fakePriceListRepository, dRepo *fakeDiscountRepository) *VigencyScheduler {
	validator := pricelist.NewVigencyValidator(plRepo)
	return NewVigencyScheduler(plRepo, dRepo, validator, time.Minute, logger.NewLogger())
}

func TestRunActivatesApprovedPriceList(t *testing.T) {
	pl := testPriceList(t, "Tabela 2026", pricelist.StatusApproved)
	plRepo := &fakePriceListRepository{
		approved: []*pricelist.PriceList{pl},
		statuses: map[string]pricelist.Status{},
	}
	dRepo := &fakeDiscountRepository{statuses: map[string]discount.Status{}}

	newTestScheduler(plRepo, dRepo).Run(context.Background(), time.Now())

	assert.Equal(t, pricelist.StatusActive, plRepo.statuses[pl.ID])
}

func TestRunSkipsActivationOnOverlap(t *testing.T) {
	pl := testPriceList(t, "Tabela 2026", pricelist.StatusApproved)
	conflicting := testPriceList(t, "Tabela vigente", pricelist.StatusActive)

	plRepo := &fakePriceListRepository{
		approved: []*pricelist.PriceList{pl},
		active:   []*pricelist.PriceList{conflicting},
		statuses: map[string]pricelist.Status{},
	}
	dRepo := &fakeDiscountRepository{statuses: map[string]discount.Status{}}

	newTestScheduler(plRepo, dRepo).Run(context.Background(), time.Now())

	// A lista aprovada não pode ativar enquanto outra cobre a mesma praça
	// no mesmo período
	_, changed := plRepo.statuses[pl.ID]
	assert.False(t, changed)
	assert.Equal(t, pricelist.StatusApproved, pl.Status)
}

func TestRunExpiresActivePriceList(t *testing.T) {
	pl := testPriceList(t, "Tabela 2025", pricelist.StatusActive)
	plRepo := &fakePriceListRepository{
		expiring: []*pricelist.PriceList{pl},
		statuses: map[string]pricelist.Status{},
	}
	dRepo := &fakeDiscountRepository{statuses: map[string]discount.Status{}}

	newTestScheduler(plRepo, dRepo).Run(context.Background(), time.Now())

	assert.Equal(t, pricelist.StatusInactive, plRepo.statuses[pl.ID])
}

func TestRunHandlesDiscountLifecycle(t *testing.T) {
	toActivate := testSchedulerDiscount(t, "Promoção de matrícula", discount.StatusApproved)
	toExpire := testSchedulerDiscount(t, "Campanha encerrada", discount.StatusActive)

	plRepo := &fakePriceListRepository{statuses: map[string]pricelist.Status{}}
	dRepo := &fakeDiscountRepository{
		approved: []*discount.Discount{toActivate},
		expiring: []*discount.Discount{toExpire},
		statuses: map[string]discount.Status{},
	}

	newTestScheduler(plRepo, dRepo).Run(context.Background(), time.Now())

	assert.Equal(t, discount.StatusActive, dRepo.statuses[toActivate.ID])
	assert.Equal(t, discount.StatusInactive, dRepo.statuses[toExpire.ID])
}
