package discount

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/erp-educacional/internal/domain/site"
)

// fakeDiscountRepository implementa Repository em memória
type fakeDiscountRepository struct {
	Repository
	discounts []*Discount
}

func (f *fakeDiscountRepository) FindUsableAt(_ context.Context, at time.Time) ([]*Discount, error) {
	result := make([]*Discount, 0)
	for _, d := range f.discounts {
		if d.IsUsableAt(at) {
			result = append(result, d)
		}
	}
	return result, nil
}

// fakeSiteRepository implementa site.Repository em memória
type fakeSiteRepository struct {
	site.Repository
	sites map[string]*site.Site
}

func (f *fakeSiteRepository) FindByID(_ context.Context, id string) (*site.Site, error) {
	s, ok := f.sites[id]
	if !ok {
		return nil, errors.New("sede não encontrada")
	}
	return s, nil
}

func activeDiscount(t *testing.T, name string, activation Activation) *Discount {
	t.Helper()
	start := time.Now().AddDate(0, -1, 0)
	end := time.Now().AddDate(0, 1, 0)
	d, err := NewDiscount(name, KindPercentage, 10, TargetTotalPrice, activation, start, end)
	require.NoError(t, err)
	d.Status = StatusActive
	return d
}

func newResolver(discounts []*Discount, sites map[string]*site.Site) *EligibilityResolver {
	return NewEligibilityResolver(
		&fakeDiscountRepository{discounts: discounts},
		&fakeSiteRepository{sites: sites},
	)
}

func baseInput() EligibilityInput {
	return EligibilityInput{
		ProductID:   "prod-1",
		PriceListID: "pl-1",
		Now:         time.Now(),
	}
}

func TestResolveUnrestrictedScopes(t *testing.T) {
	d := activeDiscount(t, "Promoção geral", ActivationEnrollmentPromotion)
	resolver := newResolver([]*Discount{d}, nil)

	eligible, err := resolver.Resolve(context.Background(), baseInput())
	require.NoError(t, err)
	assert.Len(t, eligible, 1)
}

func TestResolveProductScope(t *testing.T) {
	d := activeDiscount(t, "Só prod-2", ActivationEnrollmentPromotion)
	d.Products = Scope{"prod-2"}
	resolver := newResolver([]*Discount{d}, nil)

	t.Run("produto fora do escopo é excluído", func(t *testing.T) {
		eligible, err := resolver.Resolve(context.Background(), baseInput())
		require.NoError(t, err)
		assert.Empty(t, eligible)
	})

	t.Run("produto no escopo é incluído", func(t *testing.T) {
		in := baseInput()
		in.ProductID = "prod-2"
		eligible, err := resolver.Resolve(context.Background(), in)
		require.NoError(t, err)
		assert.Len(t, eligible, 1)
	})
}

func TestResolvePriceListScope(t *testing.T) {
	d := activeDiscount(t, "Só pl-2", ActivationEnrollmentPromotion)
	d.PriceLists = Scope{"pl-2"}
	resolver := newResolver([]*Discount{d}, nil)

	eligible, err := resolver.Resolve(context.Background(), baseInput())
	require.NoError(t, err)
	assert.Empty(t, eligible)
}

func TestResolveSiteAndPopulationScope(t *testing.T) {
	sites := map[string]*site.Site{
		"site-1": {ID: "site-1", PopulationID: "pop-1"},
		"site-2": {ID: "site-2", PopulationID: "pop-2"},
	}

	t.Run("escopo de sede tem precedência", func(t *testing.T) {
		d := activeDiscount(t, "Só site-1", ActivationEnrollmentPromotion)
		d.Sites = Scope{"site-1"}
		resolver := newResolver([]*Discount{d}, sites)

		in := baseInput()
		in.SiteID = "site-1"
		eligible, err := resolver.Resolve(context.Background(), in)
		require.NoError(t, err)
		assert.Len(t, eligible, 1)

		in.SiteID = "site-2"
		eligible, err = resolver.Resolve(context.Background(), in)
		require.NoError(t, err)
		assert.Empty(t, eligible)
	})

	t.Run("escopo de praça resolve a praça da sede", func(t *testing.T) {
		d := activeDiscount(t, "Só pop-1", ActivationEnrollmentPromotion)
		d.Populations = Scope{"pop-1"}
		resolver := newResolver([]*Discount{d}, sites)

		in := baseInput()
		in.SiteID = "site-1"
		eligible, err := resolver.Resolve(context.Background(), in)
		require.NoError(t, err)
		assert.Len(t, eligible, 1)

		in.SiteID = "site-2"
		eligible, err = resolver.Resolve(context.Background(), in)
		require.NoError(t, err)
		assert.Empty(t, eligible)
	})

	t.Run("praça informada diretamente sem sede", func(t *testing.T) {
		d := activeDiscount(t, "Só pop-1", ActivationEnrollmentPromotion)
		d.Populations = Scope{"pop-1"}
		resolver := newResolver([]*Discount{d}, sites)

		in := baseInput()
		in.PopulationID = "pop-1"
		eligible, err := resolver.Resolve(context.Background(), in)
		require.NoError(t, err)
		assert.Len(t, eligible, 1)
	})

	t.Run("escopo restrito sem sede nem praça exclui", func(t *testing.T) {
		d := activeDiscount(t, "Só pop-1", ActivationEnrollmentPromotion)
		d.Populations = Scope{"pop-1"}
		resolver := newResolver([]*Discount{d}, sites)

		eligible, err := resolver.Resolve(context.Background(), baseInput())
		require.NoError(t, err)
		assert.Empty(t, eligible)
	})
}

func TestResolvePromoCode(t *testing.T) {
	d := activeDiscount(t, "Com código", ActivationPromoCode)
	d.Code = "SAVE10"
	resolver := newResolver([]*Discount{d}, nil)

	t.Run("código com espaços e caixa diferente confere", func(t *testing.T) {
		in := baseInput()
		in.PromoCode = " save10 "
		eligible, err := resolver.Resolve(context.Background(), in)
		require.NoError(t, err)
		assert.Len(t, eligible, 1)
	})

	t.Run("código errado falha com ErrDiscountCodeInvalid", func(t *testing.T) {
		in := baseInput()
		in.PromoCode = "OUTRO"
		_, err := resolver.Resolve(context.Background(), in)
		assert.ErrorIs(t, err, ErrDiscountCodeInvalid)
	})

	t.Run("sem código exclui", func(t *testing.T) {
		eligible, err := resolver.Resolve(context.Background(), baseInput())
		require.NoError(t, err)
		assert.Empty(t, eligible)
	})

	t.Run("código confere mas escopo exclui", func(t *testing.T) {
		restricted := activeDiscount(t, "Código restrito", ActivationPromoCode)
		restricted.Code = "SAVE10"
		restricted.Products = Scope{"outro-produto"}
		scoped := newResolver([]*Discount{restricted}, nil)

		in := baseInput()
		in.PromoCode = "SAVE10"
		_, err := scoped.Resolve(context.Background(), in)
		assert.ErrorIs(t, err, ErrDiscountCodeInvalid)
	})
}

func TestResolveEarlyPayment(t *testing.T) {
	d := activeDiscount(t, "Pagamento antecipado", ActivationEarlyPayment)
	d.MinAdvanceDays = 10
	resolver := newResolver([]*Discount{d}, nil)

	scheduled := time.Now().AddDate(0, 0, 30)

	t.Run("antecedência suficiente inclui", func(t *testing.T) {
		payment := scheduled.AddDate(0, 0, -15)
		in := baseInput()
		in.PaymentDate = &payment
		in.ScheduledDate = &scheduled
		eligible, err := resolver.Resolve(context.Background(), in)
		require.NoError(t, err)
		assert.Len(t, eligible, 1)
	})

	t.Run("antecedência insuficiente exclui", func(t *testing.T) {
		payment := scheduled.AddDate(0, 0, -5)
		in := baseInput()
		in.PaymentDate = &payment
		in.ScheduledDate = &scheduled
		eligible, err := resolver.Resolve(context.Background(), in)
		require.NoError(t, err)
		assert.Empty(t, eligible)
	})

	t.Run("sem datas exclui", func(t *testing.T) {
		eligible, err := resolver.Resolve(context.Background(), baseInput())
		require.NoError(t, err)
		assert.Empty(t, eligible)
	})
}

func TestResolveVigency(t *testing.T) {
	expired := activeDiscount(t, "Expirado", ActivationEnrollmentPromotion)
	expired.StartDate = time.Now().AddDate(0, -2, 0)
	expired.EndDate = time.Now().AddDate(0, -1, 0)

	inactive := activeDiscount(t, "Inativo", ActivationEnrollmentPromotion)
	inactive.Status = StatusInactive

	resolver := newResolver([]*Discount{expired, inactive}, nil)

	eligible, err := resolver.Resolve(context.Background(), baseInput())
	require.NoError(t, err)
	assert.Empty(t, eligible)
}

func TestScopeMatches(t *testing.T) {
	t.Run("escopo vazio casa com qualquer candidato", func(t *testing.T) {
		var s Scope
		assert.True(t, s.Matches("qualquer"))
		assert.False(t, s.IsRestricted())
	})

	t.Run("escopo restrito casa apenas com membros", func(t *testing.T) {
		s := Scope{"a", "b"}
		assert.True(t, s.Matches("a"))
		assert.False(t, s.Matches("c"))
		assert.True(t, s.IsRestricted())
	})
}
