package discount

import (
	"context"
	"fmt"
	"time"

	"github.com/hugohenrick/erp-educacional/internal/domain/site"
)

// EligibilityInput agrupa o contexto de uma consulta de elegibilidade
type EligibilityInput struct {
	ProductID     string
	PriceListID   string
	SiteID        string // Opcional
	PopulationID  string // Opcional, usado quando a sede não é informada
	Now           time.Time
	PromoCode     string     // Opcional
	PaymentDate   *time.Time // Para descontos por pagamento antecipado
	ScheduledDate *time.Time // Data prevista do pagamento
}

// EligibilityResolver determina o conjunto de descontos aplicáveis a um
// produto dentro de uma lista de preço, dado o contexto de ativação. Todos
// os filtros do pipeline precisam passar; não há casamento parcial.
type EligibilityResolver struct {
	discounts Repository
	sites     site.Repository
}

// NewEligibilityResolver cria uma nova instância de EligibilityResolver
func NewEligibilityResolver(discounts Repository, sites site.Repository) *EligibilityResolver {
	return &EligibilityResolver{
		discounts: discounts,
		sites:     sites,
	}
}

// Resolve retorna os descontos elegíveis para o contexto informado. O
// resultado não tem ordem definida; a ordenação de aplicação é decidida pelo
// motor de acumulação. Um código promocional informado que não resulte em
// nenhum desconto elegível falha com ErrDiscountCodeInvalid.
func (r *EligibilityResolver) Resolve(ctx context.Context, in EligibilityInput) ([]*Discount, error) {
	candidates, err := r.discounts.FindUsableAt(ctx, in.Now)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar descontos vigentes: %w", err)
	}

	// Resolver a praça da sede uma única vez, apenas se necessária
	populationID := in.PopulationID
	populationResolved := populationID != ""

	promoMatched := false
	eligible := make([]*Discount, 0)
	for _, d := range candidates {
		if !d.PriceLists.Matches(in.PriceListID) {
			continue
		}
		if !d.IsUsableAt(in.Now) {
			continue
		}
		if !d.Products.Matches(in.ProductID) {
			continue
		}

		ok, err := r.matchesGeography(ctx, d, in, &populationID, &populationResolved)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		if !r.matchesActivation(d, in) {
			continue
		}

		if d.Activation == ActivationPromoCode {
			promoMatched = true
		}
		eligible = append(eligible, d)
	}

	if in.PromoCode != "" && !promoMatched {
		return nil, ErrDiscountCodeInvalid
	}

	return eligible, nil
}

// matchesGeography aplica o eixo geográfico do escopo: restrição por sede
// tem precedência; na ausência dela, a restrição por praça usa a praça da
// sede informada ou a praça fornecida diretamente
func (r *EligibilityResolver) matchesGeography(ctx context.Context, d *Discount, in EligibilityInput, populationID *string, resolved *bool) (bool, error) {
	if d.Sites.IsRestricted() {
		if in.SiteID == "" {
			return false, nil
		}
		return d.Sites.Matches(in.SiteID), nil
	}

	if !d.Populations.IsRestricted() {
		return true, nil
	}

	if !*resolved {
		if in.SiteID == "" {
			return false, nil
		}
		s, err := r.sites.FindByID(ctx, in.SiteID)
		if err != nil {
			return false, fmt.Errorf("erro ao resolver praça da sede: %w", err)
		}
		*populationID = s.PopulationID
		*resolved = true
	}

	return d.Populations.Matches(*populationID), nil
}

// matchesActivation verifica a condição de ativação do desconto
func (r *EligibilityResolver) matchesActivation(d *Discount, in EligibilityInput) bool {
	switch d.Activation {
	case ActivationPromoCode:
		return in.PromoCode != "" && d.MatchesCode(in.PromoCode)
	case ActivationEarlyPayment:
		if in.PaymentDate == nil || in.ScheduledDate == nil {
			return false
		}
		return d.QualifiesEarlyPayment(*in.PaymentDate, *in.ScheduledDate)
	case ActivationEnrollmentPromotion:
		return true
	}
	return false
}
