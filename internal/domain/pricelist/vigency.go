package pricelist

import (
	"context"
	"fmt"
	"time"
)

// VigencyValidator valida que a vigência de uma lista de preço não se
// sobrepõe a outra lista ativa cobrindo a mesma praça. Apenas listas com
// status ativo participam da checagem; listas em elaboração, aprovadas ou
// inativas nunca bloqueiam.
type VigencyValidator struct {
	repository Repository
}

// NewVigencyValidator cria uma nova instância de VigencyValidator
func NewVigencyValidator(repository Repository) *VigencyValidator {
	return &VigencyValidator{
		repository: repository,
	}
}

// HasOverlap verifica se o intervalo [startDate, endDate] intersecta a
// vigência de alguma lista ativa da praça, excluindo excludePriceListID
// (usado ao validar a alteração de uma lista existente; vazio em criações)
func (v *VigencyValidator) HasOverlap(ctx context.Context, populationID string, startDate, endDate time.Time, excludePriceListID string) (bool, error) {
	if endDate.Before(startDate) {
		return false, ErrInvalidDateRange
	}

	active, err := v.repository.FindActiveByPopulation(ctx, populationID, excludePriceListID)
	if err != nil {
		return false, fmt.Errorf("erro ao buscar listas ativas da praça: %w", err)
	}

	for _, pl := range active {
		if pl.OverlapsRange(startDate, endDate) {
			return true, nil
		}
	}
	return false, nil
}

// ValidateNoOverlap retorna ErrOverlappingVigency se o intervalo conflitar
// com alguma lista ativa da praça
func (v *VigencyValidator) ValidateNoOverlap(ctx context.Context, populationID string, startDate, endDate time.Time, excludePriceListID string) error {
	overlap, err := v.HasOverlap(ctx, populationID, startDate, endDate, excludePriceListID)
	if err != nil {
		return err
	}
	if overlap {
		return ErrOverlappingVigency
	}
	return nil
}

// ValidateForActivation reexecuta a checagem de sobreposição para todas as
// praças cobertas pela lista imediatamente antes da transição para ativo,
// mitigando a corrida entre a validação original e a ativação
func (v *VigencyValidator) ValidateForActivation(ctx context.Context, pl *PriceList) error {
	for _, populationID := range pl.PopulationIDs {
		if err := v.ValidateNoOverlap(ctx, populationID, pl.StartDate, pl.EndDate, pl.ID); err != nil {
			return err
		}
	}
	return nil
}
