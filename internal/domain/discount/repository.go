package discount

import (
	"context"
	"time"
)

// Repository define as operações de persistência para descontos
type Repository interface {
	// Create persiste um novo desconto com seus escopos
	Create(ctx context.Context, discount *Discount) error

	// FindByID busca um desconto pelo ID
	FindByID(ctx context.Context, id string) (*Discount, error)

	// FindByCode busca um desconto pelo código promocional
	FindByCode(ctx context.Context, code string) (*Discount, error)

	// FindUsableAt retorna os descontos ativos e vigentes no instante dado
	FindUsableAt(ctx context.Context, at time.Time) ([]*Discount, error)

	// List retorna uma lista paginada de descontos
	List(ctx context.Context, limit, offset int) ([]*Discount, error)

	// Count retorna o número total de descontos
	Count(ctx context.Context) (int, error)

	// Update atualiza um desconto existente e seus escopos
	Update(ctx context.Context, discount *Discount) error

	// UpdateStatus atualiza o status de um desconto
	UpdateStatus(ctx context.Context, id string, status Status) error

	// Delete remove um desconto
	Delete(ctx context.Context, id string) error

	// ListApprovedToActivate retorna descontos aprovados cuja vigência já começou
	ListApprovedToActivate(ctx context.Context, now time.Time) ([]*Discount, error)

	// ListActiveToExpire retorna descontos ativos cuja vigência já terminou
	ListActiveToExpire(ctx context.Context, now time.Time) ([]*Discount, error)
}

// ApplicationRepository define a persistência dos registros de aplicação de
// desconto. Registros são imutáveis: apenas inserção e consulta.
type ApplicationRepository interface {
	// Create persiste um registro de aplicação
	Create(ctx context.Context, application *Application) error

	// ListByConcept retorna as aplicações registradas para um conceito cobrado
	ListByConcept(ctx context.Context, conceptType ConceptType, conceptID string) ([]*Application, error)

	// ListByDiscount retorna as aplicações de um desconto
	ListByDiscount(ctx context.Context, discountID string, limit, offset int) ([]*Application, error)
}
