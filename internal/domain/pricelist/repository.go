package pricelist

import (
	"context"
	"time"
)

// Repository define as operações de persistência para listas de preço
type Repository interface {
	// Create persiste uma nova lista de preço
	Create(ctx context.Context, priceList *PriceList) error

	// FindByID busca uma lista pelo ID, incluindo seus preços
	FindByID(ctx context.Context, id string) (*PriceList, error)

	// FindByCode busca uma lista pelo código único
	FindByCode(ctx context.Context, code string) (*PriceList, error)

	// FindActiveByPopulation retorna as listas ativas que cobrem a praça,
	// excluindo excludeID quando não vazio
	FindActiveByPopulation(ctx context.Context, populationID, excludeID string) ([]*PriceList, error)

	// List retorna uma lista paginada
	List(ctx context.Context, limit, offset int) ([]*PriceList, error)

	// Count retorna o número total de listas
	Count(ctx context.Context) (int, error)

	// Update atualiza uma lista existente
	Update(ctx context.Context, priceList *PriceList) error

	// UpdateStatus atualiza o status de uma lista
	UpdateStatus(ctx context.Context, id string, status Status) error

	// Delete remove uma lista (e seus preços, por posse exclusiva)
	Delete(ctx context.Context, id string) error

	// ListApprovedToActivate retorna listas aprovadas cuja vigência já começou
	ListApprovedToActivate(ctx context.Context, now time.Time) ([]*PriceList, error)

	// ListActiveToExpire retorna listas ativas cuja vigência já terminou
	ListActiveToExpire(ctx context.Context, now time.Time) ([]*PriceList, error)

	// SavePrice cria ou atualiza o preço de um produto na lista
	SavePrice(ctx context.Context, price *ProductPrice) error

	// FindPrice busca o preço de um produto dentro de uma lista
	FindPrice(ctx context.Context, priceListID, productID string) (*ProductPrice, error)

	// DeletePrice remove o preço de um produto da lista
	DeletePrice(ctx context.Context, priceListID, productID string) error
}
