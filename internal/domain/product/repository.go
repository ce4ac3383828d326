package product

import (
	"context"
)

// Repository define as operações de persistência para produtos
type Repository interface {
	// Create persiste um novo produto
	Create(ctx context.Context, product *Product) error

	// FindByID busca um produto pelo ID
	FindByID(ctx context.Context, id string) (*Product, error)

	// FindByCode busca um produto pelo código
	FindByCode(ctx context.Context, code string) (*Product, error)

	// List retorna uma lista paginada de produtos
	List(ctx context.Context, limit, offset int) ([]*Product, error)

	// Count retorna o número total de produtos
	Count(ctx context.Context) (int, error)

	// Update atualiza um produto existente
	Update(ctx context.Context, product *Product) error

	// UpdateStatus atualiza o status de um produto
	UpdateStatus(ctx context.Context, id string, status Status) error

	// Delete remove um produto
	Delete(ctx context.Context, id string) error

	// Exists verifica se um produto existe pelo ID
	Exists(ctx context.Context, id string) (bool, error)
}
