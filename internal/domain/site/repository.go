package site

import (
	"context"
)

// Repository define as operações de persistência para sedes
type Repository interface {
	// Create persiste uma nova sede
	Create(ctx context.Context, site *Site) error

	// FindByID busca uma sede pelo ID
	FindByID(ctx context.Context, id string) (*Site, error)

	// FindByPopulation retorna as sedes de uma praça
	FindByPopulation(ctx context.Context, populationID string) ([]*Site, error)

	// List retorna uma lista paginada de sedes
	List(ctx context.Context, limit, offset int) ([]*Site, error)

	// Count retorna o número total de sedes
	Count(ctx context.Context) (int, error)

	// Update atualiza uma sede existente
	Update(ctx context.Context, site *Site) error

	// UpdateStatus atualiza o status de uma sede
	UpdateStatus(ctx context.Context, id string, status Status) error

	// Delete remove uma sede
	Delete(ctx context.Context, id string) error

	// Exists verifica se uma sede existe pelo ID
	Exists(ctx context.Context, id string) (bool, error)
}

// PopulationRepository define as operações de persistência para praças
type PopulationRepository interface {
	// Create persiste uma nova praça
	Create(ctx context.Context, population *Population) error

	// FindByID busca uma praça pelo ID
	FindByID(ctx context.Context, id string) (*Population, error)

	// List retorna uma lista paginada de praças
	List(ctx context.Context, limit, offset int) ([]*Population, error)

	// Update atualiza uma praça existente
	Update(ctx context.Context, population *Population) error

	// Delete remove uma praça
	Delete(ctx context.Context, id string) error

	// Exists verifica se uma praça existe pelo ID
	Exists(ctx context.Context, id string) (bool, error)
}
