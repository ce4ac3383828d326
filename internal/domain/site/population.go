package site

import (
	"time"

	"github.com/google/uuid"
)

// Population representa uma praça (cidade/região) que agrupa uma ou mais
// sedes, usada no escopo geográfico de listas de preço e descontos
type Population struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPopulation cria uma nova praça
func NewPopulation(name, state string) (*Population, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	now := time.Now()
	return &Population{
		ID:        uuid.New().String(),
		Name:      name,
		State:     state,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
