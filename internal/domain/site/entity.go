package site

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName         = errors.New("nome não pode ser vazio")
	ErrEmptyPopulation   = errors.New("praça é obrigatória")
	ErrInvalidOrigin     = errors.New("origem de recibo inválida")
	ErrMissingSitePrefix = errors.New("sede não possui prefixo de numeração configurado para esta origem")
)

// Origin classifica o contexto de negócio de um recibo. Cada origem mantém
// uma sequência de numeração independente por sede.
type Origin string

const (
	OriginInventory Origin = "inventory" // Venda de inventário
	OriginAcademic  Origin = "academic"  // Pagamento acadêmico
)

// ParseOrigin converte uma string em Origin
func ParseOrigin(s string) (Origin, error) {
	switch Origin(s) {
	case OriginInventory, OriginAcademic:
		return Origin(s), nil
	}
	return "", ErrInvalidOrigin
}

// Status representa o estado da sede
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Site representa uma sede (campus) que emite recibos e abriga áreas
type Site struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Code            string    `json:"code"`
	PopulationID    string    `json:"population_id"`    // Praça (cidade/região) à qual a sede pertence
	InventoryPrefix string    `json:"inventory_prefix"` // Prefixo de numeração para recibos de inventário
	AcademicPrefix  string    `json:"academic_prefix"`  // Prefixo de numeração para recibos acadêmicos
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewSite cria uma nova sede
func NewSite(name, code, populationID string) (*Site, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if populationID == "" {
		return nil, ErrEmptyPopulation
	}

	now := time.Now()
	return &Site{
		ID:           uuid.New().String(),
		Name:         name,
		Code:         code,
		PopulationID: populationID,
		Status:       StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// PrefixFor retorna o prefixo de numeração configurado para a origem informada
func (s *Site) PrefixFor(origin Origin) (string, error) {
	var prefix string
	switch origin {
	case OriginInventory:
		prefix = s.InventoryPrefix
	case OriginAcademic:
		prefix = s.AcademicPrefix
	default:
		return "", ErrInvalidOrigin
	}

	if prefix == "" {
		return "", ErrMissingSitePrefix
	}
	return prefix, nil
}

// ConfigurePrefixes define os prefixos de numeração por origem
func (s *Site) ConfigurePrefixes(inventory, academic string) {
	s.InventoryPrefix = inventory
	s.AcademicPrefix = academic
	s.UpdatedAt = time.Now()
}

// IsActive verifica se a sede está ativa
func (s *Site) IsActive() bool {
	return s.Status == StatusActive
}

// Update atualiza os dados da sede
func (s *Site) Update(name, code, populationID string) error {
	if name == "" {
		return ErrEmptyName
	}
	if populationID == "" {
		return ErrEmptyPopulation
	}

	s.Name = name
	s.Code = code
	s.PopulationID = populationID
	s.UpdatedAt = time.Now()
	return nil
}
