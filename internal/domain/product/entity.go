package product

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName        = errors.New("nome não pode ser vazio")
	ErrInvalidType      = errors.New("tipo de produto inválido")
	ErrInvalidReference = errors.New("referência de produto inválida")
)

// Type define a modalidade de cobrança do produto
type Type string

const (
	// TypeStandard é um produto pago à vista, sem financiamento
	TypeStandard Type = "standard"
	// TypeFinanceable é um produto financiável: exige preço total,
	// matrícula e número de parcelas
	TypeFinanceable Type = "financeable"
)

// Status representa o estado do produto
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Product representa um item vendável do catálogo (curso, módulo ou avulso)
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Type      Type      `json:"type"`
	Reference Reference `json:"reference"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewProduct cria um novo produto
func NewProduct(name, code string, productType Type, ref Reference) (*Product, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if productType != TypeStandard && productType != TypeFinanceable {
		return nil, ErrInvalidType
	}
	if err := ref.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Product{
		ID:        uuid.New().String(),
		Name:      name,
		Code:      code,
		Type:      productType,
		Reference: ref,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsFinanceable verifica se o produto exige campos de financiamento
func (p *Product) IsFinanceable() bool {
	return p.Type == TypeFinanceable
}

// IsActive verifica se o produto está ativo
func (p *Product) IsActive() bool {
	return p.Status == StatusActive
}

// Update atualiza os dados do produto
func (p *Product) Update(name, code string, productType Type, ref Reference) error {
	if name == "" {
		return ErrEmptyName
	}
	if productType != TypeStandard && productType != TypeFinanceable {
		return ErrInvalidType
	}
	if err := ref.Validate(); err != nil {
		return err
	}

	p.Name = name
	p.Code = code
	p.Type = productType
	p.Reference = ref
	p.UpdatedAt = time.Now()
	return nil
}
