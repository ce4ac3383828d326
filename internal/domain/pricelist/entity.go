package pricelist

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName              = errors.New("nome não pode ser vazio")
	ErrEmptyPopulations       = errors.New("lista de preço deve cobrir ao menos uma praça")
	ErrInvalidDateRange       = errors.New("data final anterior à data inicial")
	ErrOverlappingVigency     = errors.New("vigência conflita com outra lista de preço ativa para a mesma praça")
	ErrInvalidStatusChange    = errors.New("transição de status inválida para a lista de preço")
	ErrMissingFinancingFields = errors.New("produto financiável exige preço total, matrícula e número de parcelas")
	ErrEnrollmentExceedsTotal = errors.New("matrícula não pode exceder o preço total")
)

// Status representa o ciclo de vida de uma lista de preço
type Status string

const (
	StatusInProcess Status = "in_process" // Em elaboração
	StatusApproved  Status = "approved"   // Aprovada, aguardando início da vigência
	StatusActive    Status = "active"     // Vigente
	StatusInactive  Status = "inactive"   // Vigência encerrada
)

// PriceList representa um catálogo datado de preços de produtos, válido para
// uma ou mais praças
type PriceList struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Code          string          `json:"code"`
	StartDate     time.Time       `json:"start_date"`
	EndDate       time.Time       `json:"end_date"`
	Status        Status          `json:"status"`
	PopulationIDs []string        `json:"population_ids"`
	Prices        []*ProductPrice `json:"prices,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// NewPriceList cria uma nova lista de preço em elaboração
func NewPriceList(name, code string, startDate, endDate time.Time, populationIDs []string) (*PriceList, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if endDate.Before(startDate) {
		return nil, ErrInvalidDateRange
	}
	if len(populationIDs) == 0 {
		return nil, ErrEmptyPopulations
	}

	now := time.Now()
	return &PriceList{
		ID:            uuid.New().String(),
		Name:          name,
		Code:          code,
		StartDate:     startDate,
		EndDate:       endDate,
		Status:        StatusInProcess,
		PopulationIDs: populationIDs,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Approve aprova a lista para entrar em vigência quando a data inicial chegar
func (pl *PriceList) Approve() error {
	if pl.Status != StatusInProcess {
		return ErrInvalidStatusChange
	}
	pl.Status = StatusApproved
	pl.UpdatedAt = time.Now()
	return nil
}

// Activate coloca a lista em vigência. A checagem de sobreposição deve ser
// refeita imediatamente antes desta transição (ver VigencyValidator).
func (pl *PriceList) Activate() error {
	if pl.Status != StatusApproved {
		return ErrInvalidStatusChange
	}
	pl.Status = StatusActive
	pl.UpdatedAt = time.Now()
	return nil
}

// Deactivate encerra a vigência da lista
func (pl *PriceList) Deactivate() error {
	if pl.Status != StatusActive {
		return ErrInvalidStatusChange
	}
	pl.Status = StatusInactive
	pl.UpdatedAt = time.Now()
	return nil
}

// IsActive verifica se a lista está vigente
func (pl *PriceList) IsActive() bool {
	return pl.Status == StatusActive
}

// CoversPopulation verifica se a lista cobre a praça informada
func (pl *PriceList) CoversPopulation(populationID string) bool {
	for _, id := range pl.PopulationIDs {
		if id == populationID {
			return true
		}
	}
	return false
}

// OverlapsRange verifica se a vigência da lista intersecta o intervalo
// informado (teste padrão de sobreposição de intervalos fechados)
func (pl *PriceList) OverlapsRange(start, end time.Time) bool {
	startInside := !pl.StartDate.Before(start) && !pl.StartDate.After(end)
	endInside := !pl.EndDate.Before(start) && !pl.EndDate.After(end)
	contains := pl.StartDate.Before(start) && pl.EndDate.After(end)
	return startInside || endInside || contains
}

// Update atualiza os dados básicos da lista
func (pl *PriceList) Update(name, code string, startDate, endDate time.Time, populationIDs []string) error {
	if name == "" {
		return ErrEmptyName
	}
	if endDate.Before(startDate) {
		return ErrInvalidDateRange
	}
	if len(populationIDs) == 0 {
		return ErrEmptyPopulations
	}

	pl.Name = name
	pl.Code = code
	pl.StartDate = startDate
	pl.EndDate = endDate
	pl.PopulationIDs = populationIDs
	pl.UpdatedAt = time.Now()
	return nil
}

// ProductPrice representa o preço de um produto dentro de uma lista de preço
type ProductPrice struct {
	ID                string     `json:"id"`
	PriceListID       string     `json:"price_list_id"`
	ProductID         string     `json:"product_id"`
	CashPrice         float64    `json:"cash_price"`
	TotalPrice        *float64   `json:"total_price,omitempty"`       // Preço total financiado
	EnrollmentFee     float64    `json:"enrollment_fee"`              // Matrícula (pode ser 0)
	InstallmentCount  *int       `json:"installment_count,omitempty"` // Número de parcelas
	InstallmentAmount float64    `json:"installment_amount"`          // Valor da parcela (calculado)
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// NewProductPrice cria um novo preço de produto dentro de uma lista. Para
// produtos financiáveis o valor da parcela é calculado; para os demais os
// campos de financiamento são zerados independentemente da entrada.
func NewProductPrice(priceListID, productID string, cashPrice float64, totalPrice *float64, enrollmentFee float64, installmentCount *int, financeable bool) (*ProductPrice, error) {
	now := time.Now()
	pp := &ProductPrice{
		ID:               uuid.New().String(),
		PriceListID:      priceListID,
		ProductID:        productID,
		CashPrice:        cashPrice,
		TotalPrice:       totalPrice,
		EnrollmentFee:    enrollmentFee,
		InstallmentCount: installmentCount,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := pp.Recompute(financeable); err != nil {
		return nil, err
	}
	return pp, nil
}

// Recompute valida os campos de financiamento e recalcula o valor da
// parcela. Deve ser chamado em toda criação ou alteração do preço.
func (pp *ProductPrice) Recompute(financeable bool) error {
	if !financeable {
		pp.TotalPrice = nil
		pp.InstallmentCount = nil
		pp.InstallmentAmount = 0
		return nil
	}

	if pp.TotalPrice == nil || pp.InstallmentCount == nil {
		return ErrMissingFinancingFields
	}
	if *pp.TotalPrice < pp.EnrollmentFee {
		return ErrEnrollmentExceedsTotal
	}

	amount, err := ComputeInstallment(*pp.TotalPrice, pp.EnrollmentFee, *pp.InstallmentCount)
	if err != nil {
		return err
	}
	pp.InstallmentAmount = amount
	pp.UpdatedAt = time.Now()
	return nil
}
