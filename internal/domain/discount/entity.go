package discount

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName           = errors.New("nome não pode ser vazio")
	ErrInvalidKind         = errors.New("tipo de desconto inválido")
	ErrInvalidTarget       = errors.New("alvo de aplicação inválido")
	ErrInvalidActivation   = errors.New("tipo de ativação inválido")
	ErrInvalidValue        = errors.New("valor do desconto deve ser maior que zero")
	ErrInvalidPercentage   = errors.New("percentual de desconto deve estar entre 0 e 100")
	ErrInvalidDateRange    = errors.New("data final anterior à data inicial")
	ErrInvalidAdvanceDays  = errors.New("antecedência mínima deve ser maior que zero para pagamento antecipado")
	ErrInvalidStatusChange = errors.New("transição de status inválida para o desconto")
	ErrDiscountCodeInvalid = errors.New("código promocional não confere")
)

// Kind define como o valor do desconto é interpretado
type Kind string

const (
	KindPercentage  Kind = "percentage"   // Valor é um percentual sobre a base
	KindFixedAmount Kind = "fixed_amount" // Valor é um montante fixo
)

// Target define sobre qual componente de cobrança o desconto incide
type Target string

const (
	TargetTotalPrice    Target = "total_price"
	TargetEnrollmentFee Target = "enrollment_fee"
	TargetInstallment   Target = "installment"
)

// Activation define a condição de ativação do desconto
type Activation string

const (
	ActivationEarlyPayment        Activation = "early_payment"        // Pagamento com antecedência mínima
	ActivationEnrollmentPromotion Activation = "enrollment_promotion" // Promoção de matrícula, sem condição extra
	ActivationPromoCode           Activation = "promo_code"           // Exige código promocional
)

// Status representa o ciclo de vida do desconto
type Status string

const (
	StatusInProcess Status = "in_process"
	StatusApproved  Status = "approved"
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
)

// Discount representa uma regra de redução sobre preço total, matrícula ou
// parcela, sujeita a escopo e condição de ativação
type Discount struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Code           string     `json:"code"` // Código promocional (opcional, único)
	Description    string     `json:"description"`
	Kind           Kind       `json:"kind"`
	Value          float64    `json:"value"`
	Target         Target     `json:"target"`
	Activation     Activation `json:"activation"`
	MinAdvanceDays int        `json:"min_advance_days"` // Apenas para pagamento antecipado
	Accumulable    bool       `json:"accumulable"`      // Pode acumular com outros descontos acumuláveis
	StartDate      time.Time  `json:"start_date"`
	EndDate        time.Time  `json:"end_date"`
	Status         Status     `json:"status"`

	// Escopos de aplicação: conjunto vazio significa sem restrição no eixo
	PriceLists  Scope `json:"price_lists"`
	Products    Scope `json:"products"`
	Sites       Scope `json:"sites"`
	Populations Scope `json:"populations"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDiscount cria um novo desconto em elaboração
func NewDiscount(name string, kind Kind, value float64, target Target, activation Activation, startDate, endDate time.Time) (*Discount, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if kind != KindPercentage && kind != KindFixedAmount {
		return nil, ErrInvalidKind
	}
	if target != TargetTotalPrice && target != TargetEnrollmentFee && target != TargetInstallment {
		return nil, ErrInvalidTarget
	}
	if activation != ActivationEarlyPayment && activation != ActivationEnrollmentPromotion && activation != ActivationPromoCode {
		return nil, ErrInvalidActivation
	}
	if value <= 0 {
		return nil, ErrInvalidValue
	}
	if kind == KindPercentage && value > 100 {
		return nil, ErrInvalidPercentage
	}
	if endDate.Before(startDate) {
		return nil, ErrInvalidDateRange
	}

	now := time.Now()
	return &Discount{
		ID:         uuid.New().String(),
		Name:       name,
		Kind:       kind,
		Value:      value,
		Target:     target,
		Activation: activation,
		StartDate:  startDate,
		EndDate:    endDate,
		Status:     StatusInProcess,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Approve aprova o desconto para entrar em vigência
func (d *Discount) Approve() error {
	if d.Status != StatusInProcess {
		return ErrInvalidStatusChange
	}
	d.Status = StatusApproved
	d.UpdatedAt = time.Now()
	return nil
}

// Activate coloca o desconto em vigência
func (d *Discount) Activate() error {
	if d.Status != StatusApproved {
		return ErrInvalidStatusChange
	}
	d.Status = StatusActive
	d.UpdatedAt = time.Now()
	return nil
}

// Deactivate encerra a vigência do desconto
func (d *Discount) Deactivate() error {
	if d.Status != StatusActive {
		return ErrInvalidStatusChange
	}
	d.Status = StatusInactive
	d.UpdatedAt = time.Now()
	return nil
}

// IsUsableAt verifica se o desconto está ativo e dentro da vigência
func (d *Discount) IsUsableAt(t time.Time) bool {
	return d.Status == StatusActive && !t.Before(d.StartDate) && !t.After(d.EndDate)
}

// AmountFor calcula o montante do desconto sobre a base informada, nunca
// excedendo a própria base
func (d *Discount) AmountFor(base float64) float64 {
	if base <= 0 {
		return 0
	}

	var amount float64
	switch d.Kind {
	case KindPercentage:
		amount = base * d.Value / 100
	case KindFixedAmount:
		amount = d.Value
	}

	if amount > base {
		return base
	}
	return amount
}

// MatchesCode compara o código promocional fornecido com o do desconto,
// ignorando espaços nas extremidades e diferença de caixa
func (d *Discount) MatchesCode(code string) bool {
	if d.Code == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(code), strings.TrimSpace(d.Code))
}

// QualifiesEarlyPayment verifica se o pagamento foi feito com a antecedência
// mínima exigida em relação à data prevista
func (d *Discount) QualifiesEarlyPayment(paymentDate, scheduledDate time.Time) bool {
	days := int(scheduledDate.Sub(paymentDate).Hours() / 24)
	return days >= d.MinAdvanceDays
}
