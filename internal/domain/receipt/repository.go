package receipt

import (
	"context"

	"github.com/hugohenrick/erp-educacional/internal/domain/site"
)

// Repository define as operações de persistência para recibos de pagamento
type Repository interface {
	// Create numera e persiste o recibo com suas linhas em uma única
	// transação serializada: a reserva da sequência da partição sede+origem
	// e a inserção do recibo ocorrem sob o mesmo bloqueio. Preenche Number,
	// Sequence e Prefix no recibo informado.
	Create(ctx context.Context, receipt *PaymentReceipt) error

	// FindByID busca um recibo pelo ID, incluindo todas as linhas
	FindByID(ctx context.Context, id string) (*PaymentReceipt, error)

	// FindByNumber busca um recibo pelo número dentro de uma sede e origem
	FindByNumber(ctx context.Context, siteID string, origin site.Origin, number string) (*PaymentReceipt, error)

	// ListBySite retorna uma lista paginada de recibos de uma sede
	ListBySite(ctx context.Context, siteID string, limit, offset int) ([]*PaymentReceipt, error)

	// CountBySite retorna o número total de recibos de uma sede
	CountBySite(ctx context.Context, siteID string) (int, error)

	// UpdateLines substitui as linhas de um recibo em elaboração e grava os
	// totais recalculados. Falha com ErrNotEditable se o recibo não está
	// mais em elaboração no momento da escrita.
	UpdateLines(ctx context.Context, receipt *PaymentReceipt) error

	// TransitionStatus muda o status do recibo somente se ele ainda estiver
	// no status esperado (semântica compare-and-swap). Retorna
	// ErrStatusConflict quando o estado mudou por outra operação.
	TransitionStatus(ctx context.Context, id string, expected, next Status, closingBatch string) error

	// Delete remove um recibo ainda em elaboração. Recibos emitidos não
	// podem ser removidos.
	Delete(ctx context.Context, id string) error
}
