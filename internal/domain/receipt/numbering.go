package receipt

import (
	"context"
	"fmt"

	"github.com/hugohenrick/erp-educacional/internal/domain/site"
)

// Number é o identificador sequencial de um recibo dentro de uma partição
// sede+origem
type Number struct {
	Full     string `json:"full"`
	Sequence int    `json:"sequence"`
	Prefix   string `json:"prefix"`
}

// FormatNumber monta o número completo do recibo: prefixo seguido da
// sequência com quatro dígitos
func FormatNumber(prefix string, sequence int) string {
	return fmt.Sprintf("%s-%04d", prefix, sequence)
}

// Sequencer entrega a próxima sequência de uma partição sede+origem. A
// implementação precisa garantir atomicidade: duas chamadas concorrentes
// para a mesma partição nunca recebem a mesma sequência, e a sequência
// consumida acompanha a inserção do recibo na mesma unidade de trabalho.
type Sequencer interface {
	// Next reserva e retorna a próxima sequência da partição
	Next(ctx context.Context, siteID string, origin site.Origin) (int, error)
}

// SiteFinder localiza a sede emissora para leitura dos prefixos de
// numeração. Uma implementação transacional deve ler dentro da mesma
// unidade de trabalho do Sequencer.
type SiteFinder interface {
	FindByID(ctx context.Context, id string) (*site.Site, error)
}

// NumberingService monta o próximo número de recibo de uma sede para uma
// origem, combinando o prefixo configurado na sede com a sequência
// reservada pelo Sequencer
type NumberingService struct {
	sites     SiteFinder
	sequencer Sequencer
}

// NewNumberingService cria uma nova instância de NumberingService
func NewNumberingService(sites SiteFinder, sequencer Sequencer) *NumberingService {
	return &NumberingService{
		sites:     sites,
		sequencer: sequencer,
	}
}

// NextNumber reserva o próximo número da partição sede+origem. Falha com
// site.ErrMissingSitePrefix quando a sede não tem prefixo configurado para
// a origem.
func (s *NumberingService) NextNumber(ctx context.Context, siteID string, origin site.Origin) (Number, error) {
	st, err := s.sites.FindByID(ctx, siteID)
	if err != nil {
		return Number{}, fmt.Errorf("erro ao buscar sede emissora: %w", err)
	}

	prefix, err := st.PrefixFor(origin)
	if err != nil {
		return Number{}, err
	}

	sequence, err := s.sequencer.Next(ctx, siteID, origin)
	if err != nil {
		return Number{}, fmt.Errorf("erro ao reservar sequência de numeração: %w", err)
	}

	return Number{
		Full:     FormatNumber(prefix, sequence),
		Sequence: sequence,
		Prefix:   prefix,
	}, nil
}
