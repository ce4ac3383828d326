package receipt

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/erp-educacional/internal/domain/site"
)

// memorySequencer implementa Sequencer em memória, com um contador por
// partição sede+origem protegido por mutex
type memorySequencer struct {
	mu       sync.Mutex
	counters map[string]int
}

func newMemorySequencer() *memorySequencer {
	return &memorySequencer{counters: make(map[string]int)}
}

func (s *memorySequencer) Next(_ context.Context, siteID string, origin site.Origin) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := fmt.Sprintf("%s|%s", siteID, origin)
	s.counters[key]++
	return s.counters[key], nil
}

// memorySiteRepository implementa SiteFinder em memória
type memorySiteRepository struct {
	sites map[string]*site.Site
}

var errSiteMissing = errors.New("sede não encontrada")

func (r *memorySiteRepository) FindByID(_ context.Context, id string) (*site.Site, error) {
	s, ok := r.sites[id]
	if !ok {
		return nil, errSiteMissing
	}
	return s, nil
}

// failingSequencer devolve sempre o mesmo erro
type failingSequencer struct {
	err error
}

func (s failingSequencer) Next(_ context.Context, _ string, _ site.Origin) (int, error) {
	return 0, s.err
}

func testSites() *memorySiteRepository {
	return &memorySiteRepository{sites: map[string]*site.Site{
		"site-1": {ID: "site-1", AcademicPrefix: "AC", InventoryPrefix: "IN"},
		"site-2": {ID: "site-2", AcademicPrefix: "BG"},
	}}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "AC-0001", FormatNumber("AC", 1))
	assert.Equal(t, "AC-0042", FormatNumber("AC", 42))
	assert.Equal(t, "AC-12345", FormatNumber("AC", 12345))
}

func TestNumberingService(t *testing.T) {
	ctx := context.Background()
	service := NewNumberingService(testSites(), newMemorySequencer())

	t.Run("números sequenciais por partição", func(t *testing.T) {
		first, err := service.NextNumber(ctx, "site-1", site.OriginAcademic)
		require.NoError(t, err)
		assert.Equal(t, "AC-0001", first.Full)
		assert.Equal(t, 1, first.Sequence)
		assert.Equal(t, "AC", first.Prefix)

		second, err := service.NextNumber(ctx, "site-1", site.OriginAcademic)
		require.NoError(t, err)
		assert.Equal(t, "AC-0002", second.Full)
	})

	t.Run("origens mantêm sequências independentes", func(t *testing.T) {
		n, err := service.NextNumber(ctx, "site-1", site.OriginInventory)
		require.NoError(t, err)
		assert.Equal(t, "IN-0001", n.Full)
	})

	t.Run("sedes mantêm sequências independentes", func(t *testing.T) {
		n, err := service.NextNumber(ctx, "site-2", site.OriginAcademic)
		require.NoError(t, err)
		assert.Equal(t, "BG-0001", n.Full)
	})

	t.Run("sede sem prefixo para a origem falha", func(t *testing.T) {
		_, err := service.NextNumber(ctx, "site-2", site.OriginInventory)
		assert.ErrorIs(t, err, site.ErrMissingSitePrefix)
	})
}

// Falhas das dependências atravessam o serviço preservando o erro original,
// para que a camada de persistência mapeie os sentinelas com errors.Is
func TestNumberingServicePropagatesErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("sede inexistente", func(t *testing.T) {
		service := NewNumberingService(testSites(), newMemorySequencer())
		_, err := service.NextNumber(ctx, "site-9", site.OriginAcademic)
		assert.ErrorIs(t, err, errSiteMissing)
	})

	t.Run("falha ao reservar sequência", func(t *testing.T) {
		errSeq := errors.New("contador indisponível")
		service := NewNumberingService(testSites(), failingSequencer{err: errSeq})
		_, err := service.NextNumber(ctx, "site-1", site.OriginAcademic)
		assert.ErrorIs(t, err, errSeq)
	})
}

func TestNumberingUniquenessUnderConcurrency(t *testing.T) {
	const goroutines = 100

	ctx := context.Background()
	service := NewNumberingService(testSites(), newMemorySequencer())

	var wg sync.WaitGroup
	sequences := make(chan int, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := service.NextNumber(ctx, "site-1", site.OriginAcademic)
			if !assert.NoError(t, err) {
				return
			}
			sequences <- n.Sequence
		}()
	}

	wg.Wait()
	close(sequences)

	// As sequências devem formar exatamente {1, ..., N}: sem duplicatas e
	// sem lacunas
	seen := make(map[int]bool, goroutines)
	for seq := range sequences {
		assert.False(t, seen[seq], "sequência duplicada: %d", seq)
		seen[seq] = true
	}

	for i := 1; i <= goroutines; i++ {
		assert.True(t, seen[i], "lacuna na sequência: %d", i)
	}
}
