package site

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSiteValidation(t *testing.T) {
	_, err := NewSite("", "SP01", "pop-1")
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = NewSite("Campus Centro", "SP01", "")
	assert.ErrorIs(t, err, ErrEmptyPopulation)

	s, err := NewSite("Campus Centro", "SP01", "pop-1")
	require.NoError(t, err)
	assert.Equal(t, StatusActive, s.Status)
	assert.True(t, s.IsActive())
}

func TestParseOrigin(t *testing.T) {
	origin, err := ParseOrigin("inventory")
	require.NoError(t, err)
	assert.Equal(t, OriginInventory, origin)

	origin, err = ParseOrigin("academic")
	require.NoError(t, err)
	assert.Equal(t, OriginAcademic, origin)

	_, err = ParseOrigin("fiscal")
	assert.ErrorIs(t, err, ErrInvalidOrigin)
}

func TestPrefixFor(t *testing.T) {
	s, err := NewSite("Campus Centro", "SP01", "pop-1")
	require.NoError(t, err)

	// Sem prefixo configurado a emissão deve falhar
	_, err = s.PrefixFor(OriginInventory)
	assert.ErrorIs(t, err, ErrMissingSitePrefix)

	s.ConfigurePrefixes("INV", "ACA")

	prefix, err := s.PrefixFor(OriginInventory)
	require.NoError(t, err)
	assert.Equal(t, "INV", prefix)

	prefix, err = s.PrefixFor(OriginAcademic)
	require.NoError(t, err)
	assert.Equal(t, "ACA", prefix)

	_, err = s.PrefixFor(Origin("outra"))
	assert.ErrorIs(t, err, ErrInvalidOrigin)
}

func TestPrefixForPartialConfiguration(t *testing.T) {
	s, err := NewSite("Campus Norte", "SP02", "pop-1")
	require.NoError(t, err)

	// Apenas a origem acadêmica configurada
	s.ConfigurePrefixes("", "ACA")

	_, err = s.PrefixFor(OriginInventory)
	assert.ErrorIs(t, err, ErrMissingSitePrefix)

	prefix, err := s.PrefixFor(OriginAcademic)
	require.NoError(t, err)
	assert.Equal(t, "ACA", prefix)
}

func TestSiteUpdate(t *testing.T) {
	s, err := NewSite("Campus Centro", "SP01", "pop-1")
	require.NoError(t, err)

	assert.ErrorIs(t, s.Update("", "SP01", "pop-1"), ErrEmptyName)
	assert.ErrorIs(t, s.Update("Campus Centro", "SP01", ""), ErrEmptyPopulation)

	require.NoError(t, s.Update("Campus Leste", "SP03", "pop-2"))
	assert.Equal(t, "Campus Leste", s.Name)
	assert.Equal(t, "pop-2", s.PopulationID)
}

func TestNewPopulation(t *testing.T) {
	_, err := NewPopulation("", "SP")
	assert.ErrorIs(t, err, ErrEmptyName)

	p, err := NewPopulation("São Paulo", "SP")
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "São Paulo", p.Name)
}
