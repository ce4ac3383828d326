package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProductValidation(t *testing.T) {
	_, err := NewProduct("", "MAT-101", TypeStandard, NoReference())
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = NewProduct("Curso de Matemática", "MAT-101", Type("assinatura"), NoReference())
	assert.ErrorIs(t, err, ErrInvalidType)

	p, err := NewProduct("Curso de Matemática", "MAT-101", TypeFinanceable, CourseRef("course-1"))
	require.NoError(t, err)
	assert.True(t, p.IsFinanceable())
	assert.True(t, p.IsActive())
}

func TestReferenceValidate(t *testing.T) {
	assert.NoError(t, NoReference().Validate())
	assert.NoError(t, CourseRef("course-1").Validate())
	assert.NoError(t, ModuleRef("module-1").Validate())

	// Referência sem alvo ou alvo sem referência são inconsistentes
	assert.ErrorIs(t, Reference{Kind: ReferenceCourse}.Validate(), ErrInvalidReference)
	assert.ErrorIs(t, Reference{Kind: ReferenceModule}.Validate(), ErrInvalidReference)
	assert.ErrorIs(t, Reference{Kind: ReferenceNone, TargetID: "x"}.Validate(), ErrInvalidReference)
	assert.ErrorIs(t, Reference{Kind: "turma", TargetID: "x"}.Validate(), ErrInvalidReference)
}

func TestReferenceIsZero(t *testing.T) {
	assert.True(t, NoReference().IsZero())
	assert.True(t, Reference{}.IsZero())
	assert.False(t, CourseRef("course-1").IsZero())
}

func TestProductUpdate(t *testing.T) {
	p, err := NewProduct("Curso de Matemática", "MAT-101", TypeStandard, NoReference())
	require.NoError(t, err)

	assert.ErrorIs(t, p.Update("", "MAT-101", TypeStandard, NoReference()), ErrEmptyName)
	assert.ErrorIs(t, p.Update("Curso", "MAT-101", TypeStandard, Reference{Kind: ReferenceCourse}), ErrInvalidReference)

	require.NoError(t, p.Update("Curso de Física", "FIS-101", TypeFinanceable, ModuleRef("module-2")))
	assert.Equal(t, "Curso de Física", p.Name)
	assert.Equal(t, ReferenceModule, p.Reference.Kind)
	assert.True(t, p.IsFinanceable())
}
