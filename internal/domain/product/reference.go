package product

import (
	"context"
)

// ReferenceKind identifica a entidade acadêmica vinculada ao produto
type ReferenceKind string

const (
	ReferenceNone   ReferenceKind = "none"
	ReferenceCourse ReferenceKind = "course"
	ReferenceModule ReferenceKind = "module"
)

// Reference é a união fechada Course(id) | Module(id) | None. Substitui a
// referência polimórfica por tag dinâmica: o Kind determina qual entidade o
// TargetID aponta, e ReferenceNone exige TargetID vazio.
type Reference struct {
	Kind     ReferenceKind `json:"kind"`
	TargetID string        `json:"target_id,omitempty"`
}

// CourseRef cria uma referência a um curso
func CourseRef(courseID string) Reference {
	return Reference{Kind: ReferenceCourse, TargetID: courseID}
}

// ModuleRef cria uma referência a um módulo
func ModuleRef(moduleID string) Reference {
	return Reference{Kind: ReferenceModule, TargetID: moduleID}
}

// NoReference cria uma referência vazia
func NoReference() Reference {
	return Reference{Kind: ReferenceNone}
}

// Validate verifica a consistência entre Kind e TargetID
func (r Reference) Validate() error {
	switch r.Kind {
	case ReferenceNone:
		if r.TargetID != "" {
			return ErrInvalidReference
		}
		return nil
	case ReferenceCourse, ReferenceModule:
		if r.TargetID == "" {
			return ErrInvalidReference
		}
		return nil
	}
	return ErrInvalidReference
}

// IsZero verifica se a referência está vazia
func (r Reference) IsZero() bool {
	return r.Kind == "" || r.Kind == ReferenceNone
}

// ReferenceResolver resolve o nome de exibição da entidade referenciada
type ReferenceResolver interface {
	// DisplayName retorna o nome da entidade apontada pela referência.
	// Para ReferenceNone retorna o nome do próprio produto informado.
	DisplayName(ctx context.Context, p *Product) (string, error)
}
