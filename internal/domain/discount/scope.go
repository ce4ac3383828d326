package discount

// Scope é um conjunto de IDs que restringe a aplicação de um desconto em um
// eixo (listas de preço, produtos, sedes ou praças). Conjunto vazio
// significa sem restrição: qualquer candidato casa.
type Scope []string

// Matches verifica se o candidato pertence ao escopo
func (s Scope) Matches(candidateID string) bool {
	if len(s) == 0 {
		return true
	}
	for _, id := range s {
		if id == candidateID {
			return true
		}
	}
	return false
}

// IsRestricted verifica se o escopo impõe alguma restrição
func (s Scope) IsRestricted() bool {
	return len(s) > 0
}
