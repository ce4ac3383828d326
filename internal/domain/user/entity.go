package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptyName  = errors.New("nome não pode ser vazio")
	ErrEmptyEmail = errors.New("email não pode ser vazio")
)

// Role representa o papel/função do usuário
type Role string

// Status representa o status do usuário
type Status string

// Constantes para Role
const (
	RoleAdmin   Role = "admin"   // Administrador do sistema
	RoleManager Role = "manager" // Gerente de sede
	RoleCashier Role = "cashier" // Caixa emissor de recibos
)

// Constantes para Status
const (
	StatusActive   Status = "active"   // Usuário ativo
	StatusInactive Status = "inactive" // Usuário inativo
	StatusBlocked  Status = "blocked"  // Usuário bloqueado
)

// User representa um usuário do sistema (equipe administrativa e caixas)
type User struct {
	ID          string    `json:"id"`
	SiteID      string    `json:"site_id"` // Sede de lotação; vazio para administradores globais
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Password    string    `json:"-"` // O campo senha não é retornado nas respostas JSON
	Role        Role      `json:"role"`
	Status      Status    `json:"status"`
	LastLoginAt time.Time `json:"last_login_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewUser cria um novo usuário
func NewUser(siteID, name, email string, role Role) (*User, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if email == "" {
		return nil, ErrEmptyEmail
	}

	now := time.Now()
	return &User{
		ID:        uuid.New().String(),
		SiteID:    siteID,
		Name:      name,
		Email:     email,
		Role:      role,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// SetPassword configura a senha do usuário com hash
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifica se a senha fornecida é válida
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// IsActive verifica se o usuário está ativo
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// IsAdmin verifica se o usuário é um administrador
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanIssueReceipts verifica se o usuário pode emitir recibos
func (u *User) CanIssueReceipts() bool {
	return u.IsActive() && (u.Role == RoleCashier || u.Role == RoleAdmin)
}

// HasAccessToSite verifica se o usuário tem acesso à sede especificada.
// Administradores têm acesso a todas as sedes.
func (u *User) HasAccessToSite(siteID string) bool {
	if u.IsAdmin() {
		return true
	}
	return u.SiteID == siteID
}

// RegisterLogin registra o instante do último acesso
func (u *User) RegisterLogin() {
	now := time.Now()
	u.LastLoginAt = now
	u.UpdatedAt = now
}
