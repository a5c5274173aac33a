package entity

import "time"

// Papéis válidos para User.
const (
	RoleAdmin    = "ADMIN"
	RoleGestor   = "GESTOR"
	RoleOperador = "OPERADOR" // entregador / conferente
)

// ValidRole verifica se o papel é um dos conhecidos.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleGestor, RoleOperador:
		return true
	}
	return false
}

// CanReviewMovements é o predicado central de autorização da fila de aprovação:
// apenas ADMIN e GESTOR podem listar a fila completa, editar, confirmar ou rejeitar.
func CanReviewMovements(role string) bool {
	return role == RoleAdmin || role == RoleGestor
}

// User representa um usuário do sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // hash bcrypt, nunca em claro após persistir
	Name         string
	Role         string // ADMIN, GESTOR, OPERADOR
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
