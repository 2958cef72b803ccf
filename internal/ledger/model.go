package ledger

import "strings"

// Status de cadastro de apostadores e usuários.
const (
	StatusActive   = "Ativo"
	StatusInactive = "Inativo"
)

// Bettor é um membro do grupo. Name é a chave de junção usada pelas apostas.
type Bettor struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Date   string `json:"date"`
	Status string `json:"status"`
	Avatar string `json:"avatar,omitempty"`
}

// Toggled alterna Ativo/Inativo. Não afeta agregações históricas.
func (b Bettor) Toggled() Bettor {
	if b.Status == StatusActive {
		b.Status = StatusInactive
	} else {
		b.Status = StatusActive
	}
	return b
}

// Papéis de usuário. Somente admin vê as ações de escrita.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

// User é uma conta de acesso à aplicação. A senha é comparada em texto puro
// contra a lista carregada da planilha; não é uma fronteira de segurança.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Status   string `json:"status"`
	Avatar   string `json:"avatar,omitempty"`
}

// ParseRole normaliza o papel; desconhecido vira viewer.
func ParseRole(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case RoleAdmin:
		return RoleAdmin
	case RoleEditor:
		return RoleEditor
	default:
		return RoleViewer
	}
}
