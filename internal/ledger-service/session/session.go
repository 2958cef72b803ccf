package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/bancagelo/apostas-ledger/internal/ledger"
)

var (
	// ErrInvalidCredentials cobre usuário inexistente e senha errada, sem
	// distinguir os dois pra quem está do lado de fora.
	ErrInvalidCredentials = errors.New("usuário ou senha incorretos")
	// ErrInactiveUser é o erro distinto de conta desativada.
	ErrInactiveUser = errors.New("usuário inativo")
)

// Session é o único estado carregado entre requisições: quem entrou e qual
// papel libera as ações de escrita.
type Session struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar,omitempty"`
}

// IsAdmin diz se a sessão pode usar os endpoints de mutação.
func (s Session) IsAdmin() bool { return s.Role == ledger.RoleAdmin }

// Login procura o usuário por username (comparação sem caixa) e confere a
// senha por igualdade simples — o contrato herdado da planilha, não uma
// fronteira de segurança. Conta inativa recebe erro próprio, diferente de
// credencial errada.
func Login(users []ledger.User, username, password string) (Session, error) {
	for _, u := range users {
		if !strings.EqualFold(u.Username, username) || u.Password != password {
			continue
		}
		if u.Status != ledger.StatusActive {
			return Session{}, ErrInactiveUser
		}
		return Session{
			Username: u.Username,
			Role:     u.Role,
			Name:     u.Name,
			Avatar:   u.Avatar,
		}, nil
	}
	return Session{}, ErrInvalidCredentials
}

// NewToken gera o token opaco da sessão.
func NewToken() string {
	buf := make([]byte, 24)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
