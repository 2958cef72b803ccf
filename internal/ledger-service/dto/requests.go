package dto

import "github.com/bancagelo/apostas-ledger/internal/ledger"

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SaveBetRequest cria ou edita uma aposta. Odds total, lucro potencial e
// tipo (Simples/Múltipla) são derivados no servidor.
type SaveBetRequest struct {
	Bettor     string             `json:"bettor"`
	Date       string             `json:"date,omitempty"` // default: hoje
	Stake      float64            `json:"stake"`
	Selections []ledger.Selection `json:"selections"`
}

// UpdateStatusRequest muda o status de uma aposta. Com isCashout=true,
// profit é obrigatório e vira o lucro manual (status resultante WIN).
type UpdateStatusRequest struct {
	Status    string   `json:"status"`
	Profit    *float64 `json:"profit,omitempty"`
	IsCashout bool     `json:"isCashout,omitempty"`
}

type NewBettorRequest struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

type NewUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Avatar   string `json:"avatar,omitempty"`
}
