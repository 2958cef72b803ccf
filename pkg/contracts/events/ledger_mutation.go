package events

import "encoding/json"

// Ações aceitas pela API de planilha. O worker repassa o corpo como está.
const (
	ActionAddBet             = "addBet"
	ActionEditBet            = "editBet"
	ActionDeleteBet          = "deleteBet"
	ActionUpdateBetStatus    = "updateBetStatus"
	ActionAddBettor          = "addBettor"
	ActionDeleteBettor       = "deleteBettor"
	ActionUpdateBettorStatus = "updateBettorStatus"
	ActionAddUser            = "addUser"
	ActionDeleteUser         = "deleteUser"
)

// LedgerMutation é o evento publicado no tópico "ledger_mutations" a cada
// mutação local. O corpo espelha o contrato da API de planilha: as ações de
// entidade carregam Payload; updateBetStatus e updateBettorStatus usam os
// campos planos.
type LedgerMutation struct {
	Action    string          `json:"action"`
	ID        int64           `json:"id,omitempty"`
	Status    string          `json:"status,omitempty"`
	Profit    *float64        `json:"profit,omitempty"`
	IsCashout bool            `json:"isCashout,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	TsUnixMs  int64           `json:"ts_unix_ms,omitempty"`
}
