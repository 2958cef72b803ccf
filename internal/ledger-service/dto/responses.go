package dto

import (
	"github.com/bancagelo/apostas-ledger/internal/ledger"
	"github.com/bancagelo/apostas-ledger/internal/ledger-service/session"
)

type LoginResponse struct {
	Token   string          `json:"token"`
	Session session.Session `json:"session"`
}

// BetResponse devolve a aposta com o valor pré-preenchido do editor de
// cashout.
type BetResponse struct {
	ledger.Bet
	CashoutEditValue float64 `json:"cashoutEditValue"`
}

// DashboardResponse são os cards e a curva acumulada da visão geral, com os
// totais monetários já formatados em pt-BR.
type DashboardResponse struct {
	Summary           ledger.Summary `json:"summary"`
	Series            []ledger.Point `json:"series"`
	InvestedFormatted string         `json:"investedFormatted"`
	ProfitFormatted   string         `json:"profitFormatted"`
	UnitsFormatted    string         `json:"unitsFormatted"`
}

// RankingRowView acrescenta à linha o valor principal formatado conforme o
// modo (R$ ou unidades).
type RankingRowView struct {
	ledger.RankingRow
	Display string `json:"display"`
}

// RankingResponse separa o pódio (ordem visual 2º-1º-3º) do restante da
// tabela.
type RankingResponse struct {
	Mode   ledger.Mode      `json:"mode"`
	Podium []RankingRowView `json:"podium"`
	Table  []RankingRowView `json:"table"`
}

// ChartPointView acrescenta o rótulo de valor formatado ao ponto do gráfico.
type ChartPointView struct {
	ledger.ChartPoint
	Display string `json:"display"`
}

// ReportsResponse são os dois datasets de barras dos relatórios.
type ReportsResponse struct {
	Mode     ledger.Mode      `json:"mode"`
	ByBucket []ChartPointView `json:"byBucket"`
	ByBettor []ChartPointView `json:"byBettor"`
}
