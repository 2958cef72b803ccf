package http

import (
	"net/http"

	"github.com/bancagelo/apostas-ledger/internal/ledger"
	"github.com/bancagelo/apostas-ledger/internal/ledger-service/dto"
	"github.com/bancagelo/apostas-ledger/internal/ledger-service/session"
)

// dashboard devolve os cards da visão geral e a curva acumulada, já sobre o
// recorte de período pedido. Tudo é recomputado do estado corrente a cada
// chamada — não existe agregação incremental que possa ficar obsoleta.
func (s *Server) dashboard(w http.ResponseWriter, r *http.Request, _ session.Session) {
	bets, _ := s.store.Snapshot()
	period, ref, start, end := periodQuery(r)
	bets = ledger.FilterByPeriod(bets, period, ref, start, end)

	summary := ledger.Summarize(bets)
	writeJSON(w, http.StatusOK, dto.DashboardResponse{
		Summary:           summary,
		Series:            ledger.TimeSeries(bets),
		InvestedFormatted: ledger.FormatCurrency(summary.Invested),
		ProfitFormatted:   ledger.FormatCurrency(summary.Profit),
		UnitsFormatted:    ledger.FormatUnits(summary.Units),
	})
}

// ranking devolve o pódio na ordem visual [2º, 1º, 3º] e a tabela com o
// restante.
func (s *Server) ranking(w http.ResponseWriter, r *http.Request, _ session.Session) {
	bets, bettors := s.store.Snapshot()
	period, ref, start, end := periodQuery(r)
	mode := modeQuery(r)

	rows := ledger.Rank(ledger.FilterByPeriod(bets, period, ref, start, end), bettors, mode)

	writeJSON(w, http.StatusOK, dto.RankingResponse{
		Mode:   mode,
		Podium: rowViews(ledger.Podium(rows), mode),
		Table:  rowViews(ledger.Remainder(rows), mode),
	})
}

// reports devolve os dois datasets de barras: lucro por período e por
// jogador.
func (s *Server) reports(w http.ResponseWriter, r *http.Request, _ session.Session) {
	bets, bettors := s.store.Snapshot()
	period, ref, start, end := periodQuery(r)
	mode := modeQuery(r)

	filtered := ledger.FilterByPeriod(bets, period, ref, start, end)

	writeJSON(w, http.StatusOK, dto.ReportsResponse{
		Mode:     mode,
		ByBucket: chartViews(ledger.ProfitByBucket(filtered, period, mode), mode),
		ByBettor: chartViews(ledger.ProfitByBettor(filtered, bettors, mode), mode),
	})
}

func rowViews(rows []ledger.RankingRow, mode ledger.Mode) []dto.RankingRowView {
	out := make([]dto.RankingRowView, 0, len(rows))
	for _, row := range rows {
		v := row.Profit
		if mode == ledger.ModeUnits {
			v = row.Units
		}
		out = append(out, dto.RankingRowView{RankingRow: row, Display: ledger.FormatValue(v, mode)})
	}
	return out
}

func chartViews(points []ledger.ChartPoint, mode ledger.Mode) []dto.ChartPointView {
	out := make([]dto.ChartPointView, 0, len(points))
	for _, p := range points {
		out = append(out, dto.ChartPointView{ChartPoint: p, Display: ledger.FormatValue(p.Value, mode)})
	}
	return out
}
