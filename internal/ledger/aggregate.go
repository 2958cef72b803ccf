package ledger

import (
	"math"
	"sort"
)

// Mode escolhe a grandeza das visões agregadas: dinheiro ou unidades.
type Mode string

const (
	ModeMoney Mode = "money"
	ModeUnits Mode = "units"
)

// RankingRow é a linha agregada de um apostador. Apostadores sem apostas no
// recorte aparecem zerados. PENDING nunca entra nas somas.
type RankingRow struct {
	Bettor  Bettor  `json:"bettor"`
	Rank    int     `json:"rank"`
	Bets    int     `json:"bets"`    // apostas resolvidas (WIN+LOSS)
	Wins    int     `json:"wins"`
	Profit  float64 `json:"profit"`  // soma de Valuation.Money
	Units   float64 `json:"units"`   // soma de Valuation.Units
	WinRate float64 `json:"winRate"` // wins/bets * 100
	ROI     float64 `json:"roi"`     // profit / stake arriscada * 100
	Streak  int     `json:"streak"`  // vitórias consecutivas mais recentes
}

// Rank produz uma linha por apostador conhecido e ordena decrescente por
// Profit ou Units conforme o modo. Empates mantêm a ordem da lista de
// apostadores (ordenação estável). O ROI é sempre contra o capital arriscado
// em dinheiro, mesmo no modo unidades.
func Rank(bets []Bet, bettors []Bettor, mode Mode) []RankingRow {
	rows := make([]RankingRow, 0, len(bettors))
	for _, bt := range bettors {
		row := RankingRow{Bettor: bt}
		var staked float64
		for _, b := range bets {
			if b.Bettor != bt.Name || b.Status == StatusPending {
				continue
			}
			v := b.Valuate()
			row.Bets++
			row.Profit += v.Money
			row.Units += v.Units
			staked += b.Stake
			if b.Status == StatusWin {
				row.Wins++
			}
		}
		if row.Bets > 0 {
			row.WinRate = float64(row.Wins) / float64(row.Bets) * 100
		}
		if staked > 0 {
			row.ROI = row.Profit / staked * 100
		}
		row.Streak = Streak(bets, bt.Name)
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if mode == ModeUnits {
			return rows[i].Units > rows[j].Units
		}
		return rows[i].Profit > rows[j].Profit
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

// Streak conta as vitórias consecutivas do apostador a partir da aposta mais
// recente (data desc, empates por id desc). PENDING é pulada sem quebrar a
// sequência; a primeira LOSS encerra a contagem.
func Streak(bets []Bet, bettor string) int {
	own := make([]Bet, 0, len(bets))
	for _, b := range bets {
		if b.Bettor == bettor {
			own = append(own, b)
		}
	}
	sort.SliceStable(own, func(i, j int) bool {
		di, dj := day(own[i].Date), day(own[j].Date)
		if di != dj {
			return di > dj
		}
		return own[i].ID > own[j].ID
	})

	streak := 0
	for _, b := range own {
		switch b.Status {
		case StatusWin:
			streak++
		case StatusLoss:
			return streak
		}
	}
	return streak
}

// Podium devolve até três linhas na ordem visual do pódio: [2º, 1º, 3º]
// (o mais alto ao centro).
func Podium(rows []RankingRow) []RankingRow {
	podium := make([]RankingRow, 0, 3)
	for _, idx := range [3]int{1, 0, 2} {
		if idx < len(rows) {
			podium = append(podium, rows[idx])
		}
	}
	return podium
}

// Remainder devolve as linhas fora do pódio (4º em diante).
func Remainder(rows []RankingRow) []RankingRow {
	if len(rows) <= 3 {
		return []RankingRow{}
	}
	return append([]RankingRow{}, rows[3:]...)
}

// Point é um ponto da curva acumulada de lucro (dinheiro e unidades em
// paralelo).
type Point struct {
	Date  string  `json:"date"`
	Money float64 `json:"money"`
	Units float64 `json:"units"`
}

// TimeSeries agrupa as apostas por dia, ordena as datas e acumula o lucro de
// cada dia em um total corrente. Entrada vazia rende uma linha de base fixa
// de quatro pontos zerados, para o gráfico sempre ter eixo.
func TimeSeries(bets []Bet) []Point {
	type bucket struct{ money, units float64 }
	perDay := map[string]*bucket{}
	for _, b := range bets {
		if b.Status == StatusPending || b.Date == "" {
			continue
		}
		d := day(b.Date)
		if perDay[d] == nil {
			perDay[d] = &bucket{}
		}
		v := b.Valuate()
		perDay[d].money += v.Money
		perDay[d].units += v.Units
	}

	if len(perDay) == 0 {
		return []Point{
			{Date: "Sem 1"}, {Date: "Sem 2"}, {Date: "Sem 3"}, {Date: "Sem 4"},
		}
	}

	days := make([]string, 0, len(perDay))
	for d := range perDay {
		days = append(days, d)
	}
	sort.Strings(days)

	points := make([]Point, 0, len(days))
	var money, units float64
	for _, d := range days {
		money += perDay[d].money
		units += perDay[d].units
		points = append(points, Point{Date: d, Money: Round2(money), Units: units})
	}
	return points
}

// Summary são os totais do dashboard. Invested soma a stake de TODAS as
// apostas, inclusive pendentes; Profit e Units só contam resolvidas.
type Summary struct {
	Invested float64 `json:"invested"`
	Profit   float64 `json:"profit"`
	Units    float64 `json:"units"`
	Active   int     `json:"active"`
}

// Summarize calcula os totais do dashboard sobre o recorte recebido.
// Somas monetárias são arredondadas a 2 casas uma única vez, aqui na borda,
// pra evitar artefatos de ponto flutuante visíveis na tela.
func Summarize(bets []Bet) Summary {
	var s Summary
	for _, b := range bets {
		s.Invested += b.Stake
		if b.Status == StatusPending {
			s.Active++
			continue
		}
		v := b.Valuate()
		s.Profit += v.Money
		s.Units += v.Units
	}
	s.Invested = Round2(s.Invested)
	s.Profit = Round2(s.Profit)
	return s
}

// Round2 arredonda para 2 casas decimais (meio pra cima).
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
