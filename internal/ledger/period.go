package ledger

import "time"

// Período de filtragem das visões. Os valores são os rótulos da interface.
type Period string

const (
	PeriodToday Period = "Hoje"
	PeriodWeek  Period = "Semana"
	PeriodMonth Period = "Mês"
	PeriodYear  Period = "Ano"
	PeriodRange Period = "Periodo"
	PeriodAll   Period = "Geral"
)

const dayLayout = "2006-01-02"

// FilterByPeriod devolve o subconjunto de apostas cujo dia-calendário casa com
// o período, preservando a ordem de entrada. ref é a data de referência para
// Hoje/Semana/Mês/Ano (zero = agora); start/end delimitam Periodo (inclusivo,
// comparação lexicográfica de datas ISO; limite ausente deixa tudo passar).
// Período não reconhecido — e "Total", sinônimo de Geral — deixa tudo passar:
// entrada inesperada falha aberta, nunca com erro.
func FilterByPeriod(bets []Bet, period Period, ref time.Time, start, end string) []Bet {
	if ref.IsZero() {
		ref = time.Now()
	}

	var keep func(d string) bool
	switch period {
	case PeriodToday:
		today := ref.Format(dayLayout)
		keep = func(d string) bool { return d == today }
	case PeriodWeek:
		monday := mostRecentMonday(ref).Format(dayLayout)
		keep = func(d string) bool { return d >= monday }
	case PeriodMonth:
		month := ref.Format("2006-01")
		keep = func(d string) bool { return len(d) >= 7 && d[:7] == month }
	case PeriodYear:
		year := ref.Format("2006")
		keep = func(d string) bool { return len(d) >= 4 && d[:4] == year }
	case PeriodRange:
		if start == "" || end == "" {
			return append([]Bet(nil), bets...)
		}
		keep = func(d string) bool { return d >= start && d <= end }
	default:
		return append([]Bet(nil), bets...)
	}

	out := make([]Bet, 0, len(bets))
	for _, b := range bets {
		if b.Date == "" {
			continue
		}
		if keep(day(b.Date)) {
			out = append(out, b)
		}
	}
	return out
}

// mostRecentMonday trunca ref para a segunda-feira da semana corrente
// (a semana começa na segunda).
func mostRecentMonday(ref time.Time) time.Time {
	wd := int(ref.Weekday())
	if wd == 0 {
		wd = 7
	}
	return ref.AddDate(0, 0, -(wd - 1))
}
