package ledger

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Cores do contraste binário positivo/negativo usado por ranking, relatórios
// e dashboard. A regra é a mesma em todas as visões: agregado >= 0 recebe a
// cor padrão, negativo recebe a cor de alerta.
const (
	ColorPositive = "#8b5cf6"
	ColorNegative = "#ef4444"
)

// ChartColor aplica a regra binária de cor.
func ChartColor(v float64) string {
	if v < 0 {
		return ColorNegative
	}
	return ColorPositive
}

// FormatCurrency formata em reais no padrão pt-BR: "R$ 1.234,56",
// negativos como "-R$ 1.234,56".
func FormatCurrency(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	cents := int64(math.Round(v * 100))
	whole := cents / 100
	frac := cents % 100

	digits := fmt.Sprintf("%d", whole)
	var grouped strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(d)
	}
	return fmt.Sprintf("%sR$ %s,%02d", sign, grouped.String(), frac)
}

// FormatUnits formata unidades com sinal explícito: "+1.50u", "-1.00u".
func FormatUnits(v float64) string {
	return fmt.Sprintf("%+.2fu", v)
}

// FormatValue escolhe o formato conforme o modo da visão.
func FormatValue(v float64, mode Mode) string {
	if mode == ModeUnits {
		return FormatUnits(v)
	}
	return FormatCurrency(v)
}

// ChartPoint é um registro pronto pra gráfico de barras: rótulo, valor e a
// cor da regra binária.
type ChartPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// reportValue é a contribuição de uma aposta nos relatórios: PENDING não
// contribui; resolvidas contribuem com dinheiro ou unidades conforme o modo.
func reportValue(b Bet, mode Mode) float64 {
	if b.Status == StatusPending {
		return 0
	}
	v := b.Valuate()
	if mode == ModeUnits {
		return v.Units
	}
	return v.Money
}

// ProfitByBucket monta o dataset "Lucro Geral" dos relatórios: lucro somado
// por mês (recortes longos: Geral/Ano/Semana) ou por dia (Hoje/Mês/Periodo),
// em ordem cronológica.
func ProfitByBucket(bets []Bet, period Period, mode Mode) []ChartPoint {
	byDay := period == PeriodToday || period == PeriodMonth || period == PeriodRange

	totals := map[string]float64{}
	for _, b := range bets {
		if b.Date == "" {
			continue
		}
		key := day(b.Date)
		if !byDay && len(key) >= 7 {
			key = key[:7]
		}
		totals[key] += reportValue(b, mode)
	}

	names := make([]string, 0, len(totals))
	for n := range totals {
		names = append(names, n)
	}
	sort.Strings(names)

	points := make([]ChartPoint, 0, len(names))
	for _, n := range names {
		v := totals[n]
		if mode == ModeMoney {
			v = Round2(v)
		}
		points = append(points, ChartPoint{Name: n, Value: v, Color: ChartColor(v)})
	}
	return points
}

// ProfitByBettor monta o dataset "Por Jogador": lucro do recorte somado por
// apostador conhecido, decrescente.
func ProfitByBettor(bets []Bet, bettors []Bettor, mode Mode) []ChartPoint {
	points := make([]ChartPoint, 0, len(bettors))
	for _, bt := range bettors {
		var total float64
		for _, b := range bets {
			if b.Bettor == bt.Name {
				total += reportValue(b, mode)
			}
		}
		if mode == ModeMoney {
			total = Round2(total)
		}
		points = append(points, ChartPoint{Name: bt.Name, Value: total, Color: ChartColor(total)})
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].Value > points[j].Value })
	return points
}

// SortNewestFirst ordena as apostas da mais recente para a mais antiga
// (data desc, empates por id desc), a ordem de exibição do histórico.
func SortNewestFirst(bets []Bet) {
	sort.SliceStable(bets, func(i, j int) bool {
		di, dj := day(bets[i].Date), day(bets[j].Date)
		if di != dj {
			return di > dj
		}
		return bets[i].ID > bets[j].ID
	})
}
