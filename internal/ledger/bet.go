package ledger

import "strings"

// Status de uma aposta. As transições são cíclicas (PENDING↔WIN↔LOSS);
// ver WithStatus e WithCashout.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusWin     Status = "WIN"
	StatusLoss    Status = "LOSS"
)

// Tipos de aposta: uma seleção = Simples, mais de uma = Múltipla (odds combinadas).
const (
	TypeSingle   = "Simples"
	TypeMultiple = "Múltipla"
)

// Selection é uma perna da aposta: um evento, um palpite e a odd decimal.
type Selection struct {
	ID    string  `json:"id"`
	Event string  `json:"event"`
	Pick  string  `json:"pick"`
	Odds  float64 `json:"odds"`
}

// Bet é uma transação de aposta registrada no livro do grupo.
// Bettor referencia Bettor.Name por igualdade de string (contrato da
// planilha; renomear um apostador órfã o histórico).
type Bet struct {
	ID              int64       `json:"id"`
	Date            string      `json:"date"` // dia-calendário, "2006-01-02"
	Bettor          string      `json:"bettor"`
	Type            string      `json:"type"`
	Selections      []Selection `json:"selections"`
	Stake           float64     `json:"stake"`
	TotalOdds       float64     `json:"totalOdds"`
	PotentialProfit float64     `json:"potentialProfit"`
	Status          Status      `json:"status"`
	IsCashout       bool        `json:"isCashout,omitempty"`
}

// NewBet monta uma aposta PENDING derivando TotalOdds (produto das odds),
// PotentialProfit (stake*odds - stake) e o tipo a partir das seleções.
func NewBet(id int64, date, bettor string, selections []Selection, stake float64) Bet {
	b := Bet{
		ID:         id,
		Date:       day(date),
		Bettor:     bettor,
		Selections: selections,
		Stake:      stake,
		Status:     StatusPending,
	}
	b.TotalOdds = CombinedOdds(selections)
	b.PotentialProfit = b.StandardProfit()
	b.Type = TypeSingle
	if len(selections) > 1 {
		b.Type = TypeMultiple
	}
	return b
}

// CombinedOdds devolve o produto das odds das seleções. Odds zeradas ou
// ausentes contam como 1.0 (sem efeito), como na planilha de origem.
func CombinedOdds(selections []Selection) float64 {
	total := 1.0
	for _, s := range selections {
		if s.Odds > 0 {
			total *= s.Odds
		}
	}
	return total
}

// StandardProfit é o lucro calculado pelas odds, ignorando cashout.
func (b Bet) StandardProfit() float64 {
	return b.Stake*b.TotalOdds - b.Stake
}

// Valuation é o resultado monetário e em unidades de uma aposta.
// Para PENDING, Money é o lucro potencial (informativo) e Units é 0.
type Valuation struct {
	Money float64
	Units float64
}

// Valuate aplica a regra de valoração:
//   - WIN: Money = PotentialProfit (pode ser override de cashout),
//     Units = PotentialProfit/Stake;
//   - LOSS: Money = -Stake, Units = -1 exato, independente das odds
//     (a perda é sempre 1 unidade — contabilidade normalizada pelo risco);
//   - PENDING: Money = PotentialProfit, Units = 0.
func (b Bet) Valuate() Valuation {
	switch b.Status {
	case StatusWin:
		v := Valuation{Money: b.PotentialProfit}
		if b.Stake != 0 {
			v.Units = b.PotentialProfit / b.Stake
		}
		return v
	case StatusLoss:
		return Valuation{Money: -b.Stake, Units: -1}
	default:
		return Valuation{Money: b.PotentialProfit}
	}
}

// WithStatus devolve a aposta com o novo status e o lucro derivado recalculado
// pelas odds. Qualquer valor de cashout anterior é descartado: reentrar em
// qualquer estado pelo caminho padrão nunca retém lucro manual obsoleto.
func (b Bet) WithStatus(next Status) Bet {
	b.Status = next
	b.IsCashout = false
	b.PotentialProfit = b.StandardProfit()
	return b
}

// WithCashout é a entrada lateral da máquina de estados: marca WIN com lucro
// arbitrário informado pelo operador, ignorando o cálculo por odds.
func (b Bet) WithCashout(profit float64) Bet {
	b.Status = StatusWin
	b.IsCashout = true
	b.PotentialProfit = profit
	return b
}

// NextToggle é o ciclo usado pelo badge de status: PENDING→WIN→LOSS→PENDING.
func (b Bet) NextToggle() Status {
	switch b.Status {
	case StatusPending:
		return StatusWin
	case StatusWin:
		return StatusLoss
	default:
		return StatusPending
	}
}

// CashoutEditValue é o valor pré-preenchido no editor de cashout:
// -stake para LOSS, o lucro corrente para WIN, 0 para PENDING.
func (b Bet) CashoutEditValue() float64 {
	switch b.Status {
	case StatusLoss:
		return -b.Stake
	case StatusWin:
		return b.PotentialProfit
	default:
		return 0
	}
}

// ParseStatus normaliza as grafias encontradas na planilha (inglês, português
// e a gíria green/red) para o enum canônico. Qualquer coisa não reconhecida
// vira PENDING.
func ParseStatus(raw string) Status {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "WIN", "WON", "GREEN", "GANHO", "GANHOU", "VITÓRIA", "VITORIA":
		return StatusWin
	case "LOSS", "LOSE", "LOST", "RED", "PERDIDO", "PERDEU", "DERROTA":
		return StatusLoss
	default:
		return StatusPending
	}
}

// day reduz uma data em string ao dia-calendário, descartando hora
// ("2024-05-01T13:45:00Z" -> "2024-05-01").
func day(date string) string {
	if i := strings.IndexByte(date, 'T'); i >= 0 {
		return date[:i]
	}
	return date
}
