package sheets

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/bancagelo/apostas-ledger/internal/ledger"
)

// Fronteira única de normalização dos registros vindos da planilha
// (uma função por entidade). A planilha entrega campos ora em lowerCamel,
// ora com a primeira letra maiúscula, números ora como número ora como
// string, e seleções às vezes como JSON serializado dentro da célula.
// Registro malformado vira defaults seguros (valores zerados, PENDING),
// nunca derruba a agregação.

// BetFromRecord normaliza um registro cru de aposta.
func BetFromRecord(m map[string]any) ledger.Bet {
	b := ledger.Bet{
		ID:         toInt64(field(m, "id")),
		Date:       toString(field(m, "date")),
		Bettor:     toString(field(m, "bettor")),
		Type:       toString(field(m, "type")),
		Selections: toSelections(field(m, "selections")),
		Stake:      toFloat(field(m, "stake")),
		TotalOdds:  toFloat(field(m, "totalOdds")),
		Status:     ledger.ParseStatus(toString(field(m, "status"))),
		IsCashout:  toBool(field(m, "isCashout")),
	}

	if b.TotalOdds <= 0 {
		b.TotalOdds = ledger.CombinedOdds(b.Selections)
	}
	if b.Type == "" {
		b.Type = ledger.TypeSingle
		if len(b.Selections) > 1 {
			b.Type = ledger.TypeMultiple
		}
	}

	// potentialProfit ausente é recalculado pelas odds, nunca defaultado
	// pra um valor sem sentido.
	if raw, ok := lookup(m, "potentialProfit"); ok && raw != nil {
		b.PotentialProfit = toFloat(raw)
	} else {
		b.PotentialProfit = b.StandardProfit()
	}
	return b
}

// BettorFromRecord normaliza um registro cru de apostador.
func BettorFromRecord(m map[string]any) ledger.Bettor {
	bt := ledger.Bettor{
		ID:     toInt64(field(m, "id")),
		Name:   toString(field(m, "name")),
		Date:   toString(field(m, "date")),
		Status: toString(field(m, "status")),
		Avatar: toString(field(m, "avatar")),
	}
	if !strings.EqualFold(bt.Status, ledger.StatusInactive) {
		bt.Status = ledger.StatusActive
	} else {
		bt.Status = ledger.StatusInactive
	}
	return bt
}

// UserFromRecord normaliza um registro cru de usuário.
func UserFromRecord(m map[string]any) ledger.User {
	u := ledger.User{
		ID:       toInt64(field(m, "id")),
		Username: toString(field(m, "username")),
		Password: toString(field(m, "password")),
		Name:     toString(field(m, "name")),
		Email:    toString(field(m, "email")),
		Role:     ledger.ParseRole(toString(field(m, "role"))),
		Status:   toString(field(m, "status")),
		Avatar:   toString(field(m, "avatar")),
	}
	if u.Status == "" {
		u.Status = ledger.StatusActive
	}
	return u
}

// field aceita as duas convenções de caixa: "stake" e "Stake".
func field(m map[string]any, key string) any {
	v, _ := lookup(m, key)
	return v
}

func lookup(m map[string]any, key string) (any, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	upper := strings.ToUpper(key[:1]) + key[1:]
	v, ok := m[upper]
	return v, ok
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

func toFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		// a planilha às vezes entrega número com vírgula decimal
		s := strings.ReplaceAll(strings.TrimSpace(t), ",", ".")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func toInt64(v any) int64 {
	switch t := v.(type) {
	case float64:
		return int64(t)
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func toBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return strings.EqualFold(strings.TrimSpace(t), "true") || t == "1"
	case float64:
		return t != 0
	default:
		return false
	}
}

// toSelections aceita tanto o array JSON quanto a string com JSON
// serializado gravada na célula.
func toSelections(v any) []ledger.Selection {
	switch t := v.(type) {
	case []any:
		raw, err := json.Marshal(t)
		if err != nil {
			return nil
		}
		return decodeSelections(raw)
	case string:
		if strings.TrimSpace(t) == "" {
			return nil
		}
		return decodeSelections([]byte(t))
	default:
		return nil
	}
}

func decodeSelections(raw []byte) []ledger.Selection {
	var loose []map[string]any
	if err := json.Unmarshal(raw, &loose); err != nil {
		return nil
	}
	selections := make([]ledger.Selection, 0, len(loose))
	for _, m := range loose {
		selections = append(selections, ledger.Selection{
			ID:    toString(field(m, "id")),
			Event: toString(field(m, "event")),
			Pick:  toString(field(m, "pick")),
			Odds:  toFloat(field(m, "odds")),
		})
	}
	return selections
}
