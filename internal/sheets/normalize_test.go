package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bancagelo/apostas-ledger/internal/ledger"
)

func TestBetFromRecord(t *testing.T) {
	t.Run("lowerCamel record", func(t *testing.T) {
		b := BetFromRecord(map[string]any{
			"id":     float64(1715000000000),
			"date":   "2024-05-10",
			"bettor": "Rafael",
			"type":   "Múltipla",
			"selections": []any{
				map[string]any{"id": "s1", "event": "Fla x Flu", "pick": "Fla", "odds": 1.8},
				map[string]any{"id": "s2", "event": "Cruzeiro x Galo", "pick": "Empate", "odds": 3.2},
			},
			"stake":           float64(50),
			"totalOdds":       5.76,
			"potentialProfit": float64(238),
			"status":          "WIN",
			"isCashout":       false,
		})

		assert.Equal(t, int64(1715000000000), b.ID)
		assert.Equal(t, "Rafael", b.Bettor)
		require.Len(t, b.Selections, 2)
		assert.Equal(t, "Fla x Flu", b.Selections[0].Event)
		assert.InDelta(t, 5.76, b.TotalOdds, 1e-9)
		assert.InDelta(t, 238.0, b.PotentialProfit, 1e-9)
		assert.Equal(t, ledger.StatusWin, b.Status)
	})

	t.Run("upper-first record with numbers as strings", func(t *testing.T) {
		b := BetFromRecord(map[string]any{
			"Id":              "42",
			"Date":            "2024-05-10T00:00:00",
			"Bettor":          " Marcos ",
			"Stake":           "25,50",
			"TotalOdds":       "2,0",
			"PotentialProfit": "25,5",
			"Status":          "perdido",
			"IsCashout":       "false",
		})

		assert.Equal(t, int64(42), b.ID)
		assert.Equal(t, "Marcos", b.Bettor)
		assert.InDelta(t, 25.5, b.Stake, 1e-9)
		assert.InDelta(t, 2.0, b.TotalOdds, 1e-9)
		assert.Equal(t, ledger.StatusLoss, b.Status)
		assert.False(t, b.IsCashout)
	})

	t.Run("selections serialized as a string cell", func(t *testing.T) {
		b := BetFromRecord(map[string]any{
			"id":         float64(1),
			"stake":      float64(10),
			"selections": `[{"id":"s1","event":"PSG x Lyon","pick":"PSG","odds":"1,5"}]`,
		})
		require.Len(t, b.Selections, 1)
		assert.Equal(t, "PSG", b.Selections[0].Pick)
		assert.InDelta(t, 1.5, b.Selections[0].Odds, 1e-9)
	})

	t.Run("missing potentialProfit is recomputed from odds", func(t *testing.T) {
		b := BetFromRecord(map[string]any{
			"id":        float64(1),
			"stake":     float64(100),
			"totalOdds": 2.5,
			"status":    "PENDING",
		})
		assert.InDelta(t, 150.0, b.PotentialProfit, 1e-9)
	})

	t.Run("missing totalOdds is derived from the selections", func(t *testing.T) {
		b := BetFromRecord(map[string]any{
			"id":    float64(1),
			"stake": float64(10),
			"selections": []any{
				map[string]any{"odds": 2.0},
				map[string]any{"odds": 1.5},
			},
		})
		assert.InDelta(t, 3.0, b.TotalOdds, 1e-9)
		assert.Equal(t, ledger.TypeMultiple, b.Type)
	})

	t.Run("status spelling variants", func(t *testing.T) {
		cases := map[string]ledger.Status{
			"win":      ledger.StatusWin,
			"Ganhou":   ledger.StatusWin,
			"GREEN":    ledger.StatusWin,
			"red":      ledger.StatusLoss,
			"Derrota":  ledger.StatusLoss,
			"pendente": ledger.StatusPending,
			"":         ledger.StatusPending,
		}
		for raw, want := range cases {
			b := BetFromRecord(map[string]any{"id": float64(1), "status": raw})
			assert.Equal(t, want, b.Status, "status %q", raw)
		}
	})

	t.Run("malformed record yields safe defaults", func(t *testing.T) {
		b := BetFromRecord(map[string]any{
			"id":         "not-a-number",
			"stake":      true,
			"selections": "{broken json",
			"isCashout":  []any{"?"},
		})
		assert.Zero(t, b.ID)
		assert.Zero(t, b.Stake)
		assert.Empty(t, b.Selections)
		assert.False(t, b.IsCashout)
		assert.Equal(t, ledger.StatusPending, b.Status)
	})
}

func TestBettorFromRecord(t *testing.T) {
	t.Run("anything but inactive normalizes to active", func(t *testing.T) {
		for _, raw := range []string{"Ativo", "ativo", "", "qualquer coisa"} {
			bt := BettorFromRecord(map[string]any{"id": float64(1), "name": "Ana", "status": raw})
			assert.Equal(t, ledger.StatusActive, bt.Status, "status %q", raw)
		}
	})

	t.Run("inactive survives casing", func(t *testing.T) {
		bt := BettorFromRecord(map[string]any{"Id": float64(2), "Name": "Beto", "Status": "INATIVO"})
		assert.Equal(t, ledger.StatusInactive, bt.Status)
		assert.Equal(t, "Beto", bt.Name)
	})
}

func TestUserFromRecord(t *testing.T) {
	u := UserFromRecord(map[string]any{
		"Id":       float64(7),
		"Username": "admin",
		"Password": "s3cret",
		"Name":     "Admin",
		"Role":     "ADMIN",
	})
	assert.Equal(t, int64(7), u.ID)
	assert.Equal(t, "admin", u.Username)
	assert.Equal(t, ledger.RoleAdmin, u.Role)
	assert.Equal(t, ledger.StatusActive, u.Status)
}
