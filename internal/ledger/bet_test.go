package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBet(t *testing.T) {
	t.Run("derives total odds as the product of selections", func(t *testing.T) {
		b := NewBet(1, "2024-05-01", "Ramon", []Selection{
			{Event: "Real x Barça", Pick: "Real ML", Odds: 2.0},
			{Event: "Grêmio x Inter", Pick: "Empate", Odds: 1.5},
		}, 100)

		assert.InDelta(t, 3.0, b.TotalOdds, 1e-9)
		assert.InDelta(t, 200.0, b.PotentialProfit, 1e-9)
		assert.Equal(t, StatusPending, b.Status)
		assert.Equal(t, TypeMultiple, b.Type)
	})

	t.Run("single selection is Simples", func(t *testing.T) {
		b := NewBet(1, "2024-05-01", "Ramon", []Selection{{Odds: 1.85}}, 50)
		assert.Equal(t, TypeSingle, b.Type)
		assert.InDelta(t, 1.85, b.TotalOdds, 1e-9)
	})

	t.Run("odd 1.0 has no effect and zero odds are skipped", func(t *testing.T) {
		b := NewBet(1, "2024-05-01", "Ramon", []Selection{
			{Odds: 2.0}, {Odds: 1.0}, {Odds: 0},
		}, 10)
		assert.InDelta(t, 2.0, b.TotalOdds, 1e-9)
	})

	t.Run("strips time-of-day from the date", func(t *testing.T) {
		b := NewBet(1, "2024-05-01T13:45:00Z", "Ramon", []Selection{{Odds: 2}}, 10)
		assert.Equal(t, "2024-05-01", b.Date)
	})
}

func TestValuate(t *testing.T) {
	t.Run("win pays the stored profit, normalized by stake in units", func(t *testing.T) {
		b := NewBet(1, "2024-05-01", "Ramon", []Selection{{Odds: 2.5}}, 100).WithStatus(StatusWin)

		v := b.Valuate()
		assert.InDelta(t, 150.0, v.Money, 1e-9) // stake*odds - stake
		assert.InDelta(t, 1.5, v.Units, 1e-9)
	})

	t.Run("loss is always -stake and exactly -1 unit regardless of odds", func(t *testing.T) {
		long := NewBet(1, "2024-05-01", "Ramon", []Selection{{Odds: 37.0}}, 80).WithStatus(StatusLoss)
		short := NewBet(2, "2024-05-01", "Ramon", []Selection{{Odds: 1.05}}, 500).WithStatus(StatusLoss)

		assert.InDelta(t, -80.0, long.Valuate().Money, 1e-9)
		assert.Equal(t, -1.0, long.Valuate().Units)
		assert.InDelta(t, -500.0, short.Valuate().Money, 1e-9)
		assert.Equal(t, -1.0, short.Valuate().Units)
	})

	t.Run("pending shows potential profit but zero units", func(t *testing.T) {
		b := NewBet(1, "2024-05-01", "Ramon", []Selection{{Odds: 3.0}}, 100)
		v := b.Valuate()
		assert.InDelta(t, 200.0, v.Money, 1e-9)
		assert.Zero(t, v.Units)
	})

	t.Run("zero stake win never divides by zero", func(t *testing.T) {
		b := Bet{Stake: 0, PotentialProfit: 10, Status: StatusWin}
		assert.Zero(t, b.Valuate().Units)
	})
}

func TestStatusTransitions(t *testing.T) {
	base := NewBet(1, "2024-05-01", "Ramon", []Selection{{Odds: 3.0}}, 100)

	t.Run("cashout overrides the odds computation", func(t *testing.T) {
		b := base.WithCashout(20)

		require.Equal(t, StatusWin, b.Status)
		assert.True(t, b.IsCashout)
		assert.InDelta(t, 20.0, b.Valuate().Money, 1e-9)  // não os 200 das odds
		assert.InDelta(t, 0.2, b.Valuate().Units, 1e-9)
	})

	t.Run("re-entering pending discards the cashout value", func(t *testing.T) {
		b := base.WithCashout(20).WithStatus(StatusPending)

		assert.False(t, b.IsCashout)
		assert.InDelta(t, 200.0, b.PotentialProfit, 1e-9) // stake*odds - stake de novo
	})

	t.Run("standard transitions recompute profit from odds", func(t *testing.T) {
		b := base.WithCashout(999).WithStatus(StatusWin)
		assert.False(t, b.IsCashout)
		assert.InDelta(t, 200.0, b.PotentialProfit, 1e-9)
	})

	t.Run("toggle cycles PENDING, WIN, LOSS", func(t *testing.T) {
		b := base
		require.Equal(t, StatusWin, b.NextToggle())
		b = b.WithStatus(StatusWin)
		require.Equal(t, StatusLoss, b.NextToggle())
		b = b.WithStatus(StatusLoss)
		require.Equal(t, StatusPending, b.NextToggle())
	})
}

func TestCashoutEditValue(t *testing.T) {
	base := NewBet(1, "2024-05-01", "Ramon", []Selection{{Odds: 2.0}}, 100)

	assert.Zero(t, base.CashoutEditValue())
	assert.InDelta(t, -100.0, base.WithStatus(StatusLoss).CashoutEditValue(), 1e-9)
	assert.InDelta(t, 100.0, base.WithStatus(StatusWin).CashoutEditValue(), 1e-9)
	assert.InDelta(t, 42.0, base.WithCashout(42).CashoutEditValue(), 1e-9)
}

func TestParseStatus(t *testing.T) {
	cases := map[string]Status{
		"WIN":      StatusWin,
		"win":      StatusWin,
		"Green":    StatusWin,
		"Ganhou":   StatusWin,
		"vitória":  StatusWin,
		"LOSS":     StatusLoss,
		"red":      StatusLoss,
		"Perdeu":   StatusLoss,
		"derrota":  StatusLoss,
		"PENDING":  StatusPending,
		"":         StatusPending,
		"whatever": StatusPending,
		" win ":    StatusWin,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParseStatus(raw), "raw=%q", raw)
	}
}
