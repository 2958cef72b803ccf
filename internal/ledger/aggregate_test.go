package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func winBet(id int64, date, bettor string, stake, profit float64) Bet {
	return Bet{ID: id, Date: date, Bettor: bettor, Stake: stake, PotentialProfit: profit, Status: StatusWin}
}

func lossBet(id int64, date, bettor string, stake float64) Bet {
	return Bet{ID: id, Date: date, Bettor: bettor, Stake: stake, Status: StatusLoss}
}

func pendingBet(id int64, date, bettor string, stake float64) Bet {
	return Bet{ID: id, Date: date, Bettor: bettor, Stake: stake, PotentialProfit: stake, Status: StatusPending}
}

func TestRank(t *testing.T) {
	bettors := []Bettor{
		{ID: 1, Name: "A"},
		{ID: 2, Name: "B"},
		{ID: 3, Name: "C"}, // sem apostas no recorte
	}
	// A: lucro 150, 1.5 unidades; B: lucro 100, 2.0 unidades
	bets := []Bet{
		winBet(1, "2024-05-01", "A", 100, 150),
		winBet(2, "2024-05-02", "B", 50, 100),
	}

	t.Run("money mode ranks by profit", func(t *testing.T) {
		rows := Rank(bets, bettors, ModeMoney)
		require.Len(t, rows, 3)
		assert.Equal(t, "A", rows[0].Bettor.Name)
		assert.Equal(t, "B", rows[1].Bettor.Name)
		assert.Equal(t, 1, rows[0].Rank)
		assert.Equal(t, 2, rows[1].Rank)
	})

	t.Run("units mode ranks by units", func(t *testing.T) {
		rows := Rank(bets, bettors, ModeUnits)
		assert.Equal(t, "B", rows[0].Bettor.Name)
		assert.Equal(t, "A", rows[1].Bettor.Name)
	})

	t.Run("bettors without bets still appear zeroed", func(t *testing.T) {
		rows := Rank(bets, bettors, ModeMoney)
		last := rows[2]
		assert.Equal(t, "C", last.Bettor.Name)
		assert.Zero(t, last.Bets)
		assert.Zero(t, last.Profit)
		assert.Zero(t, last.WinRate)
		assert.Zero(t, last.ROI)
	})

	t.Run("pending bets never count", func(t *testing.T) {
		withPending := append([]Bet{pendingBet(9, "2024-05-03", "A", 500)}, bets...)
		rows := Rank(withPending, bettors, ModeMoney)
		assert.Equal(t, 1, rows[0].Bets)
		assert.InDelta(t, 150.0, rows[0].Profit, 1e-9)
	})

	t.Run("roi is always against money staked, even in units mode", func(t *testing.T) {
		rows := Rank(bets, bettors, ModeUnits)
		// B: lucro 100 sobre stake 50 = 200%
		assert.InDelta(t, 200.0, rows[0].ROI, 1e-9)
		// A: lucro 150 sobre stake 100 = 150%
		assert.InDelta(t, 150.0, rows[1].ROI, 1e-9)
	})

	t.Run("win rate over resolved bets", func(t *testing.T) {
		mixed := []Bet{
			winBet(1, "2024-05-01", "A", 10, 10),
			lossBet(2, "2024-05-02", "A", 10),
			winBet(3, "2024-05-03", "A", 10, 10),
			pendingBet(4, "2024-05-04", "A", 10),
		}
		rows := Rank(mixed, bettors[:1], ModeMoney)
		assert.Equal(t, 3, rows[0].Bets)
		assert.Equal(t, 2, rows[0].Wins)
		assert.InDelta(t, 66.666, rows[0].WinRate, 0.01)
	})

	t.Run("ties keep the bettor list order", func(t *testing.T) {
		even := []Bet{
			winBet(1, "2024-05-01", "A", 10, 50),
			winBet(2, "2024-05-01", "B", 10, 50),
		}
		rows := Rank(even, bettors, ModeMoney)
		assert.Equal(t, "A", rows[0].Bettor.Name)
		assert.Equal(t, "B", rows[1].Bettor.Name)
	})

	t.Run("aggregation is idempotent and does not mutate input", func(t *testing.T) {
		frozen := append([]Bet(nil), bets...)
		first := Rank(bets, bettors, ModeMoney)
		second := Rank(bets, bettors, ModeMoney)
		assert.Equal(t, first, second)
		assert.Equal(t, frozen, bets)
	})
}

func TestStreak(t *testing.T) {
	t.Run("counts consecutive wins until the first loss", func(t *testing.T) {
		// datas desc: WIN, WIN, LOSS, WIN
		bets := []Bet{
			winBet(4, "2024-05-04", "A", 10, 10),
			winBet(3, "2024-05-03", "A", 10, 10),
			lossBet(2, "2024-05-02", "A", 10),
			winBet(1, "2024-05-01", "A", 10, 10),
		}
		assert.Equal(t, 2, Streak(bets, "A"))
	})

	t.Run("pending is skipped without breaking the streak", func(t *testing.T) {
		bets := []Bet{
			pendingBet(5, "2024-05-05", "A", 10),
			winBet(4, "2024-05-04", "A", 10, 10),
			winBet(3, "2024-05-03", "A", 10, 10),
			lossBet(2, "2024-05-02", "A", 10),
		}
		assert.Equal(t, 2, Streak(bets, "A"))
	})

	t.Run("same-day ties resolve by id, newest insertion first", func(t *testing.T) {
		bets := []Bet{
			lossBet(1, "2024-05-01", "A", 10),
			winBet(2, "2024-05-01", "A", 10, 10),
		}
		assert.Equal(t, 1, Streak(bets, "A"))
	})

	t.Run("input order does not matter", func(t *testing.T) {
		bets := []Bet{
			winBet(1, "2024-05-01", "A", 10, 10),
			winBet(4, "2024-05-04", "A", 10, 10),
			lossBet(2, "2024-05-02", "A", 10),
			winBet(3, "2024-05-03", "A", 10, 10),
		}
		assert.Equal(t, 2, Streak(bets, "A"))
	})

	t.Run("no resolved bets means streak zero", func(t *testing.T) {
		assert.Zero(t, Streak([]Bet{pendingBet(1, "2024-05-01", "A", 10)}, "A"))
		assert.Zero(t, Streak(nil, "A"))
	})
}

func TestPodium(t *testing.T) {
	bettors := []Bettor{{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D"}}
	bets := []Bet{
		winBet(1, "2024-05-01", "A", 10, 400),
		winBet(2, "2024-05-01", "B", 10, 300),
		winBet(3, "2024-05-01", "C", 10, 200),
		winBet(4, "2024-05-01", "D", 10, 100),
	}
	rows := Rank(bets, bettors, ModeMoney)

	t.Run("visual order is second, first, third", func(t *testing.T) {
		podium := Podium(rows)
		require.Len(t, podium, 3)
		assert.Equal(t, "B", podium[0].Bettor.Name)
		assert.Equal(t, "A", podium[1].Bettor.Name)
		assert.Equal(t, "C", podium[2].Bettor.Name)
	})

	t.Run("remainder excludes the podium rows", func(t *testing.T) {
		rest := Remainder(rows)
		require.Len(t, rest, 1)
		assert.Equal(t, "D", rest[0].Bettor.Name)
		assert.Equal(t, 4, rest[0].Rank)
	})

	t.Run("fewer than three rows shrink the podium", func(t *testing.T) {
		two := Rank(bets[:2], bettors[:2], ModeMoney)
		podium := Podium(two)
		require.Len(t, podium, 2)
		assert.Equal(t, "B", podium[0].Bettor.Name)
		assert.Equal(t, "A", podium[1].Bettor.Name)
		assert.Empty(t, Remainder(two))
	})
}

func TestTimeSeries(t *testing.T) {
	t.Run("accumulates per day in ascending order", func(t *testing.T) {
		bets := []Bet{
			winBet(3, "2024-05-03", "A", 100, 100), // +100, +1u
			lossBet(2, "2024-05-01", "A", 40),      // -40, -1u
			winBet(1, "2024-05-01", "A", 50, 25),   // +25, +0.5u
			pendingBet(9, "2024-05-02", "A", 10),   // ignorada
		}
		points := TimeSeries(bets)
		require.Len(t, points, 2)

		assert.Equal(t, "2024-05-01", points[0].Date)
		assert.InDelta(t, -15.0, points[0].Money, 1e-9)
		assert.InDelta(t, -0.5, points[0].Units, 1e-9)

		assert.Equal(t, "2024-05-03", points[1].Date)
		assert.InDelta(t, 85.0, points[1].Money, 1e-9)
		assert.InDelta(t, 0.5, points[1].Units, 1e-9)
	})

	t.Run("empty input renders the fixed zero baseline", func(t *testing.T) {
		points := TimeSeries(nil)
		require.Len(t, points, 4)
		for _, p := range points {
			assert.Zero(t, p.Money)
			assert.Zero(t, p.Units)
		}
	})

	t.Run("only pending bets also fall back to the baseline", func(t *testing.T) {
		points := TimeSeries([]Bet{pendingBet(1, "2024-05-01", "A", 10)})
		require.Len(t, points, 4)
	})
}

func TestSummarize(t *testing.T) {
	t.Run("mixed win and loss", func(t *testing.T) {
		bets := []Bet{
			winBet(1, "2024-05-01", "A", 100, 100),
			lossBet(2, "2024-05-02", "A", 50),
		}
		s := Summarize(bets)
		assert.InDelta(t, 150.0, s.Invested, 1e-9)
		assert.InDelta(t, 50.0, s.Profit, 1e-9)
		assert.Zero(t, s.Active)
	})

	t.Run("invested includes pending stakes, profit does not", func(t *testing.T) {
		bets := []Bet{
			winBet(1, "2024-05-01", "A", 100, 100),
			pendingBet(2, "2024-05-02", "A", 70),
		}
		s := Summarize(bets)
		assert.InDelta(t, 170.0, s.Invested, 1e-9)
		assert.InDelta(t, 100.0, s.Profit, 1e-9)
		assert.Equal(t, 1, s.Active)
	})

	t.Run("currency totals come out rounded to cents", func(t *testing.T) {
		bets := []Bet{
			winBet(1, "2024-05-01", "A", 10.10, 0.1),
			winBet(2, "2024-05-01", "A", 10.10, 0.2),
			winBet(3, "2024-05-01", "A", 10.10, 0.3),
		}
		s := Summarize(bets)
		assert.Equal(t, 30.3, s.Invested)
		assert.Equal(t, 0.6, s.Profit)
	})
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.0, Round2(9.999999999998))
	assert.Equal(t, 1.23, Round2(1.2349))
	assert.Equal(t, -1.24, Round2(-1.235))
}
