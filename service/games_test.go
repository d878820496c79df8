package service

import (
	"math/rand"
	"testing"

	"vaultrush/models"

	"github.com/stretchr/testify/assert"
)

func TestResolveCoinFlip_DeltaMatchesOutcome(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 200; i++ {
		result := resolveCoinFlip(100, models.CoinSideHeads, rng)

		assert.True(t, result.Landed == models.CoinSideHeads || result.Landed == models.CoinSideTails)
		if result.Landed == models.CoinSideHeads {
			assert.True(t, result.Won)
			assert.Equal(t, int64(100), result.Delta)
		} else {
			assert.False(t, result.Won)
			assert.Equal(t, int64(-100), result.Delta)
		}
	}
}

func TestResolveDice_PayoutTiers(t *testing.T) {
	rng := rand.New(rand.NewSource(2))

	for i := 0; i < 500; i++ {
		result := resolveDice(100, 7, rng)

		assert.GreaterOrEqual(t, result.Die1, 1)
		assert.LessOrEqual(t, result.Die1, 6)
		assert.GreaterOrEqual(t, result.Die2, 1)
		assert.LessOrEqual(t, result.Die2, 6)
		assert.Equal(t, result.Die1+result.Die2, result.Total)

		switch {
		case result.Total == 7:
			assert.True(t, result.Won)
			assert.Equal(t, int64(900), result.Delta)
		case result.Total == 6 || result.Total == 8:
			assert.True(t, result.Close)
			assert.Equal(t, int64(-75), result.Delta)
		default:
			assert.False(t, result.Won)
			assert.False(t, result.Close)
			assert.Equal(t, int64(-100), result.Delta)
		}
	}
}

func TestResolveBlackjack_DeltaFollowsTotals(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	sawWin, sawLoss := false, false
	for i := 0; i < 500; i++ {
		result := resolveBlackjack(100, rng)

		// Hands stand at 17 or above
		assert.GreaterOrEqual(t, result.PlayerTotal, 17)
		assert.GreaterOrEqual(t, result.DealerTotal, 17)

		switch {
		case result.PlayerTotal > 21:
			assert.Equal(t, int64(-100), result.Delta)
			sawLoss = true
		case result.DealerTotal > 21:
			assert.True(t, result.Won)
			assert.Equal(t, int64(100), result.Delta)
			sawWin = true
		case result.PlayerTotal == result.DealerTotal:
			assert.True(t, result.Push)
			assert.Equal(t, int64(0), result.Delta)
		case result.PlayerTotal > result.DealerTotal:
			assert.True(t, result.Won)
			if result.Natural {
				assert.Equal(t, 21, result.PlayerTotal)
				assert.Len(t, result.PlayerHand, 2)
				assert.Equal(t, int64(200), result.Delta)
			} else {
				assert.Equal(t, int64(100), result.Delta)
			}
			sawWin = true
		default:
			assert.Equal(t, int64(-100), result.Delta)
			sawLoss = true
		}
	}
	assert.True(t, sawWin)
	assert.True(t, sawLoss)
}

func TestResolveSlots_PayoutTiers(t *testing.T) {
	rng := rand.New(rand.NewSource(4))

	for i := 0; i < 1000; i++ {
		result := resolveSlots(100, rng)
		r := result.Reels

		switch {
		case r[0] == r[1] && r[1] == r[2]:
			assert.True(t, result.Won)
			switch r[0] {
			case "💎":
				assert.Equal(t, int64(4900), result.Delta)
			case "🍒":
				assert.Equal(t, int64(2400), result.Delta)
			case "🔔":
				assert.Equal(t, int64(900), result.Delta)
			default:
				assert.Equal(t, int64(400), result.Delta)
			}
		case r[0] == r[1] || r[1] == r[2] || r[0] == r[2]:
			assert.True(t, result.Won)
			assert.Equal(t, "Double Match", result.MatchType)
			assert.Equal(t, int64(100), result.Delta)
		default:
			assert.False(t, result.Won)
			assert.Equal(t, int64(-100), result.Delta)
		}
	}
}

func TestResolveRoulette_ZeroLosesOutsideBets(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	bets := []models.RouletteBet{
		models.RouletteBetRed,
		models.RouletteBetBlack,
		models.RouletteBetEven,
		models.RouletteBetOdd,
	}

	for i := 0; i < 1000; i++ {
		bet := bets[i%len(bets)]
		result := resolveRoulette(100, bet, rng)

		assert.GreaterOrEqual(t, result.Number, 0)
		assert.LessOrEqual(t, result.Number, 36)

		if result.Number == 0 {
			assert.Equal(t, "green", result.Color)
			assert.False(t, result.Won)
			assert.Equal(t, int64(-100), result.Delta)
			continue
		}

		var expectWin bool
		switch bet {
		case models.RouletteBetRed:
			expectWin = result.Color == "red"
		case models.RouletteBetBlack:
			expectWin = result.Color == "black"
		case models.RouletteBetEven:
			expectWin = result.Number%2 == 0
		case models.RouletteBetOdd:
			expectWin = result.Number%2 == 1
		}
		assert.Equal(t, expectWin, result.Won)
		if result.Won {
			assert.Equal(t, int64(100), result.Delta)
		} else {
			assert.Equal(t, int64(-100), result.Delta)
		}
	}
}

func TestResolveRPS_Outcomes(t *testing.T) {
	rng := rand.New(rand.NewSource(6))

	for i := 0; i < 300; i++ {
		result := resolveRPS(100, models.RPSRock, rng)

		switch result.BotChoice {
		case models.RPSRock:
			assert.True(t, result.Tie)
			assert.Equal(t, int64(0), result.Delta)
		case models.RPSScissors:
			assert.True(t, result.Won)
			assert.Equal(t, int64(100), result.Delta)
		case models.RPSPaper:
			assert.False(t, result.Won)
			assert.Equal(t, int64(-100), result.Delta)
		}
	}
}

func TestRPSChoice_Beats(t *testing.T) {
	assert.True(t, models.RPSRock.Beats(models.RPSScissors))
	assert.True(t, models.RPSPaper.Beats(models.RPSRock))
	assert.True(t, models.RPSScissors.Beats(models.RPSPaper))
	assert.False(t, models.RPSRock.Beats(models.RPSPaper))
	assert.False(t, models.RPSRock.Beats(models.RPSRock))
}

func TestDrawLotteryNumbers_UniqueSortedInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 100; i++ {
		numbers := drawLotteryNumbers(rng)

		assert.Len(t, numbers, lotteryNumberCount)
		seen := make(map[int]bool)
		for idx, n := range numbers {
			assert.GreaterOrEqual(t, n, 1)
			assert.LessOrEqual(t, n, lotteryNumberMax)
			assert.False(t, seen[n], "numbers must be unique")
			seen[n] = true
			if idx > 0 {
				assert.Greater(t, n, numbers[idx-1], "numbers must be sorted ascending")
			}
		}
	}
}

func TestResolveLottery_PrizeTiers(t *testing.T) {
	rng := rand.New(rand.NewSource(8))

	for i := 0; i < 500; i++ {
		result := resolveLottery(rng)

		switch result.Matches {
		case 5:
			assert.Equal(t, int64(50000), result.Prize)
		case 4:
			assert.Equal(t, int64(5000), result.Prize)
		case 3:
			assert.Equal(t, int64(500), result.Prize)
		default:
			assert.False(t, result.Won)
			assert.Equal(t, int64(0), result.Prize)
		}
		assert.Equal(t, result.Prize-int64(lotteryTicketCost), result.Delta)
	}
}

func TestDrawTriviaQuestion_RewardRange(t *testing.T) {
	rng := rand.New(rand.NewSource(9))

	for i := 0; i < 100; i++ {
		q := drawTriviaQuestion(rng)

		assert.GreaterOrEqual(t, q.Reward, int64(200))
		assert.Less(t, q.Reward, int64(500))
		assert.Len(t, q.Options, 4)

		correct, ok := triviaAnswers[q.ID]
		assert.True(t, ok)
		assert.GreaterOrEqual(t, correct, 1)
		assert.LessOrEqual(t, correct, len(q.Options))
	}
}

func TestCardValue_AceAdjustsDown(t *testing.T) {
	assert.Equal(t, 11, cardValue("A", 0))
	assert.Equal(t, 1, cardValue("A", 11))
	assert.Equal(t, 10, cardValue("K", 0))
	assert.Equal(t, 10, cardValue("10", 0))
	assert.Equal(t, 2, cardValue("2", 0))
}
