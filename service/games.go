package service

import (
	"math/rand"

	"vaultrush/models"
)

// Pure wager resolvers. Each takes the stake and a rand source and returns
// the outcome with its net balance delta: a stated "2x" payout returns the
// stake plus an equal win, so the delta on a 2x win is +stake.

// MinimumStake is the floor for every staked wager.
const MinimumStake = 10

var slotSymbols = []string{"🍒", "🍋", "🔔", "⭐", "💎"}

// European wheel reds. Zero is green and loses every outside bet.
var rouletteReds = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true,
	14: true, 16: true, 18: true, 19: true, 21: true, 23: true,
	25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

func resolveCoinFlip(stake int64, call models.CoinSide, rng *rand.Rand) *models.CoinFlipResult {
	landed := models.CoinSideHeads
	if rng.Intn(2) == 1 {
		landed = models.CoinSideTails
	}

	result := &models.CoinFlipResult{Landed: landed, Delta: -stake}
	if landed == call {
		result.Won = true
		result.Delta = stake
	}
	return result
}

func resolveDice(stake int64, prediction int, rng *rand.Rand) *models.DiceResult {
	d1 := rng.Intn(6) + 1
	d2 := rng.Intn(6) + 1
	total := d1 + d2

	result := &models.DiceResult{Die1: d1, Die2: d2, Total: total, Delta: -stake}
	switch {
	case total == prediction:
		// 10x payout
		result.Won = true
		result.Delta = 9 * stake
	case abs(total-prediction) == 1:
		// Near miss refunds a quarter of the stake
		result.Close = true
		result.Delta = int64(float64(stake)*0.25) - stake
	}
	return result
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

var blackjackCards = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}

// cardValue counts an ace as 11 unless that would bust the running total.
func cardValue(card string, runningTotal int) int {
	switch card {
	case "A":
		if runningTotal+11 > 21 {
			return 1
		}
		return 11
	case "J", "Q", "K":
		return 10
	}
	// numeric cards
	value := 0
	for _, c := range card {
		value = value*10 + int(c-'0')
	}
	return value
}

// drawHand draws from an infinite shoe, hitting below 17.
func drawHand(rng *rand.Rand) ([]string, int) {
	hand := []string{blackjackCards[rng.Intn(len(blackjackCards))]}
	total := cardValue(hand[0], 0)

	second := blackjackCards[rng.Intn(len(blackjackCards))]
	hand = append(hand, second)
	total += cardValue(second, total)

	for total < 17 {
		card := blackjackCards[rng.Intn(len(blackjackCards))]
		hand = append(hand, card)
		total += cardValue(card, total)
	}

	return hand, total
}

func resolveBlackjack(stake int64, rng *rand.Rand) *models.BlackjackResult {
	playerHand, playerTotal := drawHand(rng)
	dealerHand, dealerTotal := drawHand(rng)

	result := &models.BlackjackResult{
		PlayerHand:  playerHand,
		DealerHand:  dealerHand,
		PlayerTotal: playerTotal,
		DealerTotal: dealerTotal,
		Delta:       -stake,
	}

	switch {
	case playerTotal > 21:
	case dealerTotal > 21:
		result.Won = true
		result.Delta = stake
	case playerTotal == dealerTotal:
		result.Push = true
		result.Delta = 0
	case playerTotal > dealerTotal:
		result.Won = true
		if playerTotal == 21 && len(playerHand) == 2 {
			// Natural pays 3x
			result.Natural = true
			result.Delta = 2 * stake
		} else {
			result.Delta = stake
		}
	}
	return result
}

func resolveSlots(stake int64, rng *rand.Rand) *models.SlotsResult {
	var reels [3]string
	for i := range reels {
		reels[i] = slotSymbols[rng.Intn(len(slotSymbols))]
	}

	result := &models.SlotsResult{Reels: reels, Delta: -stake}
	switch {
	case reels[0] == reels[1] && reels[1] == reels[2]:
		result.Won = true
		switch reels[0] {
		case "💎":
			result.MatchType = "Diamond Jackpot"
			result.Delta = 49 * stake
		case "🍒":
			result.MatchType = "Cherry Triple"
			result.Delta = 24 * stake
		case "🔔":
			result.MatchType = "Bell Triple"
			result.Delta = 9 * stake
		default:
			result.MatchType = "Triple Match"
			result.Delta = 4 * stake
		}
	case reels[0] == reels[1] || reels[1] == reels[2] || reels[0] == reels[2]:
		result.Won = true
		result.MatchType = "Double Match"
		result.Delta = stake
	}
	return result
}

func resolveRoulette(stake int64, bet models.RouletteBet, rng *rand.Rand) *models.RouletteResult {
	number := rng.Intn(37)

	color := "black"
	if number == 0 {
		color = "green"
	} else if rouletteReds[number] {
		color = "red"
	}

	won := false
	switch bet {
	case models.RouletteBetRed:
		won = color == "red"
	case models.RouletteBetBlack:
		won = color == "black"
	case models.RouletteBetEven:
		won = number != 0 && number%2 == 0
	case models.RouletteBetOdd:
		won = number%2 == 1
	}

	result := &models.RouletteResult{Number: number, Color: color, Won: won, Delta: -stake}
	if won {
		result.Delta = stake
	}
	return result
}

var rpsChoices = []models.RPSChoice{models.RPSRock, models.RPSPaper, models.RPSScissors}

func resolveRPS(stake int64, choice models.RPSChoice, rng *rand.Rand) *models.RPSResult {
	botChoice := rpsChoices[rng.Intn(len(rpsChoices))]

	result := &models.RPSResult{BotChoice: botChoice, Delta: -stake}
	switch {
	case choice == botChoice:
		result.Tie = true
		result.Delta = 0
	case choice.Beats(botChoice):
		result.Won = true
		result.Delta = stake
	}
	return result
}

// Lottery constants
const (
	lotteryTicketCost  = 500
	lotteryNumberCount = 5
	lotteryNumberMax   = 50
)

var lotteryPrizes = map[int]int64{
	5: 50000,
	4: 5000,
	3: 500,
}

// drawLotteryNumbers picks unique numbers from [1, lotteryNumberMax],
// sorted ascending.
func drawLotteryNumbers(rng *rand.Rand) []int {
	drawn := make(map[int]bool, lotteryNumberCount)
	numbers := make([]int, 0, lotteryNumberCount)
	for len(numbers) < lotteryNumberCount {
		n := rng.Intn(lotteryNumberMax) + 1
		if drawn[n] {
			continue
		}
		drawn[n] = true
		numbers = append(numbers, n)
	}
	for i := 1; i < len(numbers); i++ {
		for j := i; j > 0 && numbers[j-1] > numbers[j]; j-- {
			numbers[j-1], numbers[j] = numbers[j], numbers[j-1]
		}
	}
	return numbers
}

func resolveLottery(rng *rand.Rand) *models.LotteryResult {
	yours := drawLotteryNumbers(rng)
	winning := drawLotteryNumbers(rng)

	winningSet := make(map[int]bool, len(winning))
	for _, n := range winning {
		winningSet[n] = true
	}

	matches := 0
	for _, n := range yours {
		if winningSet[n] {
			matches++
		}
	}

	result := &models.LotteryResult{
		YourNumbers:    yours,
		WinningNumbers: winning,
		Matches:        matches,
		Delta:          -lotteryTicketCost,
	}
	if prize, ok := lotteryPrizes[matches]; ok {
		result.Won = true
		result.Prize = prize
		result.Delta = prize - lotteryTicketCost
	}
	return result
}

// Trivia questions are a fixed bank; CorrectAnswer is a 1-based index into
// Options.
var triviaQuestions = []models.TriviaQuestion{
	{ID: 0, Question: "What is the capital of France?", Options: []string{"London", "Paris", "Berlin", "Madrid"}},
	{ID: 1, Question: "How many planets are in our solar system?", Options: []string{"7", "8", "9", "10"}},
	{ID: 2, Question: "What is the largest ocean on Earth?", Options: []string{"Atlantic", "Indian", "Arctic", "Pacific"}},
	{ID: 3, Question: "Who painted the Mona Lisa?", Options: []string{"Van Gogh", "Da Vinci", "Picasso", "Michelangelo"}},
	{ID: 4, Question: "What year did World War II end?", Options: []string{"1943", "1944", "1945", "1946"}},
	{ID: 5, Question: "What is the smallest prime number?", Options: []string{"0", "1", "2", "3"}},
	{ID: 6, Question: "How many continents are there?", Options: []string{"5", "6", "7", "8"}},
	{ID: 7, Question: "What is the chemical symbol for gold?", Options: []string{"Go", "Gd", "Au", "Ag"}},
}

var triviaAnswers = map[int]int{
	0: 2, 1: 2, 2: 4, 3: 2, 4: 3, 5: 3, 6: 3, 7: 3,
}

func drawTriviaQuestion(rng *rand.Rand) models.TriviaQuestion {
	q := triviaQuestions[rng.Intn(len(triviaQuestions))]
	q.Reward = 200 + int64(rng.Intn(300))
	return q
}
