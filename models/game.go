package models

// CoinSide is a coinflip call.
type CoinSide string

const (
	CoinSideHeads CoinSide = "heads"
	CoinSideTails CoinSide = "tails"
)

// Valid reports whether the side is a known call
func (s CoinSide) Valid() bool {
	return s == CoinSideHeads || s == CoinSideTails
}

// RouletteBet is a roulette outside bet.
type RouletteBet string

const (
	RouletteBetRed   RouletteBet = "red"
	RouletteBetBlack RouletteBet = "black"
	RouletteBetEven  RouletteBet = "even"
	RouletteBetOdd   RouletteBet = "odd"
)

// Valid reports whether the bet type is known
func (b RouletteBet) Valid() bool {
	switch b {
	case RouletteBetRed, RouletteBetBlack, RouletteBetEven, RouletteBetOdd:
		return true
	}
	return false
}

// RPSChoice is a rock-paper-scissors throw.
type RPSChoice string

const (
	RPSRock     RPSChoice = "rock"
	RPSPaper    RPSChoice = "paper"
	RPSScissors RPSChoice = "scissors"
)

// Valid reports whether the choice is a known throw
func (c RPSChoice) Valid() bool {
	return c == RPSRock || c == RPSPaper || c == RPSScissors
}

// Beats reports whether the choice wins against the other throw
func (c RPSChoice) Beats(other RPSChoice) bool {
	switch c {
	case RPSRock:
		return other == RPSScissors
	case RPSPaper:
		return other == RPSRock
	case RPSScissors:
		return other == RPSPaper
	}
	return false
}

// CoinFlipResult is the outcome of a coinflip wager
type CoinFlipResult struct {
	Landed     CoinSide
	Won        bool
	Delta      int64
	NewBalance int64
}

// DiceResult is the outcome of a two-dice prediction wager
type DiceResult struct {
	Die1       int
	Die2       int
	Total      int
	Won        bool
	Close      bool
	Delta      int64
	NewBalance int64
}

// BlackjackResult is the outcome of a simulated blackjack hand
type BlackjackResult struct {
	PlayerHand  []string
	DealerHand  []string
	PlayerTotal int
	DealerTotal int
	Won         bool
	Push        bool
	Natural     bool
	Delta       int64
	NewBalance  int64
}

// SlotsResult is the outcome of a slot machine spin
type SlotsResult struct {
	Reels      [3]string
	Won        bool
	MatchType  string
	Delta      int64
	NewBalance int64
}

// RouletteResult is the outcome of a roulette spin
type RouletteResult struct {
	Number     int
	Color      string
	Won        bool
	Delta      int64
	NewBalance int64
}

// RPSResult is the outcome of a rock-paper-scissors wager
type RPSResult struct {
	BotChoice  RPSChoice
	Won        bool
	Tie        bool
	Delta      int64
	NewBalance int64
}

// TriviaQuestion is a drawn question awaiting an answer
type TriviaQuestion struct {
	ID       int
	Question string
	Options  []string
	Reward   int64
}

// TriviaResult is the outcome of answering a trivia question
type TriviaResult struct {
	Correct       bool
	CorrectAnswer int
	Reward        int64
	NewBalance    int64
}

// LotteryResult is the outcome of a lottery ticket
type LotteryResult struct {
	YourNumbers    []int
	WinningNumbers []int
	Matches        int
	Won            bool
	Prize          int64
	Delta          int64
	NewBalance     int64
}

// DailyResult is the outcome of a daily reward claim
type DailyResult struct {
	Reward     int64
	Streak     int
	NewBalance int64
}

// RaidResult is the outcome of a vault raid attempt
type RaidResult struct {
	Success    bool
	Chance     float64
	Stolen     int64
	NewBalance int64
}

// CrateResult is the outcome of opening a mystery crate
type CrateResult struct {
	Reward     string
	Coins      int64
	Tokens     int
	Artifact   *Artifact
	NewBalance int64
}
