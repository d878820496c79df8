package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"vaultrush/events"
	"vaultrush/models"
)

const (
	dailyWindow     = 20 * time.Hour
	dailyBaseReward = 500
	dailyStreakCap  = 1000

	raidCost      = 500
	raidBaseOdds  = 0.4
	raidStealRate = 0.15

	crateCost = 1000
)

type gameService struct {
	uowFactory UnitOfWorkFactory
	rng        *rand.Rand
}

// NewGameService creates a new game service
func NewGameService(uowFactory UnitOfWorkFactory) GameService {
	return &gameService{
		uowFactory: uowFactory,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// stakeOutcome applies a resolved wager delta atomically and audits it.
// A positive delta is a house payout, a negative one a loss to the house.
func stakeOutcome(ctx context.Context, uow UnitOfWork, discordID int64, account *models.Account, delta int64, game string, metadata map[string]any) (int64, error) {
	var txType models.TransactionType
	switch {
	case delta > 0:
		txType = models.TransactionTypeGameWin
		if err := uow.AccountRepository().CreditCoins(ctx, discordID, delta); err != nil {
			return 0, fmt.Errorf("failed to credit winnings: %w", err)
		}
	case delta < 0:
		txType = models.TransactionTypeGameLoss
		if err := uow.AccountRepository().DebitCoins(ctx, discordID, -delta); err != nil {
			return 0, fmt.Errorf("failed to collect stake: %w", err)
		}
	default:
		txType = models.TransactionTypeGamePush
		if err := uow.AccountRepository().TouchActivity(ctx, discordID); err != nil {
			return 0, err
		}
	}

	newBalance := account.Coins + delta
	if metadata == nil {
		metadata = map[string]any{}
	}
	metadata["game"] = game

	entry := &models.LedgerEntry{
		AccountID:       discordID,
		TransactionType: txType,
		Amount:          delta,
		Metadata:        metadata,
	}
	if err := RecordLedgerEntry(ctx, uow, entry, newBalance); err != nil {
		return 0, err
	}

	return newBalance, nil
}

// loadStakedAccount begins validation for a staked game: the account must
// exist and cover the stake, and the stake must meet the minimum.
func loadStakedAccount(ctx context.Context, uow UnitOfWork, discordID, stake int64) (*models.Account, error) {
	if stake < MinimumStake {
		return nil, fmt.Errorf("minimum stake is %d coins", MinimumStake)
	}

	account, err := uow.AccountRepository().GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, fmt.Errorf("account not found")
	}
	if !account.CanAfford(stake) {
		return nil, fmt.Errorf("insufficient coins: have %d, need %d", account.Coins, stake)
	}

	return account, nil
}

func (s *gameService) PlayCoinFlip(ctx context.Context, discordID int64, stake int64, call models.CoinSide) (*models.CoinFlipResult, error) {
	if !call.Valid() {
		return nil, fmt.Errorf("unknown coin side %q", call)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := loadStakedAccount(ctx, uow, discordID, stake)
	if err != nil {
		return nil, err
	}

	result := resolveCoinFlip(stake, call, s.rng)
	result.NewBalance, err = stakeOutcome(ctx, uow, discordID, account, result.Delta, "coinflip", map[string]any{
		"stake":  stake,
		"call":   string(call),
		"landed": string(result.Landed),
	})
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return result, nil
}

func (s *gameService) PlayDice(ctx context.Context, discordID int64, stake int64, prediction int) (*models.DiceResult, error) {
	if prediction < 2 || prediction > 12 {
		return nil, fmt.Errorf("prediction must be between 2 and 12")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := loadStakedAccount(ctx, uow, discordID, stake)
	if err != nil {
		return nil, err
	}

	result := resolveDice(stake, prediction, s.rng)
	result.NewBalance, err = stakeOutcome(ctx, uow, discordID, account, result.Delta, "dice", map[string]any{
		"stake":      stake,
		"prediction": prediction,
		"total":      result.Total,
	})
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return result, nil
}

func (s *gameService) PlayBlackjack(ctx context.Context, discordID int64, stake int64) (*models.BlackjackResult, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := loadStakedAccount(ctx, uow, discordID, stake)
	if err != nil {
		return nil, err
	}

	result := resolveBlackjack(stake, s.rng)
	result.NewBalance, err = stakeOutcome(ctx, uow, discordID, account, result.Delta, "blackjack", map[string]any{
		"stake":        stake,
		"player_total": result.PlayerTotal,
		"dealer_total": result.DealerTotal,
	})
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return result, nil
}

func (s *gameService) PlaySlots(ctx context.Context, discordID int64, stake int64) (*models.SlotsResult, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := loadStakedAccount(ctx, uow, discordID, stake)
	if err != nil {
		return nil, err
	}

	result := resolveSlots(stake, s.rng)
	result.NewBalance, err = stakeOutcome(ctx, uow, discordID, account, result.Delta, "slots", map[string]any{
		"stake": stake,
		"match": result.MatchType,
	})
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return result, nil
}

func (s *gameService) PlayRoulette(ctx context.Context, discordID int64, stake int64, bet models.RouletteBet) (*models.RouletteResult, error) {
	if !bet.Valid() {
		return nil, fmt.Errorf("unknown roulette bet %q", bet)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := loadStakedAccount(ctx, uow, discordID, stake)
	if err != nil {
		return nil, err
	}

	result := resolveRoulette(stake, bet, s.rng)
	result.NewBalance, err = stakeOutcome(ctx, uow, discordID, account, result.Delta, "roulette", map[string]any{
		"stake":  stake,
		"bet":    string(bet),
		"number": result.Number,
	})
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return result, nil
}

func (s *gameService) PlayRPS(ctx context.Context, discordID int64, stake int64, choice models.RPSChoice) (*models.RPSResult, error) {
	if !choice.Valid() {
		return nil, fmt.Errorf("unknown choice %q", choice)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := loadStakedAccount(ctx, uow, discordID, stake)
	if err != nil {
		return nil, err
	}

	result := resolveRPS(stake, choice, s.rng)
	result.NewBalance, err = stakeOutcome(ctx, uow, discordID, account, result.Delta, "rps", map[string]any{
		"stake":      stake,
		"choice":     string(choice),
		"bot_choice": string(result.BotChoice),
	})
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return result, nil
}

// DrawTrivia returns a random question with its reward. No coins move until
// the answer comes back through AnswerTrivia.
func (s *gameService) DrawTrivia(ctx context.Context) (*models.TriviaQuestion, error) {
	q := drawTriviaQuestion(s.rng)
	return &q, nil
}

// AnswerTrivia settles a drawn question. Only a correct answer pays; a wrong
// one costs nothing.
func (s *gameService) AnswerTrivia(ctx context.Context, discordID int64, questionID int, answer int, reward int64) (*models.TriviaResult, error) {
	correct, ok := triviaAnswers[questionID]
	if !ok {
		return nil, fmt.Errorf("unknown question %d", questionID)
	}
	if reward < 200 || reward >= 500 {
		return nil, fmt.Errorf("reward %d out of range", reward)
	}

	result := &models.TriviaResult{
		Correct:       answer == correct,
		CorrectAnswer: correct,
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := uow.AccountRepository().GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, fmt.Errorf("account not found")
	}

	result.NewBalance = account.Coins
	if result.Correct {
		result.Reward = reward
		result.NewBalance += reward

		if err := uow.AccountRepository().CreditCoins(ctx, discordID, reward); err != nil {
			return nil, fmt.Errorf("failed to credit reward: %w", err)
		}

		entry := &models.LedgerEntry{
			AccountID:       discordID,
			TransactionType: models.TransactionTypeTriviaReward,
			Amount:          reward,
			Metadata:        map[string]any{"question": questionID},
		}
		if err := RecordLedgerEntry(ctx, uow, entry, result.NewBalance); err != nil {
			return nil, err
		}

		if err := uow.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit transaction: %w", err)
		}
	}

	return result, nil
}

func (s *gameService) BuyLotteryTicket(ctx context.Context, discordID int64) (*models.LotteryResult, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := uow.AccountRepository().GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, fmt.Errorf("account not found")
	}
	if !account.CanAfford(lotteryTicketCost) {
		return nil, fmt.Errorf("lottery ticket costs %d coins", lotteryTicketCost)
	}

	result := resolveLottery(s.rng)

	switch {
	case result.Delta > 0:
		if err := uow.AccountRepository().CreditCoins(ctx, discordID, result.Delta); err != nil {
			return nil, fmt.Errorf("failed to credit prize: %w", err)
		}
	case result.Delta < 0:
		if err := uow.AccountRepository().DebitCoins(ctx, discordID, -result.Delta); err != nil {
			return nil, fmt.Errorf("failed to collect ticket cost: %w", err)
		}
	default:
		if err := uow.AccountRepository().TouchActivity(ctx, discordID); err != nil {
			return nil, err
		}
	}
	result.NewBalance = account.Coins + result.Delta

	entry := &models.LedgerEntry{
		AccountID:       discordID,
		TransactionType: models.TransactionTypeLotteryPlay,
		Amount:          result.Delta,
		Metadata: map[string]any{
			"matches": result.Matches,
			"prize":   result.Prize,
		},
	}
	if err := RecordLedgerEntry(ctx, uow, entry, result.NewBalance); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return result, nil
}

// ClaimDaily pays the daily reward once per 20-hour window. The streak is
// the number of claims in the trailing 30 days, so missed days decay it.
func (s *gameService) ClaimDaily(ctx context.Context, discordID int64) (*models.DailyResult, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := uow.AccountRepository().GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, fmt.Errorf("account not found")
	}

	last, err := uow.LedgerRepository().LastByType(ctx, discordID, models.TransactionTypeDailyReward)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if last != nil {
		if elapsed := now.Sub(last.CreatedAt); elapsed < dailyWindow {
			hoursLeft := int((dailyWindow - elapsed).Hours()) + 1
			return nil, fmt.Errorf("daily reward already claimed, come back in %d hours", hoursLeft)
		}
	}

	claims, err := uow.LedgerRepository().CountByTypeSince(ctx, discordID, models.TransactionTypeDailyReward, now.AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}
	streak := claims + 1

	bonus := int64(streak) * 100
	if bonus > dailyStreakCap {
		bonus = dailyStreakCap
	}
	reward := int64(dailyBaseReward) + bonus

	if err := uow.AccountRepository().CreditCoins(ctx, discordID, reward); err != nil {
		return nil, fmt.Errorf("failed to credit daily reward: %w", err)
	}

	entry := &models.LedgerEntry{
		AccountID:       discordID,
		TransactionType: models.TransactionTypeDailyReward,
		Amount:          reward,
		Metadata:        map[string]any{"streak": streak},
	}
	if err := RecordLedgerEntry(ctx, uow, entry, account.Coins+reward); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.DailyResult{
		Reward:     reward,
		Streak:     streak,
		NewBalance: account.Coins + reward,
	}, nil
}

// Raid attempts to steal from another vault. The entry fee is spent either
// way; on success 15% of the defender's balance moves to the attacker.
func (s *gameService) Raid(ctx context.Context, attackerID, targetID int64) (*models.RaidResult, error) {
	if attackerID == targetID {
		return nil, fmt.Errorf("you cannot raid your own vault")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	attacker, err := uow.AccountRepository().GetByDiscordID(ctx, attackerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attacker: %w", err)
	}
	if attacker == nil {
		return nil, fmt.Errorf("account not found")
	}
	target, err := uow.AccountRepository().GetByDiscordID(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get target: %w", err)
	}
	if target == nil {
		return nil, fmt.Errorf("target not found")
	}
	if !attacker.CanAfford(raidCost) {
		return nil, fmt.Errorf("a raid costs %d coins", raidCost)
	}

	attackerArtifacts, err := uow.ArtifactRepository().CountByOwner(ctx, attackerID)
	if err != nil {
		return nil, err
	}
	defenderArtifacts, err := uow.ArtifactRepository().CountByOwner(ctx, targetID)
	if err != nil {
		return nil, err
	}

	chance := raidBaseOdds + 0.05*float64(attackerArtifacts) - 0.03*float64(defenderArtifacts)
	if chance < 0 {
		chance = 0
	}
	if chance > 1 {
		chance = 1
	}

	if err := uow.AccountRepository().DebitCoins(ctx, attackerID, raidCost); err != nil {
		return nil, fmt.Errorf("failed to pay raid cost: %w", err)
	}

	result := &models.RaidResult{Chance: chance}
	if s.rng.Float64() < chance {
		result.Success = true
		result.Stolen = int64(float64(target.Coins) * raidStealRate)

		if result.Stolen > 0 {
			if err := uow.AccountRepository().DeductCoins(ctx, targetID, result.Stolen); err != nil {
				return nil, fmt.Errorf("failed to loot target: %w", err)
			}
			if err := uow.AccountRepository().AddCoins(ctx, attackerID, result.Stolen); err != nil {
				return nil, fmt.Errorf("failed to deliver loot: %w", err)
			}

			lootEntry := &models.LedgerEntry{
				AccountID:       targetID,
				TransactionType: models.TransactionTypeRaidLooted,
				Amount:          -result.Stolen,
				Metadata:        map[string]any{"attacker": attackerID},
			}
			if err := RecordLedgerEntry(ctx, uow, lootEntry, target.Coins-result.Stolen); err != nil {
				return nil, err
			}
		}

		result.NewBalance = attacker.Coins - raidCost + result.Stolen
		entry := &models.LedgerEntry{
			AccountID:       attackerID,
			TransactionType: models.TransactionTypeRaidSuccess,
			Amount:          result.Stolen - raidCost,
			Metadata:        map[string]any{"target": targetID, "chance": chance},
		}
		if err := RecordLedgerEntry(ctx, uow, entry, result.NewBalance); err != nil {
			return nil, err
		}
	} else {
		result.NewBalance = attacker.Coins - raidCost
		entry := &models.LedgerEntry{
			AccountID:       attackerID,
			TransactionType: models.TransactionTypeRaidFailed,
			Amount:          -raidCost,
			Metadata:        map[string]any{"target": targetID, "chance": chance},
		}
		if err := RecordLedgerEntry(ctx, uow, entry, result.NewBalance); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return result, nil
}

// OpenCrate spends the crate cost on a random reward: coins, vault tokens
// or an artifact.
func (s *gameService) OpenCrate(ctx context.Context, discordID int64) (*models.CrateResult, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := uow.AccountRepository().GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, fmt.Errorf("account not found")
	}
	if !account.CanAfford(crateCost) {
		return nil, fmt.Errorf("a mystery crate costs %d coins", crateCost)
	}

	if err := uow.AccountRepository().DebitCoins(ctx, discordID, crateCost); err != nil {
		return nil, fmt.Errorf("failed to pay for crate: %w", err)
	}

	result := &models.CrateResult{NewBalance: account.Coins - crateCost}
	metadata := map[string]any{}

	roll := s.rng.Float64()
	switch {
	case roll < 0.60:
		result.Reward = "coins"
		result.Coins = int64(s.rng.Intn(1000)) + 500
		result.NewBalance += result.Coins
		if err := uow.AccountRepository().CreditCoins(ctx, discordID, result.Coins); err != nil {
			return nil, fmt.Errorf("failed to credit crate coins: %w", err)
		}
		metadata["coins"] = result.Coins
	case roll < 0.90:
		result.Reward = "tokens"
		result.Tokens = s.rng.Intn(5) + 1
		if err := uow.AccountRepository().AddTokens(ctx, discordID, result.Tokens); err != nil {
			return nil, fmt.Errorf("failed to credit crate tokens: %w", err)
		}
		metadata["tokens"] = result.Tokens
	default:
		result.Reward = "artifact"
		artifact := rollArtifactTemplate(discordID, "mystery_crate", s.rng)
		artifact, err = uow.ArtifactRepository().Create(ctx, artifact)
		if err != nil {
			return nil, err
		}
		result.Artifact = artifact
		metadata["artifact"] = artifact.Name

		uow.EventBus().Publish(events.ArtifactDroppedEvent{
			OwnerID:    discordID,
			ArtifactID: artifact.ID,
			Name:       artifact.Name,
			Rarity:     artifact.Rarity,
			Source:     artifact.AcquiredFrom,
		})
	}

	entry := &models.LedgerEntry{
		AccountID:       discordID,
		TransactionType: models.TransactionTypeCrateOpen,
		Amount:          result.Coins - crateCost,
		Metadata:        metadata,
	}
	if err := RecordLedgerEntry(ctx, uow, entry, result.NewBalance); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return result, nil
}
