package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"vaultrush/models"

	"github.com/bwmarrin/discordgo"
)

// ensureAccount loads or creates the caller's account before a game runs
func (b *Bot) ensureAccount(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) (int64, bool) {
	discordID, username, err := callerID(i)
	if err != nil {
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return 0, false
	}
	if _, err := b.vaultService.GetOrCreateAccount(ctx, discordID, username); err != nil {
		b.respondWithError(s, i, "Unable to load your account. Please try again.")
		return 0, false
	}
	return discordID, true
}

func formatOutcome(delta, newBalance int64) string {
	if delta > 0 {
		return fmt.Sprintf("You won **%s coins**! New balance: **%s coins**", FormatCoins(delta), FormatCoins(newBalance))
	}
	if delta < 0 {
		return fmt.Sprintf("You lost **%s coins**. New balance: **%s coins**", FormatCoins(-delta), FormatCoins(newBalance))
	}
	return fmt.Sprintf("Push. Your stake came back. Balance: **%s coins**", FormatCoins(newBalance))
}

func (b *Bot) handleCoinFlip(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	discordID, ok := b.ensureAccount(ctx, s, i)
	if !ok {
		return
	}

	opts := optionMap(i.ApplicationCommandData().Options)
	result, err := b.gameService.PlayCoinFlip(ctx, discordID, opts["stake"].IntValue(), models.CoinSide(opts["call"].StringValue()))
	if err != nil {
		b.respondWithError(s, i, err.Error())
		return
	}

	b.respond(s, i, fmt.Sprintf("🪙 The coin landed **%s**. %s", result.Landed, formatOutcome(result.Delta, result.NewBalance)))
}

func (b *Bot) handleDice(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	discordID, ok := b.ensureAccount(ctx, s, i)
	if !ok {
		return
	}

	opts := optionMap(i.ApplicationCommandData().Options)
	result, err := b.gameService.PlayDice(ctx, discordID, opts["stake"].IntValue(), int(opts["prediction"].IntValue()))
	if err != nil {
		b.respondWithError(s, i, err.Error())
		return
	}

	msg := fmt.Sprintf("🎲 Rolled **%d + %d = %d**. ", result.Die1, result.Die2, result.Total)
	if result.Won {
		msg += "Exact hit, 10x payout! "
	} else if result.Close {
		msg += "One off, partial refund. "
	}
	b.respond(s, i, msg+formatOutcome(result.Delta, result.NewBalance))
}

func (b *Bot) handleBlackjack(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	discordID, ok := b.ensureAccount(ctx, s, i)
	if !ok {
		return
	}

	opts := optionMap(i.ApplicationCommandData().Options)
	result, err := b.gameService.PlayBlackjack(ctx, discordID, opts["stake"].IntValue())
	if err != nil {
		b.respondWithError(s, i, err.Error())
		return
	}

	msg := fmt.Sprintf("🃏 You: %s (**%d**) | Dealer: %s (**%d**)\n",
		strings.Join(result.PlayerHand, " "), result.PlayerTotal,
		strings.Join(result.DealerHand, " "), result.DealerTotal)
	if result.Natural {
		msg += "Blackjack! "
	}
	b.respond(s, i, msg+formatOutcome(result.Delta, result.NewBalance))
}

func (b *Bot) handleSlots(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	discordID, ok := b.ensureAccount(ctx, s, i)
	if !ok {
		return
	}

	opts := optionMap(i.ApplicationCommandData().Options)
	result, err := b.gameService.PlaySlots(ctx, discordID, opts["stake"].IntValue())
	if err != nil {
		b.respondWithError(s, i, err.Error())
		return
	}

	msg := fmt.Sprintf("🎰 %s %s %s — ", result.Reels[0], result.Reels[1], result.Reels[2])
	b.respond(s, i, msg+formatOutcome(result.Delta, result.NewBalance))
}

func (b *Bot) handleRoulette(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	discordID, ok := b.ensureAccount(ctx, s, i)
	if !ok {
		return
	}

	opts := optionMap(i.ApplicationCommandData().Options)
	result, err := b.gameService.PlayRoulette(ctx, discordID, opts["stake"].IntValue(), models.RouletteBet(opts["bet"].StringValue()))
	if err != nil {
		b.respondWithError(s, i, err.Error())
		return
	}

	msg := fmt.Sprintf("🎡 The ball landed on **%d %s**. ", result.Number, result.Color)
	b.respond(s, i, msg+formatOutcome(result.Delta, result.NewBalance))
}

func (b *Bot) handleRPS(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	discordID, ok := b.ensureAccount(ctx, s, i)
	if !ok {
		return
	}

	opts := optionMap(i.ApplicationCommandData().Options)
	result, err := b.gameService.PlayRPS(ctx, discordID, opts["stake"].IntValue(), models.RPSChoice(opts["choice"].StringValue()))
	if err != nil {
		b.respondWithError(s, i, err.Error())
		return
	}

	msg := fmt.Sprintf("✊ The bot threw **%s**. ", result.BotChoice)
	b.respond(s, i, msg+formatOutcome(result.Delta, result.NewBalance))
}

func (b *Bot) handleTriviaCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		b.respondWithError(s, i, "Missing subcommand.")
		return
	}

	switch options[0].Name {
	case "play":
		b.handleTriviaPlay(s, i)
	case "answer":
		b.handleTriviaAnswer(s, i, options[0].Options)
	}
}

func (b *Bot) handleTriviaPlay(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	discordID, ok := b.ensureAccount(ctx, s, i)
	if !ok {
		return
	}

	question, err := b.gameService.DrawTrivia(ctx)
	if err != nil {
		b.respondWithError(s, i, "Unable to draw a question. Please try again.")
		return
	}

	b.triviaMu.Lock()
	b.trivia[discordID] = &pendingTrivia{question: question, drawnAt: time.Now()}
	b.triviaMu.Unlock()

	var sb strings.Builder
	fmt.Fprintf(&sb, "🧠 **%s** (worth %s coins)\n", question.Question, FormatCoins(question.Reward))
	for idx, option := range question.Options {
		fmt.Fprintf(&sb, "%d. %s\n", idx+1, option)
	}
	sb.WriteString("Answer with `/trivia answer`.")
	b.respond(s, i, sb.String())
}

func (b *Bot) handleTriviaAnswer(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	discordID, _, err := callerID(i)
	if err != nil {
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	b.triviaMu.Lock()
	pending := b.trivia[discordID]
	delete(b.trivia, discordID)
	b.triviaMu.Unlock()

	if pending == nil {
		b.respondWithError(s, i, "You have no pending question. Draw one with `/trivia play`.")
		return
	}

	opts := optionMap(options)
	answer := int(opts["option"].IntValue())

	result, err := b.gameService.AnswerTrivia(ctx, discordID, pending.question.ID, answer, pending.question.Reward)
	if err != nil {
		b.respondWithError(s, i, err.Error())
		return
	}

	if result.Correct {
		b.respond(s, i, fmt.Sprintf("✅ Correct! You earned **%s coins**. New balance: **%s coins**",
			FormatCoins(result.Reward), FormatCoins(result.NewBalance)))
		return
	}
	b.respond(s, i, fmt.Sprintf("❌ Wrong, the answer was **%d. %s**. Better luck next time!",
		result.CorrectAnswer, pending.question.Options[result.CorrectAnswer-1]))
}

func (b *Bot) handleLottery(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	discordID, ok := b.ensureAccount(ctx, s, i)
	if !ok {
		return
	}

	result, err := b.gameService.BuyLotteryTicket(ctx, discordID)
	if err != nil {
		b.respondWithError(s, i, err.Error())
		return
	}

	yours := make([]string, len(result.YourNumbers))
	for idx, n := range result.YourNumbers {
		yours[idx] = strconv.Itoa(n)
	}
	winning := make([]string, len(result.WinningNumbers))
	for idx, n := range result.WinningNumbers {
		winning[idx] = strconv.Itoa(n)
	}

	msg := fmt.Sprintf("🎟️ Yours: **%s** | Drawn: **%s** | Matches: **%d**\n",
		strings.Join(yours, " "), strings.Join(winning, " "), result.Matches)
	if result.Won {
		msg += fmt.Sprintf("You won **%s coins**! New balance: **%s coins**", FormatCoins(result.Prize), FormatCoins(result.NewBalance))
	} else {
		msg += fmt.Sprintf("No prize this time. Balance: **%s coins**", FormatCoins(result.NewBalance))
	}
	b.respond(s, i, msg)
}

func (b *Bot) handleDaily(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	discordID, ok := b.ensureAccount(ctx, s, i)
	if !ok {
		return
	}

	result, err := b.gameService.ClaimDaily(ctx, discordID)
	if err != nil {
		b.respondWithError(s, i, err.Error())
		return
	}

	b.respond(s, i, fmt.Sprintf("📅 Daily reward: **%s coins** (streak %d). New balance: **%s coins**",
		FormatCoins(result.Reward), result.Streak, FormatCoins(result.NewBalance)))
}

func (b *Bot) handleRaid(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	discordID, ok := b.ensureAccount(ctx, s, i)
	if !ok {
		return
	}

	opts := optionMap(i.ApplicationCommandData().Options)
	target := opts["target"].UserValue(s)
	if target == nil {
		b.respondWithError(s, i, "Missing raid target.")
		return
	}
	targetID, err := strconv.ParseInt(target.ID, 10, 64)
	if err != nil {
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	result, err := b.gameService.Raid(ctx, discordID, targetID)
	if err != nil {
		b.respondWithError(s, i, err.Error())
		return
	}

	if result.Success {
		b.respond(s, i, fmt.Sprintf("⚔️ Raid succeeded (%.0f%% odds)! You stole **%s coins** from **%s**. New balance: **%s coins**",
			result.Chance*100, FormatCoins(result.Stolen), target.Username, FormatCoins(result.NewBalance)))
		return
	}
	b.respond(s, i, fmt.Sprintf("🛡️ Raid failed (%.0f%% odds). You lost the entry fee. New balance: **%s coins**",
		result.Chance*100, FormatCoins(result.NewBalance)))
}

func (b *Bot) handleCrate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	discordID, ok := b.ensureAccount(ctx, s, i)
	if !ok {
		return
	}

	result, err := b.gameService.OpenCrate(ctx, discordID)
	if err != nil {
		b.respondWithError(s, i, err.Error())
		return
	}

	switch result.Reward {
	case "coins":
		b.respond(s, i, fmt.Sprintf("📦 The crate held **%s coins**! New balance: **%s coins**",
			FormatCoins(result.Coins), FormatCoins(result.NewBalance)))
	case "tokens":
		b.respond(s, i, fmt.Sprintf("📦 The crate held **%d vault tokens**! Balance: **%s coins**",
			result.Tokens, FormatCoins(result.NewBalance)))
	default:
		b.respond(s, i, fmt.Sprintf("📦 The crate held a **%s** artifact: **%s**! Balance: **%s coins**",
			result.Artifact.Rarity, result.Artifact.Name, FormatCoins(result.NewBalance)))
	}
}
