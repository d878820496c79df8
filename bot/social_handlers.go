package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"vaultrush/service"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) handleLoanCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		b.respondWithError(s, i, "Missing subcommand.")
		return
	}

	switch options[0].Name {
	case "create":
		b.handleLoanCreate(s, i, options[0].Options)
	case "repay":
		b.handleLoanRepay(s, i, options[0].Options)
	case "cancel":
		b.handleLoanCancel(s, i, options[0].Options)
	case "list":
		b.handleLoanList(s, i)
	}
}

func (b *Bot) handleLoanCreate(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()
	discordID, ok := b.ensureAccount(ctx, s, i)
	if !ok {
		return
	}

	opts := optionMap(options)
	borrower := opts["borrower"].UserValue(s)
	if borrower == nil {
		b.respondWithError(s, i, "Missing borrower.")
		return
	}
	borrowerID, err := strconv.ParseInt(borrower.ID, 10, 64)
	if err != nil {
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	// The borrower needs an account before funds can land.
	if _, err := b.vaultService.GetOrCreateAccount(ctx, borrowerID, borrower.Username); err != nil {
		b.respondWithError(s, i, "Unable to load the borrower's account. Please try again.")
		return
	}

	loan, err := b.loanService.CreateLoan(ctx, discordID, borrowerID,
		opts["amount"].IntValue(),
		float64(opts["interest"].IntValue())/100,
		time.Duration(opts["days"].IntValue())*24*time.Hour)
	if err != nil {
		b.respondWithError(s, i, err.Error())
		return
	}

	b.respond(s, i, fmt.Sprintf("🤝 Loan `#%d`: **%s coins** to **%s**, **%s** owed back by %s",
		loan.ID, FormatCoins(loan.Principal), borrower.Username,
		FormatCoins(loan.TotalOwed), FormatDiscordTimestamp(loan.DueDate, "f")))
}

func (b *Bot) handleLoanRepay(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()
	discordID, ok := b.ensureAccount(ctx, s, i)
	if !ok {
		return
	}

	opts := optionMap(options)
	result, err := b.loanService.Repay(ctx, discordID, opts["id"].IntValue(), opts["amount"].IntValue())
	if err != nil {
		b.respondWithError(s, i, err.Error())
		return
	}

	if result.Remaining == 0 {
		b.respond(s, i, fmt.Sprintf("💸 Paid **%s coins**. The loan is fully repaid!", FormatCoins(result.Paid)))
		return
	}
	b.respond(s, i, fmt.Sprintf("💸 Paid **%s coins**. Still owed: **%s coins**",
		FormatCoins(result.Paid), FormatCoins(result.Remaining)))
}

func (b *Bot) handleLoanCancel(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	discordID, _, err := callerID(i)
	if err != nil {
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	opts := optionMap(options)
	if err := b.loanService.Cancel(ctx, discordID, opts["id"].IntValue()); err != nil {
		b.respondWithError(s, i, err.Error())
		return
	}
	b.respond(s, i, "🚫 Loan cancelled and the principal returned.")
}

func (b *Bot) handleLoanList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, _, err := callerID(i)
	if err != nil {
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	borrowed, lent, err := b.loanService.LoansFor(ctx, discordID)
	if err != nil {
		b.respondWithError(s, i, "Unable to load your loans. Please try again.")
		return
	}
	if len(borrowed) == 0 && len(lent) == 0 {
		b.respond(s, i, "You have no loans.")
		return
	}

	var sb strings.Builder
	if len(borrowed) > 0 {
		sb.WriteString("📥 **Borrowed**\n")
		for _, l := range borrowed {
			fmt.Fprintf(&sb, "`#%d` owe **%s** of **%s** (%s), due %s\n",
				l.ID, FormatCoins(l.Remaining()), FormatCoins(l.TotalOwed), l.Status, FormatDiscordTimestamp(l.DueDate, "R"))
		}
	}
	if len(lent) > 0 {
		sb.WriteString("📤 **Lent**\n")
		for _, l := range lent {
			fmt.Fprintf(&sb, "`#%d` owed **%s** of **%s** (%s), due %s\n",
				l.ID, FormatCoins(l.Remaining()), FormatCoins(l.TotalOwed), l.Status, FormatDiscordTimestamp(l.DueDate, "R"))
		}
	}
	b.respond(s, i, sb.String())
}

// guildContext parses the guild the interaction came from
func guildContext(s *discordgo.Session, i *discordgo.InteractionCreate) (int64, string, error) {
	if i.GuildID == "" {
		return 0, "", fmt.Errorf("this command only works in a server")
	}
	guildID, err := strconv.ParseInt(i.GuildID, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("bad guild id %q: %w", i.GuildID, err)
	}

	name := "Alliance " + i.GuildID
	if guild, err := s.Guild(i.GuildID); err == nil && guild != nil {
		name = guild.Name
	}
	return guildID, name, nil
}

func (b *Bot) handleAllianceCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		b.respondWithError(s, i, "Missing subcommand.")
		return
	}

	switch options[0].Name {
	case "contribute":
		b.handleAllianceContribute(s, i, options[0].Options)
	case "upgrade":
		b.handleAllianceUpgrade(s, i)
	case "info":
		b.handleAllianceInfo(s, i)
	case "leaderboard":
		b.handleAllianceLeaderboard(s, i)
	case "war":
		b.handleAllianceWar(s, i, options[0].Options)
	}
}

func (b *Bot) handleAllianceContribute(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()
	discordID, ok := b.ensureAccount(ctx, s, i)
	if !ok {
		return
	}

	guildID, guildName, err := guildContext(s, i)
	if err != nil {
		b.respondWithError(s, i, err.Error())
		return
	}

	opts := optionMap(options)
	alliance, err := b.allianceService.Contribute(ctx, guildID, guildName, discordID, opts["amount"].IntValue())
	if err != nil {
		b.respondWithError(s, i, err.Error())
		return
	}

	b.respond(s, i, fmt.Sprintf("🏰 Contributed **%s coins**! The alliance vault holds **%s coins** at **%s power**.",
		FormatCoins(opts["amount"].IntValue()), FormatCoins(alliance.VaultCoins), FormatCoins(alliance.VaultPower)))
}

func (b *Bot) handleAllianceUpgrade(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	guildID, _, err := guildContext(s, i)
	if err != nil {
		b.respondWithError(s, i, err.Error())
		return
	}

	result, err := b.allianceService.UpgradeVault(ctx, guildID)
	if err != nil {
		b.respondWithError(s, i, err.Error())
		return
	}

	b.respond(s, i, fmt.Sprintf("🏰 Alliance vault upgraded to level **%d** for **%s coins** (+1000 power).",
		result.NewLevel, FormatCoins(result.Cost)))
}

func (b *Bot) handleAllianceInfo(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	guildID, guildName, err := guildContext(s, i)
	if err != nil {
		b.respondWithError(s, i, err.Error())
		return
	}

	info, err := b.allianceService.Info(ctx, guildID, guildName)
	if err != nil {
		b.respondWithError(s, i, "Unable to load the alliance. Please try again.")
		return
	}

	var sb strings.Builder
	a := info.Alliance
	fmt.Fprintf(&sb, "🏰 **%s** — level %d\n", a.GuildName, a.VaultLevel)
	fmt.Fprintf(&sb, "Vault: **%s coins** | Power: **%s** | War: %v\n",
		FormatCoins(a.VaultCoins), FormatCoins(a.VaultPower), a.WarEnabled)
	if len(info.TopContributors) > 0 {
		sb.WriteString("Top contributors:\n")
		for rank, c := range info.TopContributors {
			fmt.Fprintf(&sb, "%d. **%s** — %s coins\n", rank+1, c.Username, FormatCoins(c.Total))
		}
	}
	b.respond(s, i, sb.String())
}

func (b *Bot) handleAllianceLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	alliances, err := b.allianceService.Leaderboard(ctx, 10)
	if err != nil {
		b.respondWithError(s, i, "Unable to load the leaderboard. Please try again.")
		return
	}
	if len(alliances) == 0 {
		b.respond(s, i, "No alliances exist yet.")
		return
	}

	var sb strings.Builder
	sb.WriteString("🏆 **Strongest alliances**\n")
	for rank, a := range alliances {
		fmt.Fprintf(&sb, "%d. **%s** — %s power\n", rank+1, a.GuildName, FormatCoins(a.VaultPower))
	}
	b.respond(s, i, sb.String())
}

func (b *Bot) handleAllianceWar(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	guildID, _, err := guildContext(s, i)
	if err != nil {
		b.respondWithError(s, i, err.Error())
		return
	}

	opts := optionMap(options)
	switch opts["action"].StringValue() {
	case "enable":
		if err := b.allianceService.SetWarEnabled(ctx, guildID, true); err != nil {
			b.respondWithError(s, i, err.Error())
			return
		}
		b.respond(s, i, "⚔️ This alliance will join the next vault war.")
	case "disable":
		if err := b.allianceService.SetWarEnabled(ctx, guildID, false); err != nil {
			b.respondWithError(s, i, err.Error())
			return
		}
		b.respond(s, i, "🕊️ This alliance will sit out future vault wars.")
	case "rankings":
		b.handleWarRankings(s, i)
	}
}

func (b *Bot) handleWarRankings(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	week := service.WeekNumber(time.Now())
	entries, err := b.warService.Rankings(ctx, week)
	if err != nil {
		b.respondWithError(s, i, "Unable to load war rankings. Please try again.")
		return
	}
	if len(entries) == 0 {
		b.respond(s, i, fmt.Sprintf("No war entries for week %d yet.", week))
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "⚔️ **Vault war — week %d**\n", week)
	for idx, e := range entries {
		position := idx + 1
		if e.Rank != nil {
			position = *e.Rank
		}
		fmt.Fprintf(&sb, "%d. **%s** — %s power (%s)\n", position, e.GuildName, FormatCoins(e.VaultPower), e.Status)
	}
	b.respond(s, i, sb.String())
}
