package bot

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"vaultrush/models"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) handleVaultCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		b.respondWithError(s, i, "Missing subcommand.")
		return
	}

	switch options[0].Name {
	case "info":
		b.handleVaultInfo(s, i)
	case "upgrade":
		b.handleVaultUpgrade(s, i, options[0].Options)
	}
}

func (b *Bot) handleVaultInfo(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, username, err := callerID(i)
	if err != nil {
		log.Printf("Error parsing caller: %v", err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	if _, err := b.vaultService.GetOrCreateAccount(ctx, discordID, username); err != nil {
		log.Printf("Error getting account %d: %v", discordID, err)
		b.respondWithError(s, i, "Unable to load your vault. Please try again.")
		return
	}

	info, err := b.vaultService.VaultInfo(ctx, discordID)
	if err != nil {
		log.Printf("Error loading vault info %d: %v", discordID, err)
		b.respondWithError(s, i, "Unable to load your vault. Please try again.")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🏦 **Vault level %d** (speed %d)\n", info.VaultLevel, info.SpeedLevel)
	fmt.Fprintf(&sb, "Coins: **%s** | Tokens: **%s**\n", FormatCoins(info.Coins), FormatCoins(info.Tokens))
	fmt.Fprintf(&sb, "Rate: **%.0f coins/hr** | Pending: **%s** (use /collect)\n", info.CoinsPerHour, FormatCoins(info.PendingCoins))
	fmt.Fprintf(&sb, "Next rate upgrade: **%s** | Next speed upgrade: **%s**", FormatCoins(info.NextRateCost), FormatCoins(info.NextSpeedCost))
	b.respond(s, i, sb.String())
}

func (b *Bot) handleVaultUpgrade(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	discordID, username, err := callerID(i)
	if err != nil {
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	opts := optionMap(options)
	track, ok := opts["track"]
	if !ok {
		b.respondWithError(s, i, "Missing upgrade track.")
		return
	}

	if _, err := b.vaultService.GetOrCreateAccount(ctx, discordID, username); err != nil {
		b.respondWithError(s, i, "Unable to load your vault. Please try again.")
		return
	}

	result, err := b.vaultService.Upgrade(ctx, discordID, models.UpgradeKind(track.StringValue()))
	if err != nil {
		b.respondWithError(s, i, err.Error())
		return
	}

	b.respond(s, i, fmt.Sprintf("⬆️ Upgraded the **%s** track to level **%d** for **%s coins**. New balance: **%s coins**",
		result.Kind, result.NewLevel, FormatCoins(result.Cost), FormatCoins(result.NewBalance)))
}

func (b *Bot) handleCollect(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, username, err := callerID(i)
	if err != nil {
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	if _, err := b.vaultService.GetOrCreateAccount(ctx, discordID, username); err != nil {
		b.respondWithError(s, i, "Unable to load your vault. Please try again.")
		return
	}

	result, err := b.vaultService.Collect(ctx, discordID)
	if err != nil {
		log.Printf("Error collecting for %d: %v", discordID, err)
		b.respondWithError(s, i, "Unable to collect. Please try again.")
		return
	}

	msg := fmt.Sprintf("💰 Collected **%s coins**. New balance: **%s coins**",
		FormatCoins(result.Collected), FormatCoins(result.NewBalance))
	if result.Multiplier > 1 {
		msg += fmt.Sprintf(" (x%.1f event bonus!)", result.Multiplier)
	}
	if result.DroppedArtifact != nil {
		msg += fmt.Sprintf("\n✨ Your vault produced a **%s** artifact: **%s**!",
			result.DroppedArtifact.Rarity, result.DroppedArtifact.Name)
	}
	b.respond(s, i, msg)
}

func (b *Bot) handleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	accounts, err := b.vaultService.Leaderboard(ctx, 10)
	if err != nil {
		log.Printf("Error loading leaderboard: %v", err)
		b.respondWithError(s, i, "Unable to load the leaderboard. Please try again.")
		return
	}

	var sb strings.Builder
	sb.WriteString("🏆 **Richest vaults**\n")
	for rank, account := range accounts {
		fmt.Fprintf(&sb, "%d. **%s** — %s coins\n", rank+1, account.Username, FormatCoins(account.Coins))
	}
	b.respond(s, i, sb.String())
}

func (b *Bot) handleArtifacts(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, _, err := callerID(i)
	if err != nil {
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	artifacts, err := b.artifactService.ListArtifacts(ctx, discordID)
	if err != nil {
		b.respondWithError(s, i, "Unable to load your artifacts. Please try again.")
		return
	}
	if len(artifacts) == 0 {
		b.respond(s, i, "You have no artifacts yet. Collect your vault or open crates to find some.")
		return
	}

	var sb strings.Builder
	sb.WriteString("✨ **Your artifacts**\n")
	for _, a := range artifacts {
		fmt.Fprintf(&sb, "`#%d` **%s** (%s) — %s +%.0f%%\n", a.ID, a.Name, a.Rarity, a.BonusKind, a.BonusValue*100)
	}
	b.respond(s, i, sb.String())
}

func (b *Bot) handleEvents(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	active, err := b.eventService.ActiveEvents(ctx)
	if err != nil {
		b.respondWithError(s, i, "Unable to load events. Please try again.")
		return
	}
	if len(active) == 0 {
		b.respond(s, i, "No server events are running right now.")
		return
	}

	var sb strings.Builder
	sb.WriteString("🎉 **Active events**\n")
	for _, e := range active {
		switch e.EventType {
		case models.EventGoldenHour:
			fmt.Fprintf(&sb, "⚡ Golden hour (x%.1f collection) ends %s\n", e.Multiplier, FormatDiscordTimestamp(e.EndsAt, "R"))
		case models.EventArtifactStorm:
			fmt.Fprintf(&sb, "🌩️ Artifact storm (boosted drops) ends %s\n", FormatDiscordTimestamp(e.EndsAt, "R"))
		}
	}
	b.respond(s, i, sb.String())
}
