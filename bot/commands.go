package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

func stakeOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "stake",
		Description: "Coins to wager",
		Required:    true,
	}
}

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "vault",
			Description: "Manage your vault",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "info",
					Description: "Show your vault, balances and pending income",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "upgrade",
					Description: "Buy the next vault upgrade",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "track",
							Description: "Which upgrade track to advance",
							Required:    true,
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "rate (+50 coins/hr)", Value: "rate"},
								{Name: "speed (+10% accrual)", Value: "speed"},
							},
						},
					},
				},
			},
		},
		{
			Name:        "collect",
			Description: "Collect your vault's accrued coins",
		},
		{
			Name:        "leaderboard",
			Description: "Show the richest players",
		},
		{
			Name:        "coinflip",
			Description: "Flip a coin, double or nothing",
			Options: []*discordgo.ApplicationCommandOption{
				stakeOption(),
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "call",
					Description: "Your call",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "heads", Value: "heads"},
						{Name: "tails", Value: "tails"},
					},
				},
			},
		},
		{
			Name:        "dice",
			Description: "Predict the total of two dice, 10x on an exact hit",
			Options: []*discordgo.ApplicationCommandOption{
				stakeOption(),
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "prediction",
					Description: "Predicted total (2-12)",
					Required:    true,
				},
			},
		},
		{
			Name:        "blackjack",
			Description: "Play a hand of blackjack",
			Options:     []*discordgo.ApplicationCommandOption{stakeOption()},
		},
		{
			Name:        "slots",
			Description: "Spin the slot machine",
			Options:     []*discordgo.ApplicationCommandOption{stakeOption()},
		},
		{
			Name:        "roulette",
			Description: "Spin the roulette wheel",
			Options: []*discordgo.ApplicationCommandOption{
				stakeOption(),
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "bet",
					Description: "Your bet",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "red", Value: "red"},
						{Name: "black", Value: "black"},
						{Name: "even", Value: "even"},
						{Name: "odd", Value: "odd"},
					},
				},
			},
		},
		{
			Name:        "rps",
			Description: "Rock paper scissors against the bot",
			Options: []*discordgo.ApplicationCommandOption{
				stakeOption(),
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "choice",
					Description: "Your throw",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "rock", Value: "rock"},
						{Name: "paper", Value: "paper"},
						{Name: "scissors", Value: "scissors"},
					},
				},
			},
		},
		{
			Name:        "trivia",
			Description: "Answer trivia for coins",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "play",
					Description: "Draw a question",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "answer",
					Description: "Answer your pending question",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "option",
							Description: "Option number",
							Required:    true,
						},
					},
				},
			},
		},
		{
			Name:        "lottery",
			Description: "Buy a lottery ticket (500 coins)",
		},
		{
			Name:        "daily",
			Description: "Claim your daily reward",
		},
		{
			Name:        "raid",
			Description: "Raid another player's vault (500 coins)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "target",
					Description: "Vault to raid",
					Required:    true,
				},
			},
		},
		{
			Name:        "crate",
			Description: "Open a mystery crate (1000 coins)",
		},
		{
			Name:        "artifacts",
			Description: "Show your artifact collection",
		},
		{
			Name:        "auction",
			Description: "Artifact auctions",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "create",
					Description: "Auction one of your artifacts",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "artifact",
							Description: "Artifact ID to sell",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "starting_bid",
							Description: "Starting bid in coins",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "hours",
							Description: "Auction length in hours (max 48)",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "bid",
					Description: "Bid on an auction",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "id",
							Description: "Auction ID",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "amount",
							Description: "Bid amount in coins",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List active auctions",
				},
			},
		},
		{
			Name:        "market",
			Description: "Vault token order book",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "order",
					Description: "Place a token order",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "side",
							Description: "Order side",
							Required:    true,
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "buy", Value: "buy"},
								{Name: "sell", Value: "sell"},
							},
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "tokens",
							Description: "Token quantity",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "price",
							Description: "Price per token in coins",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "orders",
					Description: "Show your open orders",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "stats",
					Description: "Show the order book overview",
				},
			},
		},
		{
			Name:        "stock",
			Description: "Vault stock market",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "Take your vault public",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "buy",
					Description: "Buy shares",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "symbol",
							Description: "Stock symbol",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "shares",
							Description: "Shares to buy",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "sell",
					Description: "Sell shares back to the vault owner",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "symbol",
							Description: "Stock symbol",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "shares",
							Description: "Shares to sell",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "portfolio",
					Description: "Show your holdings",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "market",
					Description: "Show all listed stocks",
				},
			},
		},
		{
			Name:        "loan",
			Description: "Peer-to-peer loans",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "create",
					Description: "Lend coins to another player",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "borrower",
							Description: "Player to lend to",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "amount",
							Description: "Principal in coins",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "interest",
							Description: "Interest in percent (0-100)",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "days",
							Description: "Days until due (max 30)",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "repay",
					Description: "Pay down a loan",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "id",
							Description: "Loan ID",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "amount",
							Description: "Payment in coins",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "cancel",
					Description: "Cancel an unpaid loan you funded",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "id",
							Description: "Loan ID",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "Show your loans",
				},
			},
		},
		{
			Name:        "alliance",
			Description: "Server alliance vault",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "contribute",
					Description: "Contribute coins to the alliance vault",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "amount",
							Description: "Coins to contribute",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "upgrade",
					Description: "Upgrade the alliance vault",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "info",
					Description: "Show the alliance vault and top contributors",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "leaderboard",
					Description: "Show the strongest alliances",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "war",
					Description: "Vault wars",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "action",
							Description: "War action",
							Required:    true,
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "enable", Value: "enable"},
								{Name: "disable", Value: "disable"},
								{Name: "rankings", Value: "rankings"},
							},
						},
					},
				},
			},
		},
		{
			Name:        "events",
			Description: "Show active server events",
		},
	}

	for _, cmd := range commands {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}

	return nil
}
