package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vaultrush/models"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) handleAuctionCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		b.respondWithError(s, i, "Missing subcommand.")
		return
	}

	switch options[0].Name {
	case "create":
		b.handleAuctionCreate(s, i, options[0].Options)
	case "bid":
		b.handleAuctionBid(s, i, options[0].Options)
	case "list":
		b.handleAuctionList(s, i)
	}
}

func (b *Bot) handleAuctionCreate(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()
	discordID, ok := b.ensureAccount(ctx, s, i)
	if !ok {
		return
	}

	opts := optionMap(options)
	auction, err := b.auctionService.CreateAuction(ctx, discordID,
		opts["artifact"].IntValue(), opts["starting_bid"].IntValue(),
		time.Duration(opts["hours"].IntValue())*time.Hour)
	if err != nil {
		b.respondWithError(s, i, err.Error())
		return
	}

	b.respond(s, i, fmt.Sprintf("🔨 Auction `#%d` opened for **%s** (%s), starting at **%s coins**, ends %s",
		auction.ID, auction.ArtifactName, auction.ArtifactRarity,
		FormatCoins(auction.StartingBid), FormatDiscordTimestamp(auction.EndsAt, "R")))
}

func (b *Bot) handleAuctionBid(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()
	discordID, ok := b.ensureAccount(ctx, s, i)
	if !ok {
		return
	}

	opts := optionMap(options)
	result, err := b.auctionService.PlaceBid(ctx, discordID, opts["id"].IntValue(), opts["amount"].IntValue())
	if err != nil {
		b.respondWithError(s, i, err.Error())
		return
	}

	b.respond(s, i, fmt.Sprintf("🔨 Bid of **%s coins** placed on auction `#%d`. New balance: **%s coins**",
		FormatCoins(result.Amount), result.AuctionID, FormatCoins(result.NewBalance)))
}

func (b *Bot) handleAuctionList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	auctions, err := b.auctionService.ActiveAuctions(ctx)
	if err != nil {
		b.respondWithError(s, i, "Unable to load auctions. Please try again.")
		return
	}
	if len(auctions) == 0 {
		b.respond(s, i, "No auctions are running right now.")
		return
	}

	var sb strings.Builder
	sb.WriteString("🔨 **Active auctions**\n")
	for _, a := range auctions {
		bid := a.StartingBid
		label := "starting at"
		if a.HasBidder() {
			bid = a.CurrentBid
			label = "current bid"
		}
		fmt.Fprintf(&sb, "`#%d` **%s** (%s) — %s **%s coins**, ends %s\n",
			a.ID, a.ArtifactName, a.ArtifactRarity, label, FormatCoins(bid), FormatDiscordTimestamp(a.EndsAt, "R"))
	}
	b.respond(s, i, sb.String())
}

func (b *Bot) handleMarketCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		b.respondWithError(s, i, "Missing subcommand.")
		return
	}

	switch options[0].Name {
	case "order":
		b.handleMarketOrder(s, i, options[0].Options)
	case "orders":
		b.handleMarketOrders(s, i)
	case "stats":
		b.handleMarketStats(s, i)
	}
}

func (b *Bot) handleMarketOrder(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()
	discordID, ok := b.ensureAccount(ctx, s, i)
	if !ok {
		return
	}

	opts := optionMap(options)
	result, err := b.marketService.PlaceOrder(ctx, discordID,
		models.OrderType(opts["side"].StringValue()),
		opts["tokens"].IntValue(), opts["price"].IntValue())
	if err != nil {
		b.respondWithError(s, i, err.Error())
		return
	}

	msg := fmt.Sprintf("📈 %s order `#%d` placed for **%d tokens** at **%s coins** each.",
		strings.ToUpper(string(result.Order.OrderType)), result.Order.ID,
		result.Order.Tokens, FormatCoins(result.Order.PricePerToken))
	if result.MatchedTokens > 0 {
		msg += fmt.Sprintf(" **%d** filled immediately.", result.MatchedTokens)
	}
	msg += fmt.Sprintf(" Token price: **%s coins**", FormatCoins(result.ReferencePrice))
	b.respond(s, i, msg)
}

func (b *Bot) handleMarketOrders(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, _, err := callerID(i)
	if err != nil {
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	orders, err := b.marketService.MyOrders(ctx, discordID)
	if err != nil {
		b.respondWithError(s, i, "Unable to load your orders. Please try again.")
		return
	}
	if len(orders) == 0 {
		b.respond(s, i, "You have no open orders.")
		return
	}

	var sb strings.Builder
	sb.WriteString("📋 **Your open orders**\n")
	for _, o := range orders {
		fmt.Fprintf(&sb, "`#%d` %s %d/%d tokens at **%s coins**\n",
			o.ID, strings.ToUpper(string(o.OrderType)), o.Filled, o.Tokens, FormatCoins(o.PricePerToken))
	}
	b.respond(s, i, sb.String())
}

func (b *Bot) handleMarketStats(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	stats, err := b.marketService.Stats(ctx)
	if err != nil {
		b.respondWithError(s, i, "Unable to load market stats. Please try again.")
		return
	}

	b.respond(s, i, fmt.Sprintf(
		"📊 Token price: **%s coins**\nBids: **%d orders / %s tokens** | Asks: **%d orders / %s tokens**",
		FormatCoins(stats.ReferencePrice),
		stats.OpenBuyOrders, FormatCoins(stats.OpenBuyTokens),
		stats.OpenSellOrders, FormatCoins(stats.OpenSellTokens)))
}

func (b *Bot) handleStockCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		b.respondWithError(s, i, "Missing subcommand.")
		return
	}

	switch options[0].Name {
	case "list":
		b.handleStockList(s, i)
	case "buy":
		b.handleStockTrade(s, i, options[0].Options, true)
	case "sell":
		b.handleStockTrade(s, i, options[0].Options, false)
	case "portfolio":
		b.handleStockPortfolio(s, i)
	case "market":
		b.handleStockMarket(s, i)
	}
}

func (b *Bot) handleStockList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	discordID, ok := b.ensureAccount(ctx, s, i)
	if !ok {
		return
	}

	stock, err := b.stockService.ListStock(ctx, discordID)
	if err != nil {
		b.respondWithError(s, i, err.Error())
		return
	}

	b.respond(s, i, fmt.Sprintf("📢 Your vault is now public as **%s** (%s): %d shares at **%s coins** each.",
		stock.Symbol, stock.CompanyName, stock.TotalShares, FormatCoins(stock.CurrentPrice)))
}

func (b *Bot) handleStockTrade(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption, buy bool) {
	ctx := context.Background()
	discordID, ok := b.ensureAccount(ctx, s, i)
	if !ok {
		return
	}

	opts := optionMap(options)
	symbol := opts["symbol"].StringValue()
	shares := opts["shares"].IntValue()

	var result *models.ShareTradeResult
	var err error
	if buy {
		result, err = b.stockService.BuyShares(ctx, discordID, symbol, shares)
	} else {
		result, err = b.stockService.SellShares(ctx, discordID, symbol, shares)
	}
	if err != nil {
		b.respondWithError(s, i, err.Error())
		return
	}

	if buy {
		b.respond(s, i, fmt.Sprintf("📈 Bought **%d %s** at **%s coins** for **%s coins**. New balance: **%s coins**",
			result.Shares, result.Symbol, FormatCoins(result.PricePerShare),
			FormatCoins(result.TotalAmount), FormatCoins(result.NewBalance)))
		return
	}
	b.respond(s, i, fmt.Sprintf("📉 Sold **%d %s** for **%s coins** (P/L %s). New balance: **%s coins**",
		result.Shares, result.Symbol, FormatCoins(result.TotalAmount),
		FormatCoins(result.Profit), FormatCoins(result.NewBalance)))
}

func (b *Bot) handleStockPortfolio(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, _, err := callerID(i)
	if err != nil {
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	portfolio, err := b.stockService.GetPortfolio(ctx, discordID)
	if err != nil {
		b.respondWithError(s, i, "Unable to load your portfolio. Please try again.")
		return
	}
	if len(portfolio.Holdings) == 0 {
		b.respond(s, i, "You hold no shares. Browse `/stock market` to invest.")
		return
	}

	var sb strings.Builder
	sb.WriteString("💼 **Your portfolio**\n")
	for _, h := range portfolio.Holdings {
		fmt.Fprintf(&sb, "**%s** — %d shares, avg **%s**, now **%s** (worth %s)\n",
			h.Symbol, h.SharesOwned, FormatCoins(h.AverageBuyPrice),
			FormatCoins(h.CurrentPrice), FormatCoins(h.CurrentValue()))
	}
	fmt.Fprintf(&sb, "Value: **%s** | P/L: **%s** | Dividends earned: **%s**",
		FormatCoins(portfolio.TotalValue), FormatCoins(portfolio.TotalProfitLoss), FormatCoins(portfolio.TotalDividends))
	b.respond(s, i, sb.String())
}

func (b *Bot) handleStockMarket(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	stocks, err := b.stockService.GetMarket(ctx)
	if err != nil {
		b.respondWithError(s, i, "Unable to load the market. Please try again.")
		return
	}
	if len(stocks) == 0 {
		b.respond(s, i, "No vaults are listed yet. Be the first with `/stock list`.")
		return
	}

	var sb strings.Builder
	sb.WriteString("🏛️ **Listed vaults**\n")
	for _, st := range stocks {
		fmt.Fprintf(&sb, "**%s** (%s) — **%s coins** (%+.1f%%), %d/%d shares available\n",
			st.Symbol, st.CompanyName, FormatCoins(st.CurrentPrice),
			st.PriceChange24h, st.SharesAvailable, st.TotalShares)
	}
	b.respond(s, i, sb.String())
}
