package bot

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func TestFormatCoins(t *testing.T) {
	assert.Equal(t, "0", FormatCoins(0))
	assert.Equal(t, "999", FormatCoins(999))
	assert.Equal(t, "1,000", FormatCoins(1000))
	assert.Equal(t, "1,234,567", FormatCoins(1234567))
	assert.Equal(t, "-42,000", FormatCoins(-42000))
}

func TestCommandName(t *testing.T) {
	i := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{Name: "vault"},
	}}
	assert.Equal(t, "vault", commandName(i))

	ping := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type: discordgo.InteractionPing,
	}}
	assert.Equal(t, "unknown", commandName(ping))
}
