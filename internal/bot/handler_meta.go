package bot

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/sxndmxn/deadlock-build-creator/internal/embeds"
)

// handleMeta handles the /meta command.
func (b *Bot) handleMeta(s *discordgo.Session, i *discordgo.InteractionCreate) {
	deferResponse(s, i)

	meta, err := b.scraperClient.GetHeroMeta()
	if err != nil {
		editEmbed(s, i, embeds.Error(
			"Couldn't fetch the hero meta right now. Try again in a minute.",
			fmt.Sprintf("Error: %v", err),
		))
		return
	}

	var sb strings.Builder
	for k, hero := range meta {
		if k >= 15 {
			break
		}
		sb.WriteString(fmt.Sprintf("%s **%s** — `%s` WR · `%s` pick\n",
			getMedal(k), hero.HeroName, hero.WinRate, hero.PickRate))
	}

	editEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "🏆 Hero meta",
		Description: sb.String(),
		Color:       embeds.ColorInfo,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "📊 Data from tracklock.gg",
		},
	})
}
