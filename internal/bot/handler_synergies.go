package bot

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/sxndmxn/deadlock-build-creator/internal/embeds"
)

// handleSynergies handles the /synergies command.
func (b *Bot) handleSynergies(s *discordgo.Session, i *discordgo.InteractionCreate) {
	heroName := optionMap(i)["hero"].StringValue()

	deferResponse(s, i)

	analysis, err := b.builder.BuildForHero(heroName, b.currentFilter())
	if err != nil {
		editEmbed(s, i, embeds.Error(
			fmt.Sprintf("Couldn't load synergies for **%s**. Check the hero name.", heroName),
			fmt.Sprintf("Error: %v", err),
		))
		return
	}

	if len(analysis.TopPairs) == 0 {
		editEmbed(s, i, embeds.Warning(
			fmt.Sprintf("No item pairs with enough matches for **%s** yet.", analysis.HeroName),
			"",
		))
		return
	}

	names := itemNames(analysis)

	var sb strings.Builder
	for k, pair := range analysis.TopPairs {
		if k >= 10 {
			break
		}
		sb.WriteString(fmt.Sprintf("%s **%s** + **%s** — `%s` over %s matches\n",
			getMedal(k),
			names.name(pair.ItemA), names.name(pair.ItemB),
			embeds.WinRate(pair.WinRate), formatMatches(pair.Matches)))
	}

	editEmbed(s, i, &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🤝 %s — best item pairs", analysis.HeroName),
		Description: sb.String(),
		Color:       embeds.ColorInfo,
		Footer: &discordgo.MessageEmbedFooter{
			Text: footerText(analysis.Filter),
		},
	})
}
