package bot

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/sxndmxn/deadlock-build-creator/internal/builder"
	"github.com/sxndmxn/deadlock-build-creator/internal/embeds"
)

// handleItems handles the /items command.
func (b *Bot) handleItems(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	heroName := opts["hero"].StringValue()
	tier := int(opts["tier"].IntValue())

	deferResponse(s, i)

	analysis, err := b.builder.BuildForHero(heroName, b.currentFilter())
	if err != nil {
		editEmbed(s, i, embeds.Error(
			fmt.Sprintf("Couldn't load item stats for **%s**. Check the hero name.", heroName),
			fmt.Sprintf("Error: %v", err),
		))
		return
	}

	items := analysis.TierItems(tier, builder.SortByWinRate)
	if len(items) == 0 {
		editEmbed(s, i, embeds.Warning(
			fmt.Sprintf("No %s data for **%s** under the current rank filter.",
				embeds.TierName(tier), analysis.HeroName),
			"",
		))
		return
	}

	var sb strings.Builder
	for k, item := range items {
		if k >= 10 {
			break
		}
		line := fmt.Sprintf("%s **%s** — `%s` over %s matches",
			getMedal(k), item.Name, embeds.WinRate(item.WinRate()), formatMatches(item.TotalMatches))
		if item.Best != nil {
			line += fmt.Sprintf(" · peaks at %s", embeds.SoulRange(item.Best.RangeStart, item.Best.RangeEnd))
		}
		sb.WriteString(line + "\n")
	}

	editEmbed(s, i, &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("📦 %s — %s items", analysis.HeroName, embeds.TierName(tier)),
		Description: sb.String(),
		Color:       embeds.ColorInfo,
		Footer: &discordgo.MessageEmbedFooter{
			Text: footerText(analysis.Filter),
		},
	})
}
