package bot

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/sxndmxn/deadlock-build-creator/internal/builder"
	"github.com/sxndmxn/deadlock-build-creator/internal/embeds"
	"github.com/sxndmxn/deadlock-build-creator/internal/engine"
	"github.com/sxndmxn/deadlock-build-creator/internal/services/stats"
)

// handleBuild handles the /build command.
func (b *Bot) handleBuild(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	heroName := opts["hero"].StringValue()

	sortMode := builder.SortByWinRate
	if opt, ok := opts["sort"]; ok {
		switch opt.StringValue() {
		case "popularity":
			sortMode = builder.SortByPopularity
		case "buyorder":
			sortMode = builder.SortByBuyOrder
		}
	}

	deferResponse(s, i)

	analysis, err := b.builder.BuildForHero(heroName, b.currentFilter())
	if err != nil {
		editEmbed(s, i, embeds.Error(
			fmt.Sprintf("Couldn't build for **%s**. Check the hero name.", heroName),
			fmt.Sprintf("Error: %v", err),
		))
		return
	}

	editEmbed(s, i, createBuildEmbed(analysis, sortMode))
}

func createBuildEmbed(a *builder.Analysis, sortMode builder.SortMode) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("🛠️ %s — recommended build", a.HeroName),
		Color: embeds.ColorInfo,
		Footer: &discordgo.MessageEmbedFooter{
			Text: footerText(a.Filter),
		},
	}

	if a.Spike != nil {
		embed.Description = fmt.Sprintf(
			"⚡ Powerspike: **%d–%d min** (%s win rate over %s matches)",
			a.Spike.StartMin, a.Spike.EndMin,
			embeds.WinRate(a.Spike.WinRate), formatMatches(a.Spike.Matches),
		)
	} else {
		embed.Description = "⚡ Powerspike: not enough data"
	}

	if a.Chains != nil {
		if field := chainsField(a.Chains); field != nil {
			embed.Fields = append(embed.Fields, field)
		}
		if field := standalonesField(a.Chains.Standalones); field != nil {
			embed.Fields = append(embed.Fields, field)
		}
	}
	embed.Fields = append(embed.Fields, phasePlanFields(a.PhasePlan)...)
	embed.Fields = append(embed.Fields, tierFields(a, sortMode)...)

	return embed
}

// chainsField renders the selected upgrade paths.
func chainsField(set *engine.ChainSet) *discordgo.MessageEmbedField {
	if len(set.Chains) == 0 {
		return nil
	}

	var sb strings.Builder
	for _, chain := range set.Chains {
		names := make([]string, len(chain.Items))
		for k, item := range chain.Items {
			names[k] = item.Name
		}
		sb.WriteString(fmt.Sprintf("%s %s — `%s` · %s souls\n",
			embeds.SlotEmoji(chain.Slot()),
			strings.Join(names, " → "),
			embeds.WinRate(chain.AvgWinRate),
			embeds.Souls(chain.TotalCost),
		))
	}

	return &discordgo.MessageEmbedField{
		Name:  "🧭 Upgrade paths",
		Value: sb.String(),
	}
}

// standalonesField renders flex items with no upgrade path.
func standalonesField(items []engine.StandaloneItem) *discordgo.MessageEmbedField {
	if len(items) == 0 {
		return nil
	}

	var sb strings.Builder
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("%s **%s** — `%s`\n",
			embeds.SlotEmoji(item.Slot), item.Name, embeds.WinRate(item.WinRate)))
	}

	return &discordgo.MessageEmbedField{
		Name:   "🧱 Flex picks",
		Value:  sb.String(),
		Inline: true,
	}
}

// phasePlanFields renders the spike-aligned shopping list per soul bracket.
func phasePlanFields(plan map[engine.SoulBracket][]engine.SpikeScoredItem) []*discordgo.MessageEmbedField {
	if len(plan) == 0 {
		return nil
	}

	brackets := []engine.SoulBracket{
		engine.BracketEarly, engine.BracketMid, engine.BracketLate, engine.BracketVeryLate,
	}

	var fields []*discordgo.MessageEmbedField
	for _, bracket := range brackets {
		items := plan[bracket]
		if len(items) == 0 {
			continue
		}
		var sb strings.Builder
		for _, item := range items {
			sb.WriteString(fmt.Sprintf("• **%s** `%s`\n", item.Name, embeds.WinRate(item.WinRate)))
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "💰 " + bracket.String(),
			Value:  sb.String(),
			Inline: true,
		})
	}
	return fields
}

// tierFields renders the top items of each tier with their buy timing.
func tierFields(a *builder.Analysis, sortMode builder.SortMode) []*discordgo.MessageEmbedField {
	var fields []*discordgo.MessageEmbedField
	for tier := 1; tier <= 4; tier++ {
		items := a.TierItems(tier, sortMode)
		if len(items) == 0 {
			continue
		}

		var sb strings.Builder
		for k, item := range items {
			if k >= 3 {
				break
			}
			sb.WriteString(fmt.Sprintf("%s **%s** — `%s`%s\n",
				getMedal(k), item.Name, embeds.WinRate(item.WinRate()), timingHint(item)))
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  embeds.TierName(tier),
			Value: sb.String(),
		})
	}
	return fields
}

// timingHint summarizes the purchase window when one could be inferred.
func timingHint(item *builder.ItemAnalysis) string {
	if item.Window == nil {
		return ""
	}
	return fmt.Sprintf(" · buy at %s", embeds.SoulRange(item.Window.Start, item.Window.End+999))
}

func footerText(filter stats.RankFilter) string {
	if filter.IsDefault() {
		return "📊 All ranks · data refreshes hourly"
	}
	return fmt.Sprintf("📊 Badges %d–%d · data refreshes hourly", filter.MinBadge, filter.MaxBadge)
}

func formatMatches(n int) string {
	if n >= 1000 {
		return fmt.Sprintf("%.1fk", float64(n)/1000)
	}
	return fmt.Sprintf("%d", n)
}

func getMedal(index int) string {
	switch index {
	case 0:
		return "🥇"
	case 1:
		return "🥈"
	case 2:
		return "🥉"
	default:
		return "•"
	}
}
