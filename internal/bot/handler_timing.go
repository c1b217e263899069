package bot

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/sxndmxn/deadlock-build-creator/internal/builder"
	"github.com/sxndmxn/deadlock-build-creator/internal/embeds"
)

// handleTiming handles the /timing command.
func (b *Bot) handleTiming(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	heroName := opts["hero"].StringValue()
	itemName := opts["item"].StringValue()

	deferResponse(s, i)

	analysis, err := b.builder.BuildForHero(heroName, b.currentFilter())
	if err != nil {
		editEmbed(s, i, embeds.Error(
			fmt.Sprintf("Couldn't load data for **%s**. Check the hero name.", heroName),
			fmt.Sprintf("Error: %v", err),
		))
		return
	}

	item := findItem(analysis, itemName)
	if item == nil {
		editEmbed(s, i, embeds.Error(
			fmt.Sprintf("No item **%s** with data on **%s**.", itemName, analysis.HeroName), ""))
		return
	}

	editEmbed(s, i, createTimingEmbed(analysis, item))
}

func createTimingEmbed(a *builder.Analysis, item *builder.ItemAnalysis) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("⏱️ %s on %s", item.Name, a.HeroName),
		Description: fmt.Sprintf("Overall: `%s` over %s matches",
			embeds.WinRate(item.WinRate()), formatMatches(item.TotalMatches)),
		Color: embeds.SlotColor(item.Slot),
		Footer: &discordgo.MessageEmbedFooter{
			Text: footerText(a.Filter),
		},
	}
	if item.Image != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: item.Image}
	}

	if item.Window != nil {
		value := fmt.Sprintf("Best bought at **%s** (peak `%s`)",
			embeds.SoulRange(item.Window.Start, item.Window.End+999),
			embeds.WinRate(item.Window.PeakWinRate))
		if item.AvgBuyTimeS > 0 {
			value += fmt.Sprintf("\nPlayers typically buy it around **%s**", embeds.Minutes(item.AvgBuyTimeS))
			if item.AvgSellTimeS > 0 {
				value += fmt.Sprintf(" and sell it around **%s**", embeds.Minutes(item.AvgSellTimeS))
			}
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "💰 Purchase window",
			Value: value,
		})
	} else {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "💰 Purchase window",
			Value: "Not enough matches per bucket to infer one.",
		})
	}

	if len(item.Phases) > 0 {
		var sb strings.Builder
		for _, phase := range item.Phases {
			if phase.Matches == 0 {
				continue
			}
			marker := "•"
			if item.BestPhase != nil && phase.Label == item.BestPhase.Label {
				marker = "⭐"
			}
			sb.WriteString(fmt.Sprintf("%s **%s min** — `%s` over %s matches\n",
				marker, phase.Label, embeds.WinRate(phase.WinRate), formatMatches(phase.Matches)))
		}
		if sb.Len() > 0 {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:  "🕑 By game phase",
				Value: sb.String(),
			})
		}
	}

	if len(item.Synergies) > 0 {
		names := itemNames(a)
		var sb strings.Builder
		for _, syn := range item.Synergies {
			sb.WriteString(fmt.Sprintf("• with **%s** — `%s`\n",
				names.name(syn.PairedItemID), embeds.WinRate(syn.WinRate)))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "🤝 Pairs well with",
			Value: sb.String(),
		})
	}

	return embed
}

// findItem looks an item up by name, case-insensitive, across all tiers.
func findItem(a *builder.Analysis, name string) *builder.ItemAnalysis {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, items := range a.Tiers {
		for _, item := range items {
			if strings.ToLower(item.Name) == want {
				return item
			}
		}
	}
	return nil
}

// nameMap resolves item IDs to display names for rendering.
type nameMap map[int]string

// itemNames maps every analyzed item ID to its display name.
func itemNames(a *builder.Analysis) nameMap {
	names := make(nameMap)
	for _, items := range a.Tiers {
		for _, item := range items {
			names[item.ItemID] = item.Name
		}
	}
	return names
}

// name returns the display name, or the raw ID for items that only showed
// up in pair rows.
func (m nameMap) name(id int) string {
	if n, ok := m[id]; ok {
		return n
	}
	return fmt.Sprintf("item %d", id)
}
