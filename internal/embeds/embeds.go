// Package embeds provides Discord embed builders for the build bot.
package embeds

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Colors for embeds
const (
	ColorWin     = 0x00FF00 // Green
	ColorLose    = 0xFF0000 // Red
	ColorInfo    = 0x3498DB // Blue
	ColorWarning = 0xFFFF00 // Yellow
	ColorWeapon  = 0xE67E22 // Orange
	ColorVit     = 0x2ECC71 // Green
	ColorSpirit  = 0x9B59B6 // Purple
)

// SlotEmoji returns an emoji for an item slot category.
func SlotEmoji(slot string) string {
	switch slot {
	case "weapon":
		return "🔫"
	case "vitality":
		return "💚"
	case "spirit":
		return "🔮"
	}
	return "📦"
}

// SlotColor returns the embed color for an item slot category.
func SlotColor(slot string) int {
	switch slot {
	case "weapon":
		return ColorWeapon
	case "vitality":
		return ColorVit
	case "spirit":
		return ColorSpirit
	}
	return ColorInfo
}

// Success creates a success embed.
func Success(message, title string) *discordgo.MessageEmbed {
	if title == "" {
		title = "✅ Success"
	}
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: message,
		Color:       ColorWin,
	}
}

// Error creates an error embed.
func Error(message, title string) *discordgo.MessageEmbed {
	if title == "" {
		title = "❌ Error"
	}
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: message,
		Color:       ColorLose,
	}
}

// Warning creates a warning embed.
func Warning(message, title string) *discordgo.MessageEmbed {
	if title == "" {
		title = "⚠️ Warning"
	}
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: message,
		Color:       ColorWarning,
	}
}

// Info creates an info embed.
func Info(message, title string) *discordgo.MessageEmbed {
	if title == "" {
		title = "ℹ️ Info"
	}
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: message,
		Color:       ColorInfo,
	}
}

// WinRate formats a 0..1 win rate as a percentage string.
func WinRate(wr float64) string {
	return fmt.Sprintf("%.1f%%", wr*100)
}

// Souls formats a soul amount compactly: 3500 -> "3.5k".
func Souls(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	if n%1000 == 0 {
		return fmt.Sprintf("%dk", n/1000)
	}
	return fmt.Sprintf("%.1fk", float64(n)/1000)
}

// SoulRange formats a net-worth bucket range: "3.5k–6k souls".
func SoulRange(start, end int) string {
	return fmt.Sprintf("%s–%s souls", Souls(start), Souls(end))
}

// Minutes formats a buy time in seconds as "m:ss".
func Minutes(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// TierName returns the display name for an item tier.
func TierName(tier int) string {
	switch tier {
	case 1:
		return "Tier I (800)"
	case 2:
		return "Tier II (1,600)"
	case 3:
		return "Tier III (3,200)"
	case 4:
		return "Tier IV (6,400)"
	}
	return fmt.Sprintf("Tier %d", tier)
}
