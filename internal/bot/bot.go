// Package bot provides the Discord bot core for the build bot.
package bot

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/sxndmxn/deadlock-build-creator/internal/builder"
	"github.com/sxndmxn/deadlock-build-creator/internal/config"
	"github.com/sxndmxn/deadlock-build-creator/internal/embeds"
	"github.com/sxndmxn/deadlock-build-creator/internal/services/assets"
	"github.com/sxndmxn/deadlock-build-creator/internal/services/scraper"
	"github.com/sxndmxn/deadlock-build-creator/internal/services/stats"
	"github.com/sxndmxn/deadlock-build-creator/internal/storage"
)

// Bot represents the Discord bot.
type Bot struct {
	session       *discordgo.Session
	cfg           *config.Config
	assetsClient  *assets.Client
	statsClient   *stats.Client
	scraperClient *scraper.Client
	builder       *builder.Builder
	commands      []*discordgo.ApplicationCommand

	filterMu   sync.RWMutex
	rankFilter stats.RankFilter
}

// New creates a new Bot instance.
func New(cfg *config.Config) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds

	redisClient := storage.NewRedisClient(cfg)
	assetsClient := assets.NewClient(cfg, redisClient)
	statsClient := stats.NewClient(cfg, redisClient)

	bot := &Bot{
		session:       session,
		cfg:           cfg,
		assetsClient:  assetsClient,
		statsClient:   statsClient,
		scraperClient: scraper.NewClient(cfg.MetaURL, redisClient),
		builder:       builder.NewBuilder(assetsClient, statsClient),
		rankFilter:    stats.DefaultRankFilter,
	}

	session.AddHandler(bot.onReady)
	session.AddHandler(bot.onInteractionCreate)

	return bot, nil
}

// Start connects to Discord and starts the bot.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}

	log.Println("Connected to Discord")

	if err := b.registerCommands(); err != nil {
		log.Printf("Register commands failed: %v", err)
	}

	return nil
}

// Stop gracefully shuts down the bot.
func (b *Bot) Stop() error {
	return b.session.Close()
}

// onReady is called when the bot is ready.
func (b *Bot) onReady(s *discordgo.Session, event *discordgo.Ready) {
	log.Printf("Bot ready: %s", event.User.Username)
}

// currentFilter returns the active rank filter.
func (b *Bot) currentFilter() stats.RankFilter {
	b.filterMu.RLock()
	defer b.filterMu.RUnlock()
	return b.rankFilter
}

// setFilter swaps the rank filter and drops every cached analysis, since
// all of them were computed against the old ladder slice.
func (b *Bot) setFilter(filter stats.RankFilter) {
	b.filterMu.Lock()
	b.rankFilter = filter
	b.filterMu.Unlock()
	b.builder.SetRankFilter()
}

// registerCommands registers all slash commands.
func (b *Bot) registerCommands() error {
	heroOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "hero",
		Description: "Hero name (e.g. Haze, Lady Geist)",
		Required:    true,
	}

	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "ping",
			Description: "Check the bot is alive",
		},
		{
			Name:        "build",
			Description: "Recommended build for a hero: upgrade paths, timing and powerspike",
			Options: []*discordgo.ApplicationCommandOption{
				heroOption,
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "sort",
					Description: "How to order items inside each tier",
					Required:    false,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Win rate", Value: "winrate"},
						{Name: "Popularity", Value: "popularity"},
						{Name: "Buy order", Value: "buyorder"},
					},
				},
			},
		},
		{
			Name:        "items",
			Description: "Item win rates for a hero by tier",
			Options: []*discordgo.ApplicationCommandOption{
				heroOption,
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "tier",
					Description: "Item tier (1-4)",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Tier I", Value: 1},
						{Name: "Tier II", Value: 2},
						{Name: "Tier III", Value: 3},
						{Name: "Tier IV", Value: 4},
					},
				},
			},
		},
		{
			Name:        "synergies",
			Description: "Best item pairs for a hero",
			Options:     []*discordgo.ApplicationCommandOption{heroOption},
		},
		{
			Name:        "timing",
			Description: "When to buy an item on a hero",
			Options: []*discordgo.ApplicationCommandOption{
				heroOption,
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "item",
					Description: "Item name (e.g. Burst Fire)",
					Required:    true,
				},
			},
		},
		{
			Name:        "rank",
			Description: "Restrict stats to a rank range (affects all commands)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "min",
					Description: "Lowest rank to include (e.g. Archon)",
					Required:    false,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "max",
					Description: "Highest rank to include (e.g. Eternus)",
					Required:    false,
				},
			},
		},
		{
			Name:        "meta",
			Description: "Current hero meta: win and pick rates",
		},
	}

	registeredCommands := make([]*discordgo.ApplicationCommand, len(commands))
	for i, cmd := range commands {
		registered, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, "", cmd)
		if err != nil {
			log.Printf("Command %s failed: %v", cmd.Name, err)
			continue
		}
		registeredCommands[i] = registered
	}

	b.commands = registeredCommands
	log.Printf("Registered %d commands", len(registeredCommands))
	return nil
}

// onInteractionCreate handles slash command interactions.
func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	switch i.ApplicationCommandData().Name {
	case "ping":
		b.handlePing(s, i)
	case "build":
		b.handleBuild(s, i)
	case "items":
		b.handleItems(s, i)
	case "synergies":
		b.handleSynergies(s, i)
	case "timing":
		b.handleTiming(s, i)
	case "rank":
		b.handleRank(s, i)
	case "meta":
		b.handleMeta(s, i)
	}
}

// handlePing handles the /ping command.
func (b *Bot) handlePing(s *discordgo.Session, i *discordgo.InteractionCreate) {
	latency := s.HeartbeatLatency().Milliseconds()
	embed := embeds.Success(
		fmt.Sprintf("🏓 Pong! Latency: **%dms**", latency),
		"",
	)
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

// deferResponse acknowledges the interaction so slow fetches don't time out.
func deferResponse(s *discordgo.Session, i *discordgo.InteractionCreate) {
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
}

// editEmbed replaces the deferred response with a single embed.
func editEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	})
}

// optionMap indexes interaction options by name.
func optionMap(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	options := i.ApplicationCommandData().Options
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

// handleRank handles the /rank command.
func (b *Bot) handleRank(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i)

	minName, maxName := "", ""
	if opt, ok := opts["min"]; ok {
		minName = opt.StringValue()
	}
	if opt, ok := opts["max"]; ok {
		maxName = opt.StringValue()
	}

	if minName == "" && maxName == "" {
		b.setFilter(stats.DefaultRankFilter)
		embed := embeds.Success("Rank filter reset: stats now cover the whole ladder.", "")
		s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Embeds: []*discordgo.MessageEmbed{embed},
			},
		})
		return
	}

	deferResponse(s, i)

	filter := stats.DefaultRankFilter
	label := func(name string, badge int) string {
		return fmt.Sprintf("**%s** (badge %d)", name, badge)
	}

	var parts []string
	if minName != "" {
		rank, err := b.resolveRank(minName)
		if err != nil {
			editEmbed(s, i, embeds.Error(err.Error(), ""))
			return
		}
		filter.MinBadge = rank.Tier*10 + 1
		parts = append(parts, "from "+label(rank.Name, filter.MinBadge))
	}
	if maxName != "" {
		rank, err := b.resolveRank(maxName)
		if err != nil {
			editEmbed(s, i, embeds.Error(err.Error(), ""))
			return
		}
		filter.MaxBadge = rank.Tier*10 + 6
		parts = append(parts, "up to "+label(rank.Name, filter.MaxBadge))
	}

	if filter.MinBadge > filter.MaxBadge {
		editEmbed(s, i, embeds.Error("Minimum rank is above maximum rank.", ""))
		return
	}

	b.setFilter(filter)
	editEmbed(s, i, embeds.Success(
		"Rank filter set "+strings.Join(parts, " ")+". Cached builds were recomputed.",
		"",
	))
}

// resolveRank finds a ladder rank by name, case-insensitive.
func (b *Bot) resolveRank(name string) (*assets.Rank, error) {
	ranks, err := b.assetsClient.Ranks()
	if err != nil {
		return nil, fmt.Errorf("failed to load ranks: %v", err)
	}
	want := strings.ToLower(strings.TrimSpace(name))
	for idx := range ranks {
		if strings.ToLower(ranks[idx].Name) == want {
			return &ranks[idx], nil
		}
	}
	return nil, fmt.Errorf("unknown rank %q", name)
}
