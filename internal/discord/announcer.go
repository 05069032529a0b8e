package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/GrandChallenge_Go/internal/event"
	"github.com/osse101/GrandChallenge_Go/internal/logger"
)

// Sender is the part of *discordgo.Session the announcer needs
type Sender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// NameResolver maps participant ids to display names
type NameResolver interface {
	ResolveNames(ctx context.Context, ids []string) map[string]string
}

// Config holds the announcer configuration
type Config struct {
	Token     string
	ChannelID string
}

// Announcer posts tournament progress to a Discord channel
type Announcer struct {
	sender    Sender
	channelID string
	names     NameResolver
	session   *discordgo.Session
}

// New creates an announcer backed by a bot session. Only the REST API is
// used, so the gateway connection is never opened.
func New(cfg Config, names NameResolver) (*Announcer, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	a := NewAnnouncer(s, cfg.ChannelID, names)
	a.session = s
	return a, nil
}

// NewAnnouncer creates an announcer around any Sender
func NewAnnouncer(sender Sender, channelID string, names NameResolver) *Announcer {
	return &Announcer{sender: sender, channelID: channelID, names: names}
}

// Register subscribes the announcer to the events it reports
func (a *Announcer) Register(bus event.Bus) {
	bus.Subscribe(event.TournamentStarted, a.HandleEvent)
	bus.Subscribe(event.RoundAdvanced, a.HandleEvent)
	bus.Subscribe(event.ResultRecorded, a.HandleEvent)
	bus.Subscribe(event.TournamentFinished, a.HandleEvent)
	bus.Subscribe(event.TournamentReset, a.HandleEvent)
}

// Close releases the underlying session, if any
func (a *Announcer) Close() error {
	if a.session == nil {
		return nil
	}
	return a.session.Close()
}

// HandleEvent turns an event into an embed and posts it. Send failures are
// logged and swallowed so announcements never fail a tournament operation.
func (a *Announcer) HandleEvent(ctx context.Context, evt event.Event) error {
	embed, err := a.embedFor(ctx, evt)
	if err != nil {
		logger.FromContext(ctx).Debug(LogMsgPayloadUnexpected, "type", evt.Type, "error", err)
		return nil
	}
	if embed == nil {
		return nil
	}

	if _, err := a.sender.ChannelMessageSendEmbed(a.channelID, embed); err != nil {
		logger.FromContext(ctx).Warn(LogMsgAnnouncementFailed, "type", evt.Type, "error", err)
		return nil
	}
	logger.FromContext(ctx).Debug(LogMsgAnnouncementSent, "type", evt.Type)
	return nil
}

func (a *Announcer) embedFor(ctx context.Context, evt event.Event) (*discordgo.MessageEmbed, error) {
	switch evt.Type {
	case event.TournamentStarted:
		p, err := event.DecodePayload[event.TournamentPayloadV1](evt.Payload)
		if err != nil {
			return nil, err
		}
		return createEmbed(p.Name+" has started",
			fmt.Sprintf("%d challengers entered the bracket.", p.ParticipantCount), ColorRound), nil

	case event.RoundAdvanced:
		p, err := event.DecodePayload[event.RoundPayloadV1](evt.Payload)
		if err != nil {
			return nil, err
		}
		title := fmt.Sprintf("%s: round %d", p.TournamentName, p.RoundNumber)
		switch p.Phase {
		case "final":
			title = fmt.Sprintf("%s: the final", p.TournamentName)
		case "last_final":
			title = fmt.Sprintf("%s: the last final", p.TournamentName)
		}
		return createEmbed(title,
			fmt.Sprintf("%d challenges scheduled for %d players.", p.ChallengeCount, p.ParticipantCount), ColorRound), nil

	case event.ResultRecorded:
		p, err := event.DecodePayload[event.ResultPayloadV1](evt.Payload)
		if err != nil {
			return nil, err
		}
		if !p.Eliminated {
			return nil, nil
		}
		names := a.resolve(ctx, p.Winner, p.Loser)
		return createEmbed("Eliminated",
			fmt.Sprintf("%s was knocked out by %s in round %d.", names[p.Loser], names[p.Winner], p.RoundNumber), ColorElim), nil

	case event.TournamentFinished:
		p, err := event.DecodePayload[event.FinishedPayloadV1](evt.Payload)
		if err != nil {
			return nil, err
		}
		if p.Champion == "" {
			return createEmbed(p.TournamentName+" is over", "No champion remains standing.", ColorChampion), nil
		}
		names := a.resolve(ctx, p.Champion)
		return createEmbed(p.TournamentName+" is over",
			fmt.Sprintf("%s is the champion after %d rounds!", names[p.Champion], p.Rounds), ColorChampion), nil

	case event.TournamentReset:
		p, err := event.DecodePayload[event.TournamentPayloadV1](evt.Payload)
		if err != nil {
			return nil, err
		}
		return createEmbed(p.Name+" was reset", "The bracket is empty again.", ColorReset), nil
	}
	return nil, nil
}

func (a *Announcer) resolve(ctx context.Context, ids ...string) map[string]string {
	if a.names != nil {
		return a.names.ResolveNames(ctx, ids)
	}
	names := make(map[string]string, len(ids))
	for _, id := range ids {
		names[id] = id
	}
	return names
}

func createEmbed(title, description string, color int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       strings.TrimSpace(title),
		Description: description,
		Color:       color,
		Footer: &discordgo.MessageEmbedFooter{
			Text: FooterGrandChallenge,
		},
	}
}
