package tournament

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/osse101/GrandChallenge_Go/internal/bracket"
	"github.com/osse101/GrandChallenge_Go/internal/domain"
	"github.com/osse101/GrandChallenge_Go/internal/logger"
)

// MsgNoCurrentRound is shown on the dashboard before the tournament starts
const MsgNoCurrentRound = "No current round. Did you start it?"

// NameResolver maps participant ids to display names and profiles
type NameResolver interface {
	Players(ctx context.Context, ids []string) (map[string]domain.Player, error)
}

// Dashboard is the read model behind the bracket page
type Dashboard struct {
	TournamentID uuid.UUID       `json:"tournament_id"`
	Name         string          `json:"name"`
	Phase        domain.Phase    `json:"phase"`
	Finished     bool            `json:"finished"`
	Champion     *ContestantView `json:"champion,omitempty"`
	Message      string          `json:"message,omitempty"`
	Round        *RoundView      `json:"round,omitempty"`
	Standings    []StandingView  `json:"standings"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// RoundView is the current round with per-contestant outcomes
type RoundView struct {
	Number       int             `json:"round_number"`
	Closed       bool            `json:"closed"`
	IsFinal      bool            `json:"is_final"`
	IsLastFinal  bool            `json:"is_last_final"`
	Participants []StandingView  `json:"participants"`
	Challenges   []ChallengeView `json:"challenges"`
}

// ChallengeView is one challenge as rendered on the dashboard
type ChallengeView struct {
	ID       uuid.UUID              `json:"id"`
	Position int                    `json:"position"`
	Branch   domain.Branch          `json:"branch"`
	Status   domain.ChallengeStatus `json:"status"`
	From     ContestantView         `json:"from"`
	To       ContestantView         `json:"to"`
	Winner   *string                `json:"winner,omitempty"`
	PlayedAt *time.Time             `json:"played_at,omitempty"`
}

// ContestantView is one side of a challenge
type ContestantView struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Points  string          `json:"points,omitempty"`
	Level   int             `json:"level,omitempty"`
	Outcome bracket.Outcome `json:"outcome,omitempty"`
	Class   string          `json:"class,omitempty"`
}

// StandingView is a participant's loss record
type StandingView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Seed       int    `json:"seed"`
	Losses     int    `json:"losses"`
	Eliminated bool   `json:"eliminated"`
	Points     string `json:"points,omitempty"`
}

// ViewBuilder derives dashboards from tournament snapshots
type ViewBuilder struct {
	engine  *bracket.Engine
	players NameResolver
	printer *message.Printer
}

// NewViewBuilder creates a ViewBuilder. players may be nil, in which case
// participants are shown by id. locale is a BCP 47 tag; unknown tags fall back to English.
func NewViewBuilder(engine *bracket.Engine, players NameResolver, locale string) *ViewBuilder {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &ViewBuilder{
		engine:  engine,
		players: players,
		printer: message.NewPrinter(tag),
	}
}

// Build renders the dashboard for a snapshot
func (b *ViewBuilder) Build(ctx context.Context, t *domain.Tournament) *Dashboard {
	profiles := b.profiles(ctx, t)
	contestant := func(id string) ContestantView {
		v := ContestantView{ID: id, Name: id}
		if p, ok := profiles[id]; ok {
			if name := p.Name(); name != "" {
				v.Name = name
			}
			v.Points = b.formatPoints(p.Points)
			v.Level = p.Level
		}
		return v
	}
	standing := func(id string, seed, losses int) StandingView {
		c := contestant(id)
		return StandingView{
			ID:         id,
			Name:       c.Name,
			Seed:       seed,
			Losses:     losses,
			Eliminated: b.engine.Eliminated(losses),
			Points:     c.Points,
		}
	}

	d := &Dashboard{
		TournamentID: t.ID,
		Name:         t.Name,
		Phase:        b.engine.Phase(t),
		Finished:     t.Finished,
		Standings:    make([]StandingView, 0, len(t.Participants)),
		UpdatedAt:    t.UpdatedAt,
	}
	for _, p := range t.Participants {
		d.Standings = append(d.Standings, standing(p.ID, p.Seed, p.Losses))
	}
	if t.Champion != nil {
		champion := contestant(*t.Champion)
		d.Champion = &champion
	}

	current := t.CurrentRound()
	if current == nil {
		d.Message = MsgNoCurrentRound
		return d
	}

	cfg := b.engine.Config()
	rv := &RoundView{
		Number:       current.Number,
		Closed:       current.Closed,
		IsFinal:      current.Number == cfg.FinalRound,
		IsLastFinal:  current.Number >= cfg.LastFinalRound,
		Participants: make([]StandingView, 0, len(current.Standings)),
		Challenges:   make([]ChallengeView, 0, len(current.Challenges)),
	}
	seeds := make(map[string]int, len(t.Participants))
	for _, p := range t.Participants {
		seeds[p.ID] = p.Seed
	}
	for _, s := range current.Standings {
		rv.Participants = append(rv.Participants, standing(s.ParticipantID, seeds[s.ParticipantID], s.Losses))
	}

	outcomes := b.engine.Outcomes(current)
	for i := range current.Challenges {
		c := &current.Challenges[i]
		o := outcomes[c.ID.String()]
		from, to := contestant(c.UserFrom), contestant(c.UserTo)
		from.Outcome, from.Class = o.From, o.From.Class()
		to.Outcome, to.Class = o.To, o.To.Class()
		rv.Challenges = append(rv.Challenges, ChallengeView{
			ID:       c.ID,
			Position: c.Position,
			Branch:   c.Branch,
			Status:   c.Status,
			From:     from,
			To:       to,
			Winner:   c.Winner,
			PlayedAt: c.PlayedAt,
		})
	}
	d.Round = rv
	return d
}

func (b *ViewBuilder) profiles(ctx context.Context, t *domain.Tournament) map[string]domain.Player {
	if b.players == nil || len(t.Participants) == 0 {
		return nil
	}
	ids := make([]string, 0, len(t.Participants))
	for _, p := range t.Participants {
		ids = append(ids, p.ID)
	}
	// partial results are still useful; unknown players render by id
	profiles, err := b.players.Players(ctx, ids)
	if err != nil && !errors.Is(err, domain.ErrPlayerNotFound) {
		logger.FromContext(ctx).Warn(LogMsgProfileLookupFailed, "tournament_id", t.ID, "error", err)
	}
	return profiles
}

func (b *ViewBuilder) formatPoints(points float64) string {
	return b.printer.Sprint(number.Decimal(points, number.MaxFractionDigits(0)))
}
