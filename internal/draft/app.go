package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/deadpool-app/deadpool/internal/draft/events"
	"github.com/deadpool-app/deadpool/internal/models"
)

// PickQueries defines what RecordPick needs from the storage layer inside
// one transaction.
type PickQueries interface {
	ListPlayers(ctx context.Context) ([]models.Player, error)
	ListPicksForYear(ctx context.Context, year int) ([]models.Pick, error)
	ListDraftedNamesForYear(ctx context.Context, year int) ([]NamedID, error)
	ListPeopleNames(ctx context.Context) ([]NamedID, error)
	InsertPerson(ctx context.Context, id uuid.UUID, name, wikiPage string) error
	InsertPick(ctx context.Context, pick models.Pick) error
	InsertOutboxEvent(ctx context.Context, eventType string, payload []byte) error
}

// DraftRepository defines what the app layer needs from the draft repository.
type DraftRepository interface {
	ListPlayers(ctx context.Context) ([]models.Player, error)
	ListPicksForYear(ctx context.Context, year int) ([]models.Pick, error)
	InTransaction(ctx context.Context, fn func(q PickQueries) error) error
}

// App handles drafting business logic.
type App struct {
	repo  DraftRepository
	clock clockwork.Clock
	quota int
}

// NewApp creates a new draft App with the default pick quota.
func NewApp(repo DraftRepository, clock clockwork.Clock) *App {
	return &App{
		repo:  repo,
		clock: clock,
		quota: DefaultPickQuota,
	}
}

// CurrentYear returns the draft year the app is operating in.
func (a *App) CurrentYear() int {
	return a.clock.Now().UTC().Year()
}

// ResolveNextDrafter recomputes the current drafter from the roster and the
// year's pick ledger. A nil result with nil error means the draft is over.
func (a *App) ResolveNextDrafter(ctx context.Context, year int) (*NextDrafterInfo, error) {
	players, err := a.repo.ListPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	picks, err := a.repo.ListPicksForYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to load pick ledger: %w", err)
	}

	next, ok := NextDrafter(players, picks, a.quota)
	if !ok {
		return nil, nil
	}
	return a.drafterInfo(next, picks), nil
}

// ListPicks returns the immutable pick ledger for a year.
func (a *App) ListPicks(ctx context.Context, year int) ([]models.Pick, error) {
	picks, err := a.repo.ListPicksForYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to load pick ledger: %w", err)
	}
	return picks, nil
}

// RecordPick validates and persists one draft submission as a single atomic
// unit: turn re-validation, both duplicate-guard passes, the person row
// (reused or created), the pick row, and the two notification outbox rows
// all commit or roll back together. A unique index on (year, person_id)
// backstops the duplicate guard under concurrent submissions.
//
// Admins submit on behalf of whoever is up; regular players must themselves
// be the resolved next drafter.
func (a *App) RecordPick(ctx context.Context, who models.Identity, req RecordPickRequest) (*RecordPickResult, error) {
	name := strings.TrimSpace(req.PersonName)
	if err := ValidatePickName(name); err != nil {
		return nil, err
	}

	var result *RecordPickResult
	err := a.repo.InTransaction(ctx, func(q PickQueries) error {
		players, err := q.ListPlayers(ctx)
		if err != nil {
			return err
		}
		picks, err := q.ListPicksForYear(ctx, req.Year)
		if err != nil {
			return err
		}

		// Turn re-validation at commit time, not just page-render time.
		drafter, ok := NextDrafter(players, picks, a.quota)
		if !ok {
			return ErrDraftComplete
		}
		if drafter.ID != who.PlayerID && !who.IsAdmin() {
			return ErrNotYourTurn
		}

		drafted, err := q.ListDraftedNamesForYear(ctx, req.Year)
		if err != nil {
			return err
		}
		if id, matched := FindFuzzyMatch(name, drafted, SameYearDupThreshold); matched {
			return &DuplicatePickError{MatchedName: nameOf(drafted, id), PersonID: id}
		}

		// Reuse the historical Person row when the name fuzzy-matches one,
		// so spelling variance never duplicates the registry.
		people, err := q.ListPeopleNames(ctx)
		if err != nil {
			return err
		}
		personID, reused := FindFuzzyMatch(name, people, PersonReuseThreshold)
		personName := name
		if reused {
			personName = nameOf(people, personID)
		} else {
			personID = uuid.New()
			if err := q.InsertPerson(ctx, personID, name, wikiSlug(name)); err != nil {
				return err
			}
		}

		pick := models.Pick{
			ID:       uuid.New(),
			PlayerID: drafter.ID,
			PersonID: personID,
			Year:     req.Year,
			PickedAt: a.clock.Now().UTC(),
		}
		if err := q.InsertPick(ctx, pick); err != nil {
			if isUniqueViolation(err) {
				return &DuplicatePickError{MatchedName: personName, PersonID: personID}
			}
			return err
		}

		if err := a.emitNotifications(ctx, q, drafter, personName, pick, players, picks); err != nil {
			return err
		}

		result = &RecordPickResult{Pick: pick, PersonName: personName, PersonReused: reused}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("player_id", result.Pick.PlayerID.String()).
		Str("person", result.PersonName).
		Int("year", result.Pick.Year).
		Bool("person_reused", result.PersonReused).
		Msg("pick recorded")

	return result, nil
}

// emitNotifications inserts the broadcast and next-drafter outbox rows in
// the pick's own transaction so delivery can never observe an uncommitted
// pick and a committed pick can never lose its notifications.
func (a *App) emitNotifications(ctx context.Context, q PickQueries, drafter models.Player,
	personName string, pick models.Pick, players []models.Player, priorPicks []models.Pick) error {

	var optedIn []string
	for _, p := range players {
		if p.OptIn && p.Phone != "" {
			optedIn = append(optedIn, p.Phone)
		}
	}

	announced, err := json.Marshal(events.PickAnnouncedPayload{
		PickID:     pick.ID,
		PlayerID:   drafter.ID,
		PlayerName: drafter.Name(),
		PersonName: personName,
		Year:       pick.Year,
		PickedAt:   pick.PickedAt,
		Recipients: optedIn,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal PickAnnounced payload: %w", err)
	}
	if err := q.InsertOutboxEvent(ctx, events.TypePickAnnounced, announced); err != nil {
		return err
	}

	// Re-run the resolver with the new pick included to find who is up now.
	next, ok := NextDrafter(players, append(priorPicks, pick), a.quota)
	if !ok {
		return nil
	}
	alert, err := json.Marshal(events.NextDrafterAlertPayload{
		PlayerID:   next.ID,
		PlayerName: next.Name(),
		Recipient:  next.Phone,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal NextDrafterAlert payload: %w", err)
	}
	return q.InsertOutboxEvent(ctx, events.TypeNextDrafterAlert, alert)
}

func (a *App) drafterInfo(p models.Player, picks []models.Pick) *NextDrafterInfo {
	count := 0
	for _, pk := range picks {
		if pk.PlayerID == p.ID && !pk.PersonDeceased {
			count++
		}
	}
	return &NextDrafterInfo{
		PlayerID:  p.ID,
		Name:      p.Name(),
		Email:     p.Email,
		Phone:     p.Phone,
		PickCount: count,
	}
}

func nameOf(set []NamedID, id uuid.UUID) string {
	for _, n := range set {
		if n.ID == id {
			return n.Name
		}
	}
	return ""
}

func wikiSlug(name string) string {
	return strings.ReplaceAll(name, " ", "_")
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
