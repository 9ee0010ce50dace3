// Package ordering applies every board mutation inside a single store
// transaction. Lists are ordered by their integer position; cards are ordered
// by their index in the parent list's card id sequence.
package ordering

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"boardsync/internal/model"
	"boardsync/internal/observability"
	"boardsync/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrForbidden      = errors.New("access denied")
	ErrStaleOrder     = errors.New("list order is out of date")
	ErrCrossBoardMove = errors.New("cards cannot move between boards")
	ErrBoardMismatch  = errors.New("board does not match the list's board")
	ErrInvalid        = errors.New("invalid request")
)

// DefaultActivityLimit caps the activity entries included in a snapshot.
const DefaultActivityLimit = 50

type Engine struct {
	db            *gorm.DB
	activityLimit int
}

type Option func(*Engine)

// WithActivityLimit sets how many activity entries a snapshot carries.
func WithActivityLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.activityLimit = n
		}
	}
}

func NewEngine(db *gorm.DB, opts ...Option) *Engine {
	e := &Engine{db: db, activityLimit: DefaultActivityLimit}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// stores is the set of repositories bound to one transaction.
type stores struct {
	users      *repository.UserRepository
	boards     *repository.BoardRepository
	members    *repository.BoardMemberRepository
	lists      *repository.ListRepository
	cards      *repository.CardRepository
	connectors *repository.ConnectorRepository
	activity   *repository.ActivityRepository
}

func newStores(tx *gorm.DB) *stores {
	return &stores{
		users:      repository.NewUserRepository(tx),
		boards:     repository.NewBoardRepository(tx),
		members:    repository.NewBoardMemberRepository(tx),
		lists:      repository.NewListRepository(tx),
		cards:      repository.NewCardRepository(tx),
		connectors: repository.NewConnectorRepository(tx),
		activity:   repository.NewActivityRepository(tx),
	}
}

// run executes fn in one transaction and records the outcome.
func (e *Engine) run(ctx context.Context, operation string, fn func(s *stores) error) error {
	start := time.Now()
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newStores(tx))
	})
	observability.ObserveOperation(operation, Outcome(err), time.Since(start))
	return err
}

// Outcome classifies err for metrics and logs.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case IsNotFound(err):
		return "not_found"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrStaleOrder):
		return "conflict"
	case errors.Is(err, ErrCrossBoardMove), errors.Is(err, ErrBoardMismatch), errors.Is(err, ErrInvalid):
		return "invalid"
	default:
		return "error"
	}
}

func IsNotFound(err error) bool {
	return errors.Is(err, repository.ErrBoardNotFound) ||
		errors.Is(err, repository.ErrListNotFound) ||
		errors.Is(err, repository.ErrCardNotFound) ||
		errors.Is(err, repository.ErrConnectorNotFound) ||
		errors.Is(err, repository.ErrUserNotFound)
}

// Authorize returns nil when the user owns or is a member of the board.
func (e *Engine) Authorize(ctx context.Context, boardID, userID uuid.UUID) error {
	return authorize(ctx, newStores(e.db), boardID, userID)
}

func authorize(ctx context.Context, s *stores, boardID, userID uuid.UUID) error {
	if _, err := s.boards.GetByID(ctx, boardID); err != nil {
		return err
	}
	ok, err := s.members.IsMember(ctx, boardID, userID)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}

func record(ctx context.Context, s *stores, boardID, actor uuid.UUID, action, description string) error {
	err := s.activity.Append(ctx, &model.BoardActivity{
		BoardID:     boardID,
		Action:      action,
		UserID:      actor,
		Description: description,
	})
	if err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}
	return nil
}

func requireText(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%w: %s is required", ErrInvalid, field)
	}
	return value, nil
}
