package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/itchan-dev/msgboard/backend/internal/service/password"
	"github.com/itchan-dev/msgboard/shared/domain"
)

// to mock service in tests
type BoardService interface {
	AddThreadInBoard(ctx context.Context, text domain.MsgText, board domain.BoardName, password domain.Password) (*domain.Thread, error)
	ListThreads(ctx context.Context, board domain.BoardName) ([]domain.Thread, error)
	ReportThread(ctx context.Context, board domain.BoardName, thread domain.ThreadId) error
	DeleteThread(ctx context.Context, board domain.BoardName, thread domain.ThreadId, password domain.Password) error

	AddReplyMessage(ctx context.Context, text domain.MsgText, board domain.BoardName, thread domain.ThreadId, password domain.Password) (*domain.Reply, error)
	GetReplies(ctx context.Context, board domain.BoardName, thread domain.ThreadId) (*domain.Thread, error)
	ReportReply(ctx context.Context, board domain.BoardName, thread domain.ThreadId, reply domain.ReplyId) error
	DeleteReply(ctx context.Context, board domain.BoardName, thread domain.ThreadId, reply domain.ReplyId, password domain.Password) error
}

type BoardStorage interface {
	FindBoard(ctx context.Context, name domain.BoardName) (*domain.Board, error)
	InsertBoard(ctx context.Context, board *domain.Board) error
	FindOrCreateBoard(ctx context.Context, name domain.BoardName, id domain.BoardId) (*domain.Board, error)
	SaveBoard(ctx context.Context, board *domain.Board) error
}

type BoardValidator interface {
	Name(name string) error
	Text(text string) error
}

type TextSanitizer interface {
	Text(text string) string
}

type Limits struct {
	ThreadsPerBoard   int
	RepliesPerPreview int
	DeletedReplyText  string
}

var DefaultLimits = Limits{ThreadsPerBoard: 10, RepliesPerPreview: 3, DeletedReplyText: "[deleted]"}

// Deps are the collaborators of Board besides storage. Zero fields get defaults.
type Deps struct {
	Clock     domain.Clock
	NewId     domain.IdGenerator
	Passwords password.Scheme
	Sanitizer TextSanitizer
}

type Board struct {
	storage   BoardStorage
	validator BoardValidator
	limits    Limits
	now       domain.Clock
	newId     domain.IdGenerator
	passwords password.Scheme
	sanitizer TextSanitizer
}

func NewBoard(storage BoardStorage, validator BoardValidator, limits Limits, deps Deps) *Board {
	b := &Board{
		storage:   storage,
		validator: validator,
		limits:    limits,
		now:       deps.Clock,
		newId:     deps.NewId,
		passwords: deps.Passwords,
		sanitizer: deps.Sanitizer,
	}
	if b.now == nil {
		b.now = time.Now
	}
	if b.newId == nil {
		b.newId = uuid.NewString
	}
	if b.passwords == nil {
		b.passwords = password.Plain{}
	}
	return b
}

// ThreadInBoard is a thread located inside its loaded board. Thread points into
// Board.Threads, so mutations through it are persisted by saving Board.
type ThreadInBoard struct {
	Board  *domain.Board
	Thread *domain.Thread
}

type ReplyInThread struct {
	ThreadInBoard
	Reply *domain.Reply
}

func (b *Board) FindBoard(ctx context.Context, name domain.BoardName) (*domain.Board, error) {
	if err := b.validator.Name(name); err != nil {
		return nil, err
	}
	return b.storage.FindBoard(ctx, name)
}

// CreateBoard builds an empty board and inserts it when persist is set.
func (b *Board) CreateBoard(ctx context.Context, name domain.BoardName, persist bool) (*domain.Board, error) {
	if err := b.validator.Name(name); err != nil {
		return nil, err
	}
	board := domain.NewBoard(b.newId(), name)
	if persist {
		if err := b.storage.InsertBoard(ctx, board); err != nil {
			return nil, err
		}
	}
	return board, nil
}

// FindOrCreateBoard relies on the store's atomic upsert, so concurrent first
// posts to one name end up in the same board.
func (b *Board) FindOrCreateBoard(ctx context.Context, name domain.BoardName) (*domain.Board, error) {
	if err := b.validator.Name(name); err != nil {
		return nil, err
	}
	return b.storage.FindOrCreateBoard(ctx, name, b.newId())
}

// NewThread builds an unsaved thread, the owning board save persists it.
func (b *Board) NewThread(text domain.MsgText, password domain.Password) (domain.Thread, error) {
	text, stored, err := b.prepare(text, password)
	if err != nil {
		return domain.Thread{}, err
	}
	return domain.NewThread(b.newId(), text, stored, b.now()), nil
}

// NewReply builds an unsaved reply, the owning board save persists it.
func (b *Board) NewReply(text domain.MsgText, password domain.Password) (domain.Reply, error) {
	text, stored, err := b.prepare(text, password)
	if err != nil {
		return domain.Reply{}, err
	}
	return domain.NewReply(b.newId(), text, stored, b.now()), nil
}

func (b *Board) prepare(text domain.MsgText, password domain.Password) (domain.MsgText, domain.Password, error) {
	if b.sanitizer != nil {
		text = b.sanitizer.Text(text)
	}
	if err := b.validator.Text(text); err != nil {
		return "", "", err
	}
	stored, err := b.passwords.Hash(password)
	if err != nil {
		return "", "", err
	}
	return text, stored, nil
}

func (b *Board) save(ctx context.Context, board *domain.Board) error {
	if err := b.storage.SaveBoard(ctx, board); err != nil {
		return fmt.Errorf("board %q: %w", board.Name, err)
	}
	return nil
}
