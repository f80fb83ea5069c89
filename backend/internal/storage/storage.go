// Package storage defines the document store contract shared by the mongo, pg
// and memory drivers. One board document holds its whole thread/reply subtree.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/itchan-dev/msgboard/shared/domain"
	internal_errors "github.com/itchan-dev/msgboard/shared/errors"
	"github.com/itchan-dev/msgboard/shared/middleware/metrics"
)

type Store interface {
	// FindBoard returns the first board named name or errors.ErrNotFound.
	FindBoard(ctx context.Context, name domain.BoardName) (*domain.Board, error)
	// InsertBoard stores a new board document as is.
	InsertBoard(ctx context.Context, board *domain.Board) error
	// FindOrCreateBoard atomically returns the board named name, inserting an
	// empty one with the given id when there is none.
	FindOrCreateBoard(ctx context.Context, name domain.BoardName, id domain.BoardId) (*domain.Board, error)
	// SaveBoard replaces the whole document if its stored version still equals
	// board.Version, then increments board.Version. A stale copy yields
	// errors.ErrConflict, a missing document errors.ErrNotFound.
	SaveBoard(ctx context.Context, board *domain.Board) error
	// DeleteAllBoards is reset tooling and returns the number of removed boards.
	DeleteAllBoards(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type instrumented struct {
	driver string
	next   Store
}

// Instrument wraps s so every call is counted and timed under the driver label.
func Instrument(driver string, s Store) Store {
	return &instrumented{driver: driver, next: s}
}

func (s *instrumented) observe(op string, start time.Time, err error) {
	metrics.ObserveStoreOp(s.driver, op, outcome(err), time.Since(start))
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, internal_errors.ErrNotFound):
		return "not_found"
	case errors.Is(err, internal_errors.ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}

func (s *instrumented) FindBoard(ctx context.Context, name domain.BoardName) (board *domain.Board, err error) {
	defer func(start time.Time) { s.observe("find_board", start, err) }(time.Now())
	return s.next.FindBoard(ctx, name)
}

func (s *instrumented) InsertBoard(ctx context.Context, board *domain.Board) (err error) {
	defer func(start time.Time) { s.observe("insert_board", start, err) }(time.Now())
	return s.next.InsertBoard(ctx, board)
}

func (s *instrumented) FindOrCreateBoard(ctx context.Context, name domain.BoardName, id domain.BoardId) (board *domain.Board, err error) {
	defer func(start time.Time) { s.observe("find_or_create_board", start, err) }(time.Now())
	return s.next.FindOrCreateBoard(ctx, name, id)
}

func (s *instrumented) SaveBoard(ctx context.Context, board *domain.Board) (err error) {
	defer func(start time.Time) { s.observe("save_board", start, err) }(time.Now())
	return s.next.SaveBoard(ctx, board)
}

func (s *instrumented) DeleteAllBoards(ctx context.Context) (n int64, err error) {
	defer func(start time.Time) { s.observe("delete_all_boards", start, err) }(time.Now())
	return s.next.DeleteAllBoards(ctx)
}

func (s *instrumented) Ping(ctx context.Context) (err error) {
	defer func(start time.Time) { s.observe("ping", start, err) }(time.Now())
	return s.next.Ping(ctx)
}

func (s *instrumented) Close(ctx context.Context) error {
	return s.next.Close(ctx)
}
