// Package memory is an in-process document store. Boards are deep-copied on
// the way in and out so callers never share state with the store.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/itchan-dev/msgboard/shared/domain"
	"github.com/itchan-dev/msgboard/shared/errors"
)

type Storage struct {
	mu sync.Mutex
	// insertion order, first match by name wins
	boards []*domain.Board
}

func New() *Storage {
	return &Storage{}
}

// document is what a persistent driver would keep: a copy without derived fields.
func document(b *domain.Board) *domain.Board {
	c := b.Clone()
	for i := range c.Threads {
		c.Threads[i].ReplyCount = 0
	}
	return c
}

func (s *Storage) byName(name domain.BoardName) *domain.Board {
	for _, b := range s.boards {
		if b.Name == name {
			return b
		}
	}
	return nil
}

func (s *Storage) byId(id domain.BoardId) (int, *domain.Board) {
	for i, b := range s.boards {
		if b.Id == id {
			return i, b
		}
	}
	return -1, nil
}

func (s *Storage) FindBoard(ctx context.Context, name domain.BoardName) (*domain.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.byName(name)
	if b == nil {
		return nil, errors.ErrNotFound
	}
	return b.Clone(), nil
}

func (s *Storage) InsertBoard(ctx context.Context, board *domain.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, existing := s.byId(board.Id); existing != nil {
		return fmt.Errorf("board id %s already exists", board.Id)
	}
	s.boards = append(s.boards, document(board))
	return nil
}

func (s *Storage) FindOrCreateBoard(ctx context.Context, name domain.BoardName, id domain.BoardId) (*domain.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b := s.byName(name); b != nil {
		return b.Clone(), nil
	}
	b := domain.NewBoard(id, name)
	s.boards = append(s.boards, b)
	return b.Clone(), nil
}

func (s *Storage) SaveBoard(ctx context.Context, board *domain.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, stored := s.byId(board.Id)
	if stored == nil {
		return errors.ErrNotFound
	}
	if stored.Version != board.Version {
		return errors.ErrConflict
	}
	board.Version++
	s.boards[i] = document(board)
	return nil
}

func (s *Storage) DeleteAllBoards(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := int64(len(s.boards))
	s.boards = nil
	return n, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Storage) Close(ctx context.Context) error {
	return nil
}
