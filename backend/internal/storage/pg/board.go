package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/itchan-dev/msgboard/shared/domain"
	internal_errors "github.com/itchan-dev/msgboard/shared/errors"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBoard(row rowScanner) (*domain.Board, error) {
	var board domain.Board
	var threads []byte
	if err := row.Scan(&board.Id, &board.Name, &board.Version, &threads); err != nil {
		return nil, err
	}
	if threads != nil {
		if err := json.Unmarshal(threads, &board.Threads); err != nil {
			return nil, fmt.Errorf("failed to decode threads of board %q: %w", board.Name, err)
		}
	}
	return &board, nil
}

// encodeThreads returns nil (SQL NULL) for a missing collection.
func encodeThreads(threads []domain.Thread) (any, error) {
	if threads == nil {
		return nil, nil
	}
	raw, err := json.Marshal(threads)
	if err != nil {
		return nil, err
	}
	// lib/pq sends []byte as bytea, jsonb needs text
	return string(raw), nil
}

func (s *Storage) FindBoard(ctx context.Context, name domain.BoardName) (*domain.Board, error) {
	board, err := scanBoard(s.db.QueryRowContext(ctx, `
        SELECT id, name, version, threads
        FROM boards
        WHERE name = $1
        LIMIT 1
    `, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, internal_errors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch board %q: %w", name, err)
	}
	return board, nil
}

func (s *Storage) InsertBoard(ctx context.Context, board *domain.Board) error {
	threads, err := encodeThreads(board.Threads)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO boards (id, name, version, threads) VALUES ($1, $2, $3, $4)",
		board.Id, board.Name, board.Version, threads,
	)
	if err != nil {
		return fmt.Errorf("failed to insert board %q: %w", board.Name, err)
	}
	return nil
}

func (s *Storage) FindOrCreateBoard(ctx context.Context, name domain.BoardName, id domain.BoardId) (*domain.Board, error) {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO boards (id, name, version, threads)
        VALUES ($1, $2, 0, '[]'::jsonb)
        ON CONFLICT (name) DO NOTHING
    `, id, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create board %q: %w", name, err)
	}
	return s.FindBoard(ctx, name)
}

func (s *Storage) SaveBoard(ctx context.Context, board *domain.Board) error {
	threads, err := encodeThreads(board.Threads)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
        UPDATE boards
        SET threads = $1, version = version + 1
        WHERE id = $2 AND version = $3
    `, threads, board.Id, board.Version)
	if err != nil {
		return fmt.Errorf("failed to save board %q: %w", board.Name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to save board %q: %w", board.Name, err)
	}

	if affected == 0 {
		var exists bool
		if err := s.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM boards WHERE id = $1)", board.Id).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check board %q: %w", board.Name, err)
		}
		if !exists {
			return internal_errors.ErrNotFound
		}
		return internal_errors.ErrConflict
	}

	board.Version++
	return nil
}

func (s *Storage) DeleteAllBoards(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM boards")
	if err != nil {
		return 0, fmt.Errorf("failed to delete boards: %w", err)
	}
	return res.RowsAffected()
}
