// Package storetest is a behavioural suite every storage.Store driver must pass.
package storetest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/itchan-dev/msgboard/backend/internal/storage"
	"github.com/itchan-dev/msgboard/shared/domain"
	"github.com/itchan-dev/msgboard/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run executes the suite. newStore may return the same store for every call;
// subtests use unique board names and run sequentially.
func Run(t *testing.T, newStore func(t *testing.T) storage.Store) {
	ctx := context.Background()

	t.Run("find missing board", func(t *testing.T) {
		s := newStore(t)
		_, err := s.FindBoard(ctx, uniqueName())
		assert.ErrorIs(t, err, errors.ErrNotFound)
	})

	t.Run("insert and find", func(t *testing.T) {
		s := newStore(t)
		board := sampleBoard()
		require.NoError(t, s.InsertBoard(ctx, board))

		got, err := s.FindBoard(ctx, board.Name)
		require.NoError(t, err)
		requireSameBoard(t, board, got)
	})

	t.Run("returned board is a copy", func(t *testing.T) {
		s := newStore(t)
		board := sampleBoard()
		require.NoError(t, s.InsertBoard(ctx, board))

		got, err := s.FindBoard(ctx, board.Name)
		require.NoError(t, err)
		got.Threads[0].Text = "mutated without save"

		again, err := s.FindBoard(ctx, board.Name)
		require.NoError(t, err)
		assert.Equal(t, board.Threads[0].Text, again.Threads[0].Text)
	})

	t.Run("empty and missing thread collections", func(t *testing.T) {
		s := newStore(t)
		empty := domain.NewBoard(uuid.NewString(), uniqueName())
		require.NoError(t, s.InsertBoard(ctx, empty))
		got, err := s.FindBoard(ctx, empty.Name)
		require.NoError(t, err)
		assert.NotNil(t, got.Threads)
		assert.Empty(t, got.Threads)

		corrupt := &domain.Board{Id: uuid.NewString(), Name: uniqueName()}
		require.NoError(t, s.InsertBoard(ctx, corrupt))
		got, err = s.FindBoard(ctx, corrupt.Name)
		require.NoError(t, err)
		assert.Nil(t, got.Threads)
	})

	t.Run("find or create", func(t *testing.T) {
		s := newStore(t)
		name := uniqueName()

		first, err := s.FindOrCreateBoard(ctx, name, uuid.NewString())
		require.NoError(t, err)
		assert.Equal(t, name, first.Name)
		assert.NotNil(t, first.Threads)
		assert.Empty(t, first.Threads)

		second, err := s.FindOrCreateBoard(ctx, name, uuid.NewString())
		require.NoError(t, err)
		assert.Equal(t, first.Id, second.Id, "existing board must be returned")
	})

	t.Run("concurrent find or create yields one board", func(t *testing.T) {
		s := newStore(t)
		name := uniqueName()

		const workers = 8
		ids := make([]domain.BoardId, workers)
		errs := make([]error, workers)
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				b, err := s.FindOrCreateBoard(ctx, name, uuid.NewString())
				errs[i] = err
				if err == nil {
					ids[i] = b.Id
				}
			}(i)
		}
		wg.Wait()

		for i := range ids {
			require.NoError(t, errs[i])
			assert.Equal(t, ids[0], ids[i])
		}
	})

	t.Run("save replaces the document", func(t *testing.T) {
		s := newStore(t)
		board, err := s.FindOrCreateBoard(ctx, uniqueName(), uuid.NewString())
		require.NoError(t, err)
		version := board.Version

		now := timestamp()
		thread := domain.NewThread(uuid.NewString(), "op", "pass", now)
		thread.AddReply(domain.NewReply(uuid.NewString(), "reply", "pass2", now.Add(time.Second)))
		board.AddThread(thread)

		require.NoError(t, s.SaveBoard(ctx, board))
		assert.Equal(t, version+1, board.Version)

		got, err := s.FindBoard(ctx, board.Name)
		require.NoError(t, err)
		requireSameBoard(t, board, got)

		got.RemoveThread(thread.Id)
		require.NoError(t, s.SaveBoard(ctx, got))
		again, err := s.FindBoard(ctx, board.Name)
		require.NoError(t, err)
		assert.Empty(t, again.Threads)
	})

	t.Run("stale save is rejected", func(t *testing.T) {
		s := newStore(t)
		name := uniqueName()
		_, err := s.FindOrCreateBoard(ctx, name, uuid.NewString())
		require.NoError(t, err)

		a, err := s.FindBoard(ctx, name)
		require.NoError(t, err)
		b, err := s.FindBoard(ctx, name)
		require.NoError(t, err)

		a.AddThread(domain.NewThread(uuid.NewString(), "from a", "p", timestamp()))
		require.NoError(t, s.SaveBoard(ctx, a))

		b.AddThread(domain.NewThread(uuid.NewString(), "from b", "p", timestamp()))
		assert.ErrorIs(t, s.SaveBoard(ctx, b), errors.ErrConflict)

		got, err := s.FindBoard(ctx, name)
		require.NoError(t, err)
		require.Len(t, got.Threads, 1)
		assert.Equal(t, "from a", got.Threads[0].Text)
	})

	t.Run("save of unknown board", func(t *testing.T) {
		s := newStore(t)
		err := s.SaveBoard(ctx, domain.NewBoard(uuid.NewString(), uniqueName()))
		assert.ErrorIs(t, err, errors.ErrNotFound)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, newStore(t).Ping(ctx))
	})

	t.Run("delete all", func(t *testing.T) {
		s := newStore(t)
		names := []string{uniqueName(), uniqueName()}
		for _, name := range names {
			_, err := s.FindOrCreateBoard(ctx, name, uuid.NewString())
			require.NoError(t, err)
		}

		n, err := s.DeleteAllBoards(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, int64(len(names)))

		for _, name := range names {
			_, err := s.FindBoard(ctx, name)
			assert.ErrorIs(t, err, errors.ErrNotFound)
		}
	})
}

func uniqueName() domain.BoardName {
	return "board-" + uuid.NewString()[:8]
}

// stores keep millisecond precision at least
func timestamp() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func sampleBoard() *domain.Board {
	now := timestamp()
	board := domain.NewBoard(uuid.NewString(), uniqueName())
	thread := domain.NewThread(uuid.NewString(), "thread text", "secret", now)
	reply := domain.NewReply(uuid.NewString(), "reply text", "secret", now.Add(time.Minute))
	reply.Report(now.Add(2 * time.Minute))
	thread.AddReply(reply)
	board.AddThread(thread)
	board.AddThread(domain.NewThread(uuid.NewString(), "second thread", "other", now.Add(time.Hour)))
	return board
}

func requireSameBoard(t *testing.T, want, got *domain.Board) {
	t.Helper()
	require.NotNil(t, got)
	assert.Equal(t, want.Id, got.Id)
	assert.Equal(t, want.Name, got.Name)
	require.Len(t, got.Threads, len(want.Threads))
	for i := range want.Threads {
		w, g := want.Threads[i], got.Threads[i]
		assert.Equal(t, w.Id, g.Id)
		assert.Equal(t, w.Text, g.Text)
		assert.Equal(t, w.DeletePassword, g.DeletePassword)
		assert.Equal(t, w.Reported, g.Reported)
		assert.True(t, w.CreatedOn.Equal(g.CreatedOn), "created_on %v != %v", w.CreatedOn, g.CreatedOn)
		assert.True(t, w.BumpedOn.Equal(g.BumpedOn), "bumped_on %v != %v", w.BumpedOn, g.BumpedOn)
		assert.Zero(t, g.ReplyCount, "reply count is never stored")
		require.Len(t, g.Replies, len(w.Replies))
		for j := range w.Replies {
			wr, gr := w.Replies[j], g.Replies[j]
			assert.Equal(t, wr.Id, gr.Id)
			assert.Equal(t, wr.Text, gr.Text)
			assert.Equal(t, wr.DeletePassword, gr.DeletePassword)
			assert.Equal(t, wr.Reported, gr.Reported)
			assert.True(t, wr.CreatedOn.Equal(gr.CreatedOn))
			assert.True(t, wr.BumpedOn.Equal(gr.BumpedOn))
		}
	}
}
