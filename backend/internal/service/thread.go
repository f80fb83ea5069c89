package service

import (
	"context"
	"slices"

	"github.com/itchan-dev/msgboard/shared/domain"
	"github.com/itchan-dev/msgboard/shared/errors"
	"github.com/itchan-dev/msgboard/shared/logger"
)

// AddThreadInBoard creates the board on first use and appends a new thread to it.
func (b *Board) AddThreadInBoard(ctx context.Context, text domain.MsgText, boardName domain.BoardName, password domain.Password) (*domain.Thread, error) {
	thread, err := b.NewThread(text, password)
	if err != nil {
		return nil, err
	}
	board, err := b.FindOrCreateBoard(ctx, boardName)
	if err != nil {
		return nil, err
	}
	if board.Threads == nil {
		board.Threads = []domain.Thread{}
	}
	board.AddThread(thread)
	if err := b.save(ctx, board); err != nil {
		return nil, err
	}
	logger.Log.Debug("thread created", "board", board.Name, "thread", &thread)
	return &thread, nil
}

func (b *Board) GetThreadInBoard(ctx context.Context, boardName domain.BoardName, threadId domain.ThreadId) (*ThreadInBoard, error) {
	board, err := b.FindBoard(ctx, boardName)
	if err != nil {
		return nil, err
	}
	thread := board.Thread(threadId)
	if thread == nil {
		return nil, errors.ErrNotFound
	}
	return &ThreadInBoard{Board: board, Thread: thread}, nil
}

func (b *Board) ReportThread(ctx context.Context, boardName domain.BoardName, threadId domain.ThreadId) error {
	loc, err := b.GetThreadInBoard(ctx, boardName, threadId)
	if err != nil {
		return err
	}
	loc.Thread.Report(b.now())
	return b.save(ctx, loc.Board)
}

// DeleteThread removes the thread with its replies. A wrong password leaves
// the board untouched.
func (b *Board) DeleteThread(ctx context.Context, boardName domain.BoardName, threadId domain.ThreadId, password domain.Password) error {
	loc, err := b.GetThreadInBoard(ctx, boardName, threadId)
	if err != nil {
		return err
	}
	if !b.passwords.Matches(loc.Thread.DeletePassword, password) {
		return errors.ErrIncorrectPassword
	}
	loc.Board.RemoveThread(threadId)
	if err := b.save(ctx, loc.Board); err != nil {
		return err
	}
	logger.Log.Info("thread deleted", "board", boardName, "thread", threadId)
	return nil
}

// ListThreads returns the most recently bumped threads of a board, each with
// its most recently bumped replies. ReplyCount always counts every reply.
func (b *Board) ListThreads(ctx context.Context, boardName domain.BoardName) ([]domain.Thread, error) {
	board, err := b.FindBoard(ctx, boardName)
	if err != nil {
		return nil, err
	}
	if board.Threads == nil {
		return nil, errors.ErrCorruptBoard
	}

	threads := slices.Clone(board.Threads)
	slices.SortStableFunc(threads, func(x, y domain.Thread) int {
		return y.BumpedOn.Compare(x.BumpedOn)
	})
	threads = truncate(threads, b.limits.ThreadsPerBoard)

	for i := range threads {
		threads[i].CountReplies()
		replies := slices.Clone(threads[i].Replies)
		slices.SortStableFunc(replies, func(x, y domain.Reply) int {
			return y.BumpedOn.Compare(x.BumpedOn)
		})
		threads[i].Replies = truncate(replies, b.limits.RepliesPerPreview)
	}
	return threads, nil
}

// GetReplies returns the whole thread with replies in posting order.
func (b *Board) GetReplies(ctx context.Context, boardName domain.BoardName, threadId domain.ThreadId) (*domain.Thread, error) {
	loc, err := b.GetThreadInBoard(ctx, boardName, threadId)
	if err != nil {
		return nil, err
	}
	thread := *loc.Thread
	if thread.Replies == nil {
		thread.Replies = []domain.Reply{}
	}
	thread.CountReplies()
	return &thread, nil
}

// non-positive limit means no limit
func truncate[T any](s []T, limit int) []T {
	if limit > 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}
