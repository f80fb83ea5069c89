package service

import (
	"context"

	"github.com/itchan-dev/msgboard/shared/domain"
	"github.com/itchan-dev/msgboard/shared/errors"
	"github.com/itchan-dev/msgboard/shared/logger"
)

// AddReplyMessage appends a reply and bumps the thread. No password is
// required to reply.
func (b *Board) AddReplyMessage(ctx context.Context, text domain.MsgText, boardName domain.BoardName, threadId domain.ThreadId, password domain.Password) (*domain.Reply, error) {
	reply, err := b.NewReply(text, password)
	if err != nil {
		return nil, err
	}
	loc, err := b.GetThreadInBoard(ctx, boardName, threadId)
	if err != nil {
		return nil, err
	}
	loc.Thread.AddReply(reply)
	if err := b.save(ctx, loc.Board); err != nil {
		return nil, err
	}
	logger.Log.Debug("reply added", "board", boardName, "thread", loc.Thread)
	return &reply, nil
}

func (b *Board) GetReplyInThread(ctx context.Context, boardName domain.BoardName, threadId domain.ThreadId, replyId domain.ReplyId) (*ReplyInThread, error) {
	loc, err := b.GetThreadInBoard(ctx, boardName, threadId)
	if err != nil {
		return nil, err
	}
	reply := loc.Thread.Reply(replyId)
	if reply == nil {
		return nil, errors.ErrNotFound
	}
	return &ReplyInThread{ThreadInBoard: *loc, Reply: reply}, nil
}

func (b *Board) ReportReply(ctx context.Context, boardName domain.BoardName, threadId domain.ThreadId, replyId domain.ReplyId) error {
	loc, err := b.GetReplyInThread(ctx, boardName, threadId, replyId)
	if err != nil {
		return err
	}
	loc.Reply.Report(b.now())
	return b.save(ctx, loc.Board)
}

// DeleteReply replaces the reply text with the deleted marker and keeps the
// record, so reply counts do not change.
func (b *Board) DeleteReply(ctx context.Context, boardName domain.BoardName, threadId domain.ThreadId, replyId domain.ReplyId, password domain.Password) error {
	loc, err := b.GetReplyInThread(ctx, boardName, threadId, replyId)
	if err != nil {
		return err
	}
	if !b.passwords.Matches(loc.Reply.DeletePassword, password) {
		return errors.ErrIncorrectPassword
	}
	loc.Reply.SoftDelete(b.limits.DeletedReplyText)
	if err := b.save(ctx, loc.Board); err != nil {
		return err
	}
	logger.Log.Info("reply deleted", "board", boardName, "thread", threadId, "reply", replyId)
	return nil
}
