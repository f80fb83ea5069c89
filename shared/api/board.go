package api

import (
	"github.com/itchan-dev/msgboard/shared/domain"
)

// Request DTOs

type CreateThreadRequest struct {
	Text           string `json:"text" validate:"required"`
	DeletePassword string `json:"delete_password" validate:"required"`
	// overrides the board from the path when set
	Board string `json:"board,omitempty"`
}

type ReportThreadRequest struct {
	ReportId string `json:"report_id,omitempty"`
	ThreadId string `json:"thread_id,omitempty" validate:"required_without=ReportId"`
}

// Id prefers report_id, the field older clients send.
func (r ReportThreadRequest) Id() domain.ThreadId {
	if r.ReportId != "" {
		return r.ReportId
	}
	return r.ThreadId
}

type DeleteThreadRequest struct {
	ThreadId       string `json:"thread_id" validate:"required"`
	DeletePassword string `json:"delete_password" validate:"required"`
}

// Response DTOs

// ThreadPreviewResponse is a board listing entry. It never carries
// delete_password or reported.
type ThreadPreviewResponse struct {
	Id         domain.ThreadId        `json:"_id"`
	Text       domain.MsgText         `json:"text"`
	CreatedOn  Time                   `json:"created_on"`
	BumpedOn   Time                   `json:"bumped_on"`
	ReplyCount int                    `json:"replycount"`
	Replies    []ReplyPreviewResponse `json:"replies"`
}

func NewThreadPreview(t domain.Thread) ThreadPreviewResponse {
	replies := make([]ReplyPreviewResponse, 0, len(t.Replies))
	for _, r := range t.Replies {
		replies = append(replies, NewReplyPreview(r))
	}
	return ThreadPreviewResponse{
		Id:         t.Id,
		Text:       t.Text,
		CreatedOn:  Time(t.CreatedOn),
		BumpedOn:   Time(t.BumpedOn),
		ReplyCount: t.ReplyCount,
		Replies:    replies,
	}
}

func NewBoardResponse(threads []domain.Thread) []ThreadPreviewResponse {
	resp := make([]ThreadPreviewResponse, 0, len(threads))
	for _, t := range threads {
		resp = append(resp, NewThreadPreview(t))
	}
	return resp
}
