package api

import (
	"github.com/itchan-dev/msgboard/shared/domain"
)

// Request DTOs

type CreateReplyRequest struct {
	ThreadId       string `json:"thread_id" validate:"required"`
	Text           string `json:"text" validate:"required"`
	DeletePassword string `json:"delete_password" validate:"required"`
}

type ReportReplyRequest struct {
	ThreadId string `json:"thread_id" validate:"required"`
	ReplyId  string `json:"reply_id" validate:"required"`
}

type DeleteReplyRequest struct {
	ThreadId       string `json:"thread_id" validate:"required"`
	ReplyId        string `json:"reply_id" validate:"required"`
	DeletePassword string `json:"delete_password" validate:"required"`
}

// Response DTOs

// ThreadResponse is the single thread view with every reply in insertion order.
type ThreadResponse struct {
	Id         domain.ThreadId `json:"_id"`
	Text       domain.MsgText  `json:"text"`
	CreatedOn  Time            `json:"created_on"`
	BumpedOn   Time            `json:"bumped_on"`
	ReplyCount int             `json:"replycount"`
	Replies    []ReplyResponse `json:"replies"`
}

func NewThreadResponse(t domain.Thread) ThreadResponse {
	replies := make([]ReplyResponse, 0, len(t.Replies))
	for _, r := range t.Replies {
		replies = append(replies, NewReplyResponse(r))
	}
	return ThreadResponse{
		Id:         t.Id,
		Text:       t.Text,
		CreatedOn:  Time(t.CreatedOn),
		BumpedOn:   Time(t.BumpedOn),
		ReplyCount: t.ReplyCount,
		Replies:    replies,
	}
}

// ReplyPreviewResponse is a reply inside a board listing entry.
type ReplyPreviewResponse struct {
	Id        domain.ReplyId `json:"_id"`
	Text      domain.MsgText `json:"text"`
	CreatedOn Time           `json:"created_on"`
	BumpedOn  Time           `json:"bumped_on"`
}

func NewReplyPreview(r domain.Reply) ReplyPreviewResponse {
	return ReplyPreviewResponse{Id: r.Id, Text: r.Text, CreatedOn: Time(r.CreatedOn), BumpedOn: Time(r.BumpedOn)}
}

// ReplyResponse is a reply inside the single thread view, without bumped_on.
type ReplyResponse struct {
	Id        domain.ReplyId `json:"_id"`
	Text      domain.MsgText `json:"text"`
	CreatedOn Time           `json:"created_on"`
}

func NewReplyResponse(r domain.Reply) ReplyResponse {
	return ReplyResponse{Id: r.Id, Text: r.Text, CreatedOn: Time(r.CreatedOn)}
}
