package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/msgboard/shared/api"
	"github.com/itchan-dev/msgboard/shared/errors"
	"github.com/itchan-dev/msgboard/shared/utils"
)

func (h *Handler) CreateReply(w http.ResponseWriter, r *http.Request) {
	var body api.CreateReplyRequest
	if err := utils.DecodeRequest(r, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	reply, err := h.board.AddReplyMessage(r.Context(), body.Text, chi.URLParam(r, "board"), body.ThreadId, body.DeletePassword)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, api.NewReplyPreview(*reply))
}

func (h *Handler) GetReplies(w http.ResponseWriter, r *http.Request) {
	threadId := r.URL.Query().Get("thread_id")
	if threadId == "" {
		utils.WriteErrorAndStatusCode(w, &errors.ErrorWithStatusCode{Message: "thread_id is required", StatusCode: http.StatusBadRequest})
		return
	}

	thread, err := h.board.GetReplies(r.Context(), chi.URLParam(r, "board"), threadId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, api.NewThreadResponse(*thread))
}

func (h *Handler) ReportReply(w http.ResponseWriter, r *http.Request) {
	var body api.ReportReplyRequest
	if err := utils.DecodeRequest(r, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.board.ReportReply(r.Context(), chi.URLParam(r, "board"), body.ThreadId, body.ReplyId); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteText(w, reportedText)
}

func (h *Handler) DeleteReply(w http.ResponseWriter, r *http.Request) {
	var body api.DeleteReplyRequest
	if err := utils.DecodeRequest(r, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	err := h.board.DeleteReply(r.Context(), chi.URLParam(r, "board"), body.ThreadId, body.ReplyId, body.DeletePassword)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteText(w, successText)
}
