package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/msgboard/shared/api"
	"github.com/itchan-dev/msgboard/shared/utils"
)

const (
	reportedText = "reported"
	successText  = "success"
)

func (h *Handler) CreateThread(w http.ResponseWriter, r *http.Request) {
	var body api.CreateThreadRequest
	if err := utils.DecodeRequest(r, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	board := chi.URLParam(r, "board")
	if body.Board != "" {
		board = body.Board
	}

	thread, err := h.board.AddThreadInBoard(r.Context(), body.Text, board, body.DeletePassword)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, api.NewThreadPreview(*thread))
}

func (h *Handler) GetThreads(w http.ResponseWriter, r *http.Request) {
	board := chi.URLParam(r, "board")

	threads, err := h.board.ListThreads(r.Context(), board)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, api.NewBoardResponse(threads))
}

func (h *Handler) ReportThread(w http.ResponseWriter, r *http.Request) {
	var body api.ReportThreadRequest
	if err := utils.DecodeRequest(r, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.board.ReportThread(r.Context(), chi.URLParam(r, "board"), body.Id()); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteText(w, reportedText)
}

func (h *Handler) DeleteThread(w http.ResponseWriter, r *http.Request) {
	var body api.DeleteThreadRequest
	if err := utils.DecodeRequest(r, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	err := h.board.DeleteThread(r.Context(), chi.URLParam(r, "board"), body.ThreadId, body.DeletePassword)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteText(w, successText)
}
