package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/msgboard/shared/domain"
	internal_errors "github.com/itchan-dev/msgboard/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockBoardService mocks service.BoardService.
type MockBoardService struct {
	AddThreadInBoardFunc func(text, board, password string) (*domain.Thread, error)
	ListThreadsFunc      func(board string) ([]domain.Thread, error)
	ReportThreadFunc     func(board, thread string) error
	DeleteThreadFunc     func(board, thread, password string) error
	AddReplyMessageFunc  func(text, board, thread, password string) (*domain.Reply, error)
	GetRepliesFunc       func(board, thread string) (*domain.Thread, error)
	ReportReplyFunc      func(board, thread, reply string) error
	DeleteReplyFunc      func(board, thread, reply, password string) error
}

func (m *MockBoardService) AddThreadInBoard(ctx context.Context, text, board, password string) (*domain.Thread, error) {
	if m.AddThreadInBoardFunc != nil {
		return m.AddThreadInBoardFunc(text, board, password)
	}
	th := domain.NewThread("t1", text, password, testTime)
	return &th, nil
}

func (m *MockBoardService) ListThreads(ctx context.Context, board string) ([]domain.Thread, error) {
	if m.ListThreadsFunc != nil {
		return m.ListThreadsFunc(board)
	}
	return []domain.Thread{}, nil
}

func (m *MockBoardService) ReportThread(ctx context.Context, board, thread string) error {
	if m.ReportThreadFunc != nil {
		return m.ReportThreadFunc(board, thread)
	}
	return nil
}

func (m *MockBoardService) DeleteThread(ctx context.Context, board, thread, password string) error {
	if m.DeleteThreadFunc != nil {
		return m.DeleteThreadFunc(board, thread, password)
	}
	return nil
}

func (m *MockBoardService) AddReplyMessage(ctx context.Context, text, board, thread, password string) (*domain.Reply, error) {
	if m.AddReplyMessageFunc != nil {
		return m.AddReplyMessageFunc(text, board, thread, password)
	}
	r := domain.NewReply("r1", text, password, testTime)
	return &r, nil
}

func (m *MockBoardService) GetReplies(ctx context.Context, board, thread string) (*domain.Thread, error) {
	if m.GetRepliesFunc != nil {
		return m.GetRepliesFunc(board, thread)
	}
	return nil, internal_errors.ErrNotFound
}

func (m *MockBoardService) ReportReply(ctx context.Context, board, thread, reply string) error {
	if m.ReportReplyFunc != nil {
		return m.ReportReplyFunc(board, thread, reply)
	}
	return nil
}

func (m *MockBoardService) DeleteReply(ctx context.Context, board, thread, reply, password string) error {
	if m.DeleteReplyFunc != nil {
		return m.DeleteReplyFunc(board, thread, reply, password)
	}
	return nil
}

var testTime = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

// newTestRouter mounts the board routes the way the real router does.
func newTestRouter(svc *MockBoardService) http.Handler {
	h := &Handler{board: svc}
	r := chi.NewRouter()
	r.Route("/api/threads/{board}", func(r chi.Router) {
		r.Post("/", h.CreateThread)
		r.Get("/", h.GetThreads)
		r.Put("/", h.ReportThread)
		r.Delete("/", h.DeleteThread)
	})
	r.Route("/api/replies/{board}", func(r chi.Router) {
		r.Post("/", h.CreateReply)
		r.Get("/", h.GetReplies)
		r.Put("/", h.ReportReply)
		r.Delete("/", h.DeleteReply)
	})
	return r
}

func doJSON(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestCreateThread(t *testing.T) {
	t.Run("board from path", func(t *testing.T) {
		var gotBoard, gotText, gotPassword string
		router := newTestRouter(&MockBoardService{AddThreadInBoardFunc: func(text, board, password string) (*domain.Thread, error) {
			gotText, gotBoard, gotPassword = text, board, password
			th := domain.NewThread("t1", text, password, testTime)
			return &th, nil
		}})

		rr := doJSON(t, router, http.MethodPost, "/api/threads/general", `{"text":"hello","delete_password":"pw"}`)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "general", gotBoard)
		assert.Equal(t, "hello", gotText)
		assert.Equal(t, "pw", gotPassword)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "t1", resp["_id"])
		assert.Equal(t, float64(0), resp["replycount"])
		assert.NotContains(t, resp, "delete_password")
		assert.NotContains(t, resp, "reported")
	})

	t.Run("board field overrides path", func(t *testing.T) {
		var gotBoard string
		router := newTestRouter(&MockBoardService{AddThreadInBoardFunc: func(text, board, password string) (*domain.Thread, error) {
			gotBoard = board
			th := domain.NewThread("t1", text, password, testTime)
			return &th, nil
		}})

		rr := doJSON(t, router, http.MethodPost, "/api/threads/general", `{"text":"hello","delete_password":"pw","board":"other"}`)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "other", gotBoard)
	})

	t.Run("form body", func(t *testing.T) {
		var gotText string
		router := newTestRouter(&MockBoardService{AddThreadInBoardFunc: func(text, board, password string) (*domain.Thread, error) {
			gotText = text
			th := domain.NewThread("t1", text, password, testTime)
			return &th, nil
		}})

		form := url.Values{"text": {"from a form"}, "delete_password": {"pw"}}
		req := httptest.NewRequest(http.MethodPost, "/api/threads/general", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "from a form", gotText)
	})

	t.Run("missing password", func(t *testing.T) {
		router := newTestRouter(&MockBoardService{AddThreadInBoardFunc: func(string, string, string) (*domain.Thread, error) {
			t.Fatal("service must not be called")
			return nil, nil
		}})

		rr := doJSON(t, router, http.MethodPost, "/api/threads/general", `{"text":"hello"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("invalid json", func(t *testing.T) {
		rr := doJSON(t, newTestRouter(&MockBoardService{}), http.MethodPost, "/api/threads/general", `{invalid`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("conflict", func(t *testing.T) {
		router := newTestRouter(&MockBoardService{AddThreadInBoardFunc: func(string, string, string) (*domain.Thread, error) {
			return nil, internal_errors.ErrConflict
		}})

		rr := doJSON(t, router, http.MethodPost, "/api/threads/general", `{"text":"hello","delete_password":"pw"}`)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestGetThreads(t *testing.T) {
	t.Run("projection", func(t *testing.T) {
		th := domain.NewThread("t1", "op", "secret", testTime)
		th.AddReply(domain.NewReply("r1", "reply", "secret", testTime.Add(time.Minute)))
		th.Reported = true
		router := newTestRouter(&MockBoardService{ListThreadsFunc: func(board string) ([]domain.Thread, error) {
			assert.Equal(t, "general", board)
			return []domain.Thread{th}, nil
		}})

		rr := doJSON(t, router, http.MethodGet, "/api/threads/general", "")

		require.Equal(t, http.StatusOK, rr.Code)
		assert.NotContains(t, rr.Body.String(), "delete_password")
		assert.NotContains(t, rr.Body.String(), "reported")
		assert.NotContains(t, rr.Body.String(), "secret")

		var resp []map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Equal(t, float64(1), resp[0]["replycount"])
		assert.Equal(t, "2024-05-01T10:01:00.000Z", resp[0]["bumped_on"])
	})

	t.Run("empty board is an empty array", func(t *testing.T) {
		rr := doJSON(t, newTestRouter(&MockBoardService{}), http.MethodGet, "/api/threads/general", "")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})

	t.Run("missing board", func(t *testing.T) {
		router := newTestRouter(&MockBoardService{ListThreadsFunc: func(string) ([]domain.Thread, error) {
			return nil, internal_errors.ErrNotFound
		}})

		rr := doJSON(t, router, http.MethodGet, "/api/threads/nowhere", "")

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("corrupt board", func(t *testing.T) {
		router := newTestRouter(&MockBoardService{ListThreadsFunc: func(string) ([]domain.Thread, error) {
			return nil, internal_errors.ErrCorruptBoard
		}})

		rr := doJSON(t, router, http.MethodGet, "/api/threads/broken", "")

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestReportThread(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		wantId string
	}{
		{name: "report_id", body: `{"report_id":"t1"}`, wantId: "t1"},
		{name: "thread_id", body: `{"thread_id":"t2"}`, wantId: "t2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotId string
			router := newTestRouter(&MockBoardService{ReportThreadFunc: func(board, thread string) error {
				gotId = thread
				return nil
			}})

			rr := doJSON(t, router, http.MethodPut, "/api/threads/general", tt.body)

			require.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "reported", rr.Body.String())
			assert.Equal(t, tt.wantId, gotId)
		})
	}

	t.Run("no id", func(t *testing.T) {
		rr := doJSON(t, newTestRouter(&MockBoardService{}), http.MethodPut, "/api/threads/general", `{}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestDeleteOutcomes(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{name: "success", wantCode: http.StatusOK, wantBody: "success"},
		{name: "incorrect password", err: internal_errors.ErrIncorrectPassword, wantCode: http.StatusOK, wantBody: "incorrect password"},
		{name: "not found", err: internal_errors.ErrNotFound, wantCode: http.StatusNotFound, wantBody: "not found\n"},
		{name: "store failure", err: errors.New("boom"), wantCode: http.StatusInternalServerError, wantBody: "internal server error\n"},
	}

	for _, tt := range tests {
		t.Run("thread "+tt.name, func(t *testing.T) {
			router := newTestRouter(&MockBoardService{DeleteThreadFunc: func(board, thread, password string) error {
				assert.Equal(t, "t1", thread)
				assert.Equal(t, "pw", password)
				return tt.err
			}})

			rr := doJSON(t, router, http.MethodDelete, "/api/threads/general", `{"thread_id":"t1","delete_password":"pw"}`)

			assert.Equal(t, tt.wantCode, rr.Code)
			assert.Equal(t, tt.wantBody, rr.Body.String())
		})

		t.Run("reply "+tt.name, func(t *testing.T) {
			router := newTestRouter(&MockBoardService{DeleteReplyFunc: func(board, thread, reply, password string) error {
				assert.Equal(t, "r1", reply)
				return tt.err
			}})

			rr := doJSON(t, router, http.MethodDelete, "/api/replies/general", `{"thread_id":"t1","reply_id":"r1","delete_password":"pw"}`)

			assert.Equal(t, tt.wantCode, rr.Code)
			assert.Equal(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestCreateReply(t *testing.T) {
	var gotThread string
	router := newTestRouter(&MockBoardService{AddReplyMessageFunc: func(text, board, thread, password string) (*domain.Reply, error) {
		gotThread = thread
		r := domain.NewReply("r1", text, password, testTime)
		return &r, nil
	}})

	rr := doJSON(t, router, http.MethodPost, "/api/replies/general", `{"thread_id":"t1","text":"hi","delete_password":"pw"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "t1", gotThread)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "hi", resp["text"])
	assert.NotContains(t, resp, "delete_password")

	rr = doJSON(t, router, http.MethodPost, "/api/replies/general", `{"text":"hi","delete_password":"pw"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetReplies(t *testing.T) {
	t.Run("full thread", func(t *testing.T) {
		th := domain.NewThread("t1", "op", "secret", testTime)
		for _, id := range []string{"r1", "r2", "r3", "r4"} {
			th.AddReply(domain.NewReply(id, "text "+id, "secret", testTime))
		}
		router := newTestRouter(&MockBoardService{GetRepliesFunc: func(board, thread string) (*domain.Thread, error) {
			assert.Equal(t, "t1", thread)
			return &th, nil
		}})

		rr := doJSON(t, router, http.MethodGet, "/api/replies/general?thread_id=t1", "")

		require.Equal(t, http.StatusOK, rr.Code)
		var resp struct {
			ReplyCount int              `json:"replycount"`
			Replies    []map[string]any `json:"replies"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, 4, resp.ReplyCount)
		require.Len(t, resp.Replies, 4)
		assert.Equal(t, "r1", resp.Replies[0]["_id"])
		assert.NotContains(t, rr.Body.String(), "secret")
	})

	t.Run("missing thread_id", func(t *testing.T) {
		rr := doJSON(t, newTestRouter(&MockBoardService{}), http.MethodGet, "/api/replies/general", "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("not found", func(t *testing.T) {
		rr := doJSON(t, newTestRouter(&MockBoardService{}), http.MethodGet, "/api/replies/general?thread_id=x", "")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestReportReply(t *testing.T) {
	var gotReply string
	router := newTestRouter(&MockBoardService{ReportReplyFunc: func(board, thread, reply string) error {
		gotReply = reply
		return nil
	}})

	rr := doJSON(t, router, http.MethodPut, "/api/replies/general", `{"thread_id":"t1","reply_id":"r1"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "reported", rr.Body.String())
	assert.Equal(t, "r1", gotReply)
}
