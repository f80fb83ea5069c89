package api

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/itchan-dev/msgboard/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testThread() domain.Thread {
	now := time.Date(2024, 3, 1, 12, 0, 0, 123_000_000, time.UTC)
	th := domain.NewThread("t1", "op text", "secret", now)
	th.Reported = true
	r := domain.NewReply("r1", "reply text", "secret2", now.Add(time.Second))
	r.Reported = true
	th.AddReply(r)
	return th
}

func TestThreadPreviewHidesPrivateFields(t *testing.T) {
	raw, err := json.Marshal(NewBoardResponse([]domain.Thread{testThread()}))
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded, 1)

	thread := decoded[0]
	assert.NotContains(t, thread, "delete_password")
	assert.NotContains(t, thread, "reported")
	assert.Equal(t, "t1", thread["_id"])
	assert.Equal(t, float64(1), thread["replycount"])
	assert.Equal(t, "2024-03-01T12:00:00.123Z", thread["created_on"])

	replies := thread["replies"].([]any)
	require.Len(t, replies, 1)
	reply := replies[0].(map[string]any)
	assert.NotContains(t, reply, "delete_password")
	assert.NotContains(t, reply, "reported")
	assert.Contains(t, reply, "bumped_on")
}

func TestThreadResponseHidesReplyBump(t *testing.T) {
	raw, err := json.Marshal(NewThreadResponse(testThread()))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.NotContains(t, decoded, "delete_password")
	assert.NotContains(t, decoded, "reported")
	assert.Contains(t, decoded, "bumped_on")

	reply := decoded["replies"].([]any)[0].(map[string]any)
	assert.Equal(t, "reply text", reply["text"])
	assert.NotContains(t, reply, "bumped_on")
	assert.NotContains(t, reply, "delete_password")
	assert.NotContains(t, reply, "reported")
}

func TestEmptyRepliesSerializeAsArray(t *testing.T) {
	th := domain.NewThread("t", "x", "p", time.Now())
	raw, err := json.Marshal(NewThreadResponse(th))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"replies":[]`)
}

func TestReportThreadRequestId(t *testing.T) {
	assert.Equal(t, "a", ReportThreadRequest{ReportId: "a", ThreadId: "b"}.Id())
	assert.Equal(t, "b", ReportThreadRequest{ThreadId: "b"}.Id())
}

func TestTimeRoundTrip(t *testing.T) {
	orig := Time(time.Date(2024, 3, 1, 12, 0, 0, 5_000_000, time.UTC))
	raw, err := json.Marshal(orig)
	require.NoError(t, err)

	var back Time
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, time.Time(orig).Equal(time.Time(back)))
}
