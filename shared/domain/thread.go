package domain

import "time"

type Thread struct {
	Id             ThreadId  `bson:"_id" json:"_id"`
	Text           MsgText   `bson:"text" json:"text"`
	DeletePassword Password  `bson:"delete_password" json:"delete_password"`
	Reported       bool      `bson:"reported" json:"reported"`
	CreatedOn      time.Time `bson:"created_on" json:"created_on"`
	BumpedOn       time.Time `bson:"bumped_on" json:"bumped_on"`
	Replies        []Reply   `bson:"replies" json:"replies"`

	// derived from len(Replies) on read, never stored
	ReplyCount int `bson:"-" json:"-"`
}

func NewThread(id ThreadId, text MsgText, password Password, now time.Time) Thread {
	return Thread{
		Id:             id,
		Text:           text,
		DeletePassword: password,
		CreatedOn:      now,
		BumpedOn:       now,
		Replies:        []Reply{},
	}
}

func (t *Thread) Reply(id ReplyId) *Reply {
	for i := range t.Replies {
		if t.Replies[i].Id == id {
			return &t.Replies[i]
		}
	}
	return nil
}

// AddReply appends r and bumps the thread to the reply's creation time.
func (t *Thread) AddReply(r Reply) {
	t.Replies = append(t.Replies, r)
	t.BumpedOn = r.CreatedOn
	t.CountReplies()
}

func (t *Thread) Report(now time.Time) {
	t.Reported = true
	t.BumpedOn = now
}

func (t *Thread) CountReplies() {
	t.ReplyCount = len(t.Replies)
}
