package domain

import "time"

type Reply struct {
	Id             ReplyId   `bson:"_id" json:"_id"`
	Text           MsgText   `bson:"text" json:"text"`
	DeletePassword Password  `bson:"delete_password" json:"delete_password"`
	Reported       bool      `bson:"reported" json:"reported"`
	CreatedOn      time.Time `bson:"created_on" json:"created_on"`
	BumpedOn       time.Time `bson:"bumped_on" json:"bumped_on"`
}

func NewReply(id ReplyId, text MsgText, password Password, now time.Time) Reply {
	return Reply{
		Id:             id,
		Text:           text,
		DeletePassword: password,
		CreatedOn:      now,
		BumpedOn:       now,
	}
}

func (r *Reply) Report(now time.Time) {
	r.Reported = true
	r.BumpedOn = now
}

// SoftDelete keeps the record and replaces its text with marker.
func (r *Reply) SoftDelete(marker MsgText) {
	r.Text = marker
}
