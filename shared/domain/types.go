package domain

import "time"

type (
	BoardName = string
	BoardId   = string
	ThreadId  = string
	ReplyId   = string
	MsgText   = string
	Password  = string

	// Clock is the source of created_on/bumped_on values
	Clock func() time.Time
	// IdGenerator produces opaque identifiers for boards, threads and replies
	IdGenerator func() string
)
