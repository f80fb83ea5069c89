package domain

import (
	"fmt"
	"time"
)

// for debug
func (r *Reply) String() string {
	return fmt.Sprintf("[id:%s, text:%s, reported:%t, created:%s, bumped:%s]", r.Id, r.Text, r.Reported, r.CreatedOn.Format(time.StampMilli), r.BumpedOn.Format(time.StampMilli))
}

func (t *Thread) String() string {
	s := fmt.Sprintf("[id:%s, text:%s, reported:%t, bumped:%s, replies:[", t.Id, t.Text, t.Reported, t.BumpedOn.Format(time.StampMilli))
	for i := range t.Replies {
		if i > 0 {
			s += ", "
		}
		s += t.Replies[i].String()
	}
	return s + "]]"
}
