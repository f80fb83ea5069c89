package domain

import "slices"

// Board is the unit of persistence: the whole thread/reply subtree is embedded
// and saved at once.
type Board struct {
	Id      BoardId   `bson:"_id" json:"_id"`
	Name    BoardName `bson:"name" json:"name"`
	Threads []Thread  `bson:"threads" json:"threads"`
	// compare-and-swap token, incremented by every successful save
	Version int64 `bson:"version" json:"version"`
}

// NewBoard returns a board with an initialized, empty thread collection.
func NewBoard(id BoardId, name BoardName) *Board {
	return &Board{Id: id, Name: name, Threads: []Thread{}}
}

// Thread returns a pointer into b.Threads or nil. The pointer is valid until
// the collection is modified.
func (b *Board) Thread(id ThreadId) *Thread {
	for i := range b.Threads {
		if b.Threads[i].Id == id {
			return &b.Threads[i]
		}
	}
	return nil
}

func (b *Board) AddThread(t Thread) {
	b.Threads = append(b.Threads, t)
}

// RemoveThread reports whether a thread with the id was present.
func (b *Board) RemoveThread(id ThreadId) bool {
	for i := range b.Threads {
		if b.Threads[i].Id == id {
			b.Threads = append(b.Threads[:i], b.Threads[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns a deep copy. A nil thread collection stays nil.
func (b *Board) Clone() *Board {
	c := *b
	c.Threads = slices.Clone(b.Threads)
	for i := range c.Threads {
		c.Threads[i].Replies = slices.Clone(c.Threads[i].Replies)
	}
	return &c
}
