package conversation

import (
	"fmt"
	"sync/atomic"
	"time"
)

// IDSequence hands out message IDs unique within a session. The owner
// resets it when the session is reset.
type IDSequence struct {
	n atomic.Uint64
}

// Next returns an ID combining the creation time with a monotonic counter.
func (s *IDSequence) Next(now time.Time) string {
	return fmt.Sprintf("msg_%d_%d", now.UnixMilli(), s.n.Add(1))
}

// Reset restarts the counter.
func (s *IDSequence) Reset() {
	s.n.Store(0)
}

// Factory builds messages with IDs from a shared sequence.
type Factory struct {
	ids *IDSequence
	now func() time.Time
}

// NewFactory creates a Factory. A nil now defaults to time.Now.
func NewFactory(ids *IDSequence, now func() time.Time) Factory {
	if now == nil {
		now = time.Now
	}
	return Factory{ids: ids, now: now}
}

func (f Factory) message(typ MessageType, sender Sender, content string) Message {
	ts := f.now()
	return Message{
		ID:        f.ids.Next(ts),
		Type:      typ,
		Sender:    sender,
		Content:   content,
		Timestamp: ts,
	}
}

// AIText builds a plain assistant bubble.
func (f Factory) AIText(content string) Message {
	return f.message(TypeText, SenderAI, content)
}

// UserText builds a plain user bubble.
func (f Factory) UserText(content string) Message {
	return f.message(TypeText, SenderUser, content)
}

func (f Factory) aiTexts(lines []string) []Message {
	out := make([]Message, 0, len(lines))
	for _, l := range lines {
		out = append(out, f.AIText(l))
	}
	return out
}
