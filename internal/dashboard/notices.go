package dashboard

import "sync"

// Notice is one dismissible message for the operator, the toast analog.
type Notice struct {
	Level string // "success" | "error"
	Text  string
}

// Notices is the in-memory notice queue. Single operator, so one queue for
// the whole process; each render drains everything accumulated since the
// last one.
type Notices struct {
	mu    sync.Mutex
	items []Notice
}

// Success queues a success notice.
func (n *Notices) Success(text string) { n.add("success", text) }

// Error queues an error notice.
func (n *Notices) Error(text string) { n.add("error", text) }

func (n *Notices) add(level, text string) {
	n.mu.Lock()
	n.items = append(n.items, Notice{Level: level, Text: text})
	n.mu.Unlock()
}

// Drain returns and clears all queued notices.
func (n *Notices) Drain() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	items := n.items
	n.items = nil
	return items
}
