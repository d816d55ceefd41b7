package notification

import "context"

// Flags holds the per-id state the user has applied to notifications.
type Flags struct {
	Read      map[string]bool
	Dismissed map[string]bool
}

// NewFlags returns empty Flags.
func NewFlags() Flags {
	return Flags{Read: make(map[string]bool), Dismissed: make(map[string]bool)}
}

// StateStore keeps read and dismissed flags between projections.
type StateStore interface {
	MarkRead(ctx context.Context, ids ...string) error
	Dismiss(ctx context.Context, id string) error
	Flags(ctx context.Context) (Flags, error)
}

// Apply drops dismissed notifications and marks read ones. Order is kept.
func Apply(list []Notification, flags Flags) []Notification {
	out := make([]Notification, 0, len(list))
	for _, n := range list {
		if flags.Dismissed[n.ID] {
			continue
		}
		n.Read = flags.Read[n.ID]
		out = append(out, n)
	}
	return out
}

// UnreadCount counts notifications not yet read.
func UnreadCount(list []Notification) int {
	n := 0
	for _, item := range list {
		if !item.Read {
			n++
		}
	}
	return n
}

// IDs returns the ids of list in order.
func IDs(list []Notification) []string {
	ids := make([]string, len(list))
	for i, n := range list {
		ids[i] = n.ID
	}
	return ids
}
