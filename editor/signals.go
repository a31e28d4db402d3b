package editor

import "uriopen/plugin"

type handlerEntry[F any] struct {
	id plugin.HandlerID
	fn F
}

// handlerList keeps connected callbacks in connection order.
type handlerList[F any] struct {
	entries []handlerEntry[F]
}

func (l *handlerList[F]) add(id plugin.HandlerID, fn F) {
	l.entries = append(l.entries, handlerEntry[F]{id: id, fn: fn})
}

// remove reports whether id was connected to this list.
func (l *handlerList[F]) remove(id plugin.HandlerID) bool {
	for i, h := range l.entries {
		if h.id == id {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

// fns returns a snapshot, so handlers may disconnect while being called.
func (l *handlerList[F]) fns() []F {
	out := make([]F, len(l.entries))
	for i, h := range l.entries {
		out[i] = h.fn
	}
	return out
}

func (l *handlerList[F]) len() int {
	return len(l.entries)
}
