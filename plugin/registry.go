package plugin

// registry tracks the handlers the plugin connected, per object, so they
// can be disconnected on detach.
type registry struct {
	window []HandlerID
	views  map[View][]HandlerID
	order  []View
}

func newRegistry() *registry {
	return &registry{views: make(map[View][]HandlerID)}
}

func (r *registry) addView(v View, id HandlerID) {
	if _, ok := r.views[v]; !ok {
		r.order = append(r.order, v)
	}
	r.views[v] = append(r.views[v], id)
}

func (r *registry) hasView(v View) bool {
	_, ok := r.views[v]
	return ok
}

// takeView removes and returns the handlers recorded for v.
func (r *registry) takeView(v View) []HandlerID {
	ids, ok := r.views[v]
	if !ok {
		return nil
	}
	delete(r.views, v)
	for i, o := range r.order {
		if o == v {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return ids
}

func (r *registry) viewCount() int {
	return len(r.views)
}

func (r *registry) reset() {
	r.window = nil
	r.views = make(map[View][]HandlerID)
	r.order = nil
}
