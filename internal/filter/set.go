package filter

// Set is an ordered selection over a fixed list of options.
// It is copy-on-write: the mutating helpers return a new Set and never
// touch the receiver's map, so State values can be copied freely.
type Set[K comparable] struct {
	options  []K
	selected map[K]bool
}

// NewSet builds a Set over options. Duplicate options are dropped.
func NewSet[K comparable](options []K, selectAll bool) Set[K] {
	s := Set[K]{
		options:  make([]K, 0, len(options)),
		selected: make(map[K]bool, len(options)),
	}
	for _, o := range options {
		if _, dup := s.selected[o]; dup {
			continue
		}
		s.options = append(s.options, o)
		s.selected[o] = selectAll
	}
	return s
}

// Options returns every option in display order.
func (s Set[K]) Options() []K {
	out := make([]K, len(s.options))
	copy(out, s.options)
	return out
}

// Selected returns the selected options in display order.
func (s Set[K]) Selected() []K {
	out := make([]K, 0, len(s.options))
	for _, o := range s.options {
		if s.selected[o] {
			out = append(out, o)
		}
	}
	return out
}

func (s Set[K]) IsSelected(k K) bool {
	return s.selected[k]
}

func (s Set[K]) Has(k K) bool {
	_, ok := s.selected[k]
	return ok
}

// Len is the number of options, selected or not.
func (s Set[K]) Len() int {
	return len(s.options)
}

// AllSelected reports whether every option is selected. An empty set is
// never fully selected.
func (s Set[K]) AllSelected() bool {
	if len(s.options) == 0 {
		return false
	}
	for _, o := range s.options {
		if !s.selected[o] {
			return false
		}
	}
	return true
}

func (s Set[K]) with(k K, on bool) Set[K] {
	if !s.Has(k) || s.selected[k] == on {
		return s
	}
	next := s.clone()
	next.selected[k] = on
	return next
}

func (s Set[K]) withAll(on bool) Set[K] {
	next := s.clone()
	for _, o := range next.options {
		next.selected[o] = on
	}
	return next
}

func (s Set[K]) withFunc(pick func(K) bool) Set[K] {
	next := s.clone()
	for _, o := range next.options {
		next.selected[o] = pick(o)
	}
	return next
}

func (s Set[K]) clone() Set[K] {
	next := Set[K]{
		options:  s.options,
		selected: make(map[K]bool, len(s.selected)),
	}
	for k, v := range s.selected {
		next.selected[k] = v
	}
	return next
}
