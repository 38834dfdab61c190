package palette

// Session is the mutable state of one open-to-close lifecycle. It is a plain
// value; transitions take a Session and return the next one.
type Session struct {
	Filter  string
	Visible []Action
	Active  int
	Open    bool

	// Seq counts open transitions. Deferred work captures it so it can tell
	// whether the session it was scheduled for is still the current one.
	Seq uint64
}

// Open shows the palette with a fresh session. Opening an already open
// session is a no-op.
func Open(s Session, actions []Action) (Session, []Effect) {
	if s.Open {
		return s, nil
	}
	next := Session{
		Filter:  "",
		Visible: Filter(actions, ""),
		Active:  0,
		Open:    true,
		Seq:     s.Seq + 1,
	}
	return next, []Effect{{Kind: EffectShow}}
}

// Close hides the palette and hands focus back to the trigger.
func Close(s Session) (Session, []Effect) {
	if !s.Open {
		return s, nil
	}
	s.Open = false
	return s, []Effect{{Kind: EffectHide}, {Kind: EffectFocusTrigger}}
}

// Toggle is the global shortcut: it opens a closed palette and closes an open one.
func Toggle(s Session, actions []Action) (Session, []Effect) {
	if s.Open {
		return Close(s)
	}
	return Open(s, actions)
}

// SetFilter recomputes the visible actions for f and resets the active row.
func SetFilter(s Session, actions []Action, f string) Session {
	if !s.Open {
		return s
	}
	s.Filter = f
	s.Visible = Filter(actions, f)
	s.Active = 0
	return s
}

// MoveDown highlights the next row, stopping at the last one.
func MoveDown(s Session) Session {
	if !s.Open || len(s.Visible) == 0 {
		return s
	}
	s.Active = clamp(s.Active+1, len(s.Visible))
	return s
}

// MoveUp highlights the previous row, stopping at the first one.
func MoveUp(s Session) Session {
	if !s.Open || len(s.Visible) == 0 {
		return s
	}
	s.Active = clamp(s.Active-1, len(s.Visible))
	return s
}

// Hover highlights row i. Indices outside the visible list are ignored.
func Hover(s Session, i int) Session {
	if !s.Open || i < 0 || i >= len(s.Visible) {
		return s
	}
	s.Active = i
	return s
}

// Confirm executes the highlighted action and closes the palette. With no
// visible actions it does nothing and the palette stays open.
func Confirm(s Session) (Session, []Effect) {
	if !s.Open || len(s.Visible) == 0 {
		return s, nil
	}
	a := s.Visible[clamp(s.Active, len(s.Visible))]
	next, effects := Close(s)
	return next, append(effects, Execute(a))
}

// Select is a click on row i: it highlights the row and confirms it.
func Select(s Session, i int) (Session, []Effect) {
	if !s.Open || i < 0 || i >= len(s.Visible) {
		return s, nil
	}
	s.Active = i
	return Confirm(s)
}

// ActiveAction returns the highlighted action, if any.
func (s Session) ActiveAction() (Action, bool) {
	if len(s.Visible) == 0 {
		return Action{}, false
	}
	return s.Visible[clamp(s.Active, len(s.Visible))], true
}

func clamp(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}
