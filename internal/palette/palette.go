package palette

// Key is a normalized input the palette reacts to. Hosts translate their
// native key events into Keys; anything else is not the palette's business.
type Key int

const (
	KeyNone Key = iota
	// KeyShortcut is the global modifier+letter combination (ctrl+k).
	KeyShortcut
	KeyDown
	KeyUp
	KeyEnter
	KeyEscape
)

// Palette owns the static action list and the single session. It is not
// safe for concurrent use; every call happens on the UI goroutine.
type Palette struct {
	actions []Action
	session Session
	sched   Scheduler
}

// New returns a closed palette over a copy of actions. A nil scheduler gets a
// private QueueScheduler, which means input focus is never requested.
func New(actions []Action, sched Scheduler) *Palette {
	if sched == nil {
		sched = &QueueScheduler{}
	}
	cp := make([]Action, len(actions))
	copy(cp, actions)
	return &Palette{actions: cp, sched: sched}
}

// Actions returns a copy of the static action list.
func (p *Palette) Actions() []Action {
	cp := make([]Action, len(p.actions))
	copy(cp, p.actions)
	return cp
}

func (p *Palette) Session() Session { return p.session }
func (p *Palette) IsOpen() bool     { return p.session.Open }
func (p *Palette) Rows() []Row      { return Rows(p.session) }

// Activate is the trigger control. It only opens; an open palette ignores it.
func (p *Palette) Activate() []Effect {
	if p.session.Open {
		return nil
	}
	return p.open()
}

// HandleKey applies a key from the global key stream.
func (p *Palette) HandleKey(k Key) []Effect {
	if k == KeyShortcut {
		if p.session.Open {
			return p.close()
		}
		return p.open()
	}
	if !p.session.Open {
		return nil
	}
	switch k {
	case KeyDown:
		p.session = MoveDown(p.session)
	case KeyUp:
		p.session = MoveUp(p.session)
	case KeyEnter:
		var effects []Effect
		p.session, effects = Confirm(p.session)
		return effects
	case KeyEscape:
		return p.close()
	}
	return nil
}

// Input replaces the filter text.
func (p *Palette) Input(f string) {
	if !p.session.Open || f == p.session.Filter {
		return
	}
	p.session = SetFilter(p.session, p.actions, f)
}

// Hover highlights the row under the pointer.
func (p *Palette) Hover(i int) {
	p.session = Hover(p.session, i)
}

// Click executes row i.
func (p *Palette) Click(i int) []Effect {
	var effects []Effect
	p.session, effects = Select(p.session, i)
	return effects
}

// Backdrop is a click outside the dialog surface.
func (p *Palette) Backdrop() []Effect {
	return p.close()
}

func (p *Palette) open() []Effect {
	var effects []Effect
	p.session, effects = Open(p.session, p.actions)
	seq := p.session.Seq
	p.sched.Schedule(func() []Effect {
		if !p.session.Open || p.session.Seq != seq {
			return nil
		}
		return []Effect{{Kind: EffectFocusInput}}
	})
	return effects
}

func (p *Palette) close() []Effect {
	var effects []Effect
	p.session, effects = Close(p.session)
	return effects
}
