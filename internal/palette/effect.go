package palette

import "fmt"

// EffectKind identifies an outbound request from the palette to its host.
type EffectKind int

const (
	// EffectShow asks the host to show the modal surface.
	EffectShow EffectKind = iota + 1
	// EffectHide asks the host to hide the modal surface.
	EffectHide
	// EffectFocusInput moves focus to the filter input.
	EffectFocusInput
	// EffectFocusTrigger moves focus back to the control that opened the palette.
	EffectFocusTrigger
	// EffectNavigate moves the current page to the in-page anchor in Target.
	EffectNavigate
	// EffectOpenExternal opens Target in a new, unrelated browsing context
	// with no reference back to the opener.
	EffectOpenExternal
)

func (k EffectKind) String() string {
	switch k {
	case EffectShow:
		return "show"
	case EffectHide:
		return "hide"
	case EffectFocusInput:
		return "focus-input"
	case EffectFocusTrigger:
		return "focus-trigger"
	case EffectNavigate:
		return "navigate"
	case EffectOpenExternal:
		return "open-external"
	default:
		return fmt.Sprintf("effect(%d)", int(k))
	}
}

// Effect is one outbound request. Target is set for navigation effects only.
type Effect struct {
	Kind   EffectKind
	Target string
}

func (e Effect) String() string {
	if e.Target == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + " " + e.Target
}
