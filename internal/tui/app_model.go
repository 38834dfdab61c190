package tui

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"folio-cli/internal/palette"
	"folio-cli/internal/site"
	"folio-cli/internal/store"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

const (
	headerHeight = 2
	footerHeight = 1
)

type appModel struct {
	ctx    context.Context
	logger *zap.Logger
	inbox  *store.Inbox
	keys   keyMap
	clock  func() time.Time

	width  int
	height int

	content        site.Content
	pendingContent *site.Content
	reloads        <-chan contentMsg

	pal   *palette.Palette
	sched *palette.QueueScheduler
	input textinput.Model
	// paletteStart is the first row index shown in the palette list. It only
	// moves when the highlight leaves the visible window.
	paletteStart int

	page     viewport.Model
	layout   pageLayout
	focus    focusArea
	location string

	grid       site.GridConfig
	gridOffset float64
	frame      int
	startedAt  time.Time
	now        time.Time

	events    []site.Event
	spinUntil time.Time
	rng       *rand.Rand

	contact    *site.Contact
	email      textinput.Model
	contactErr string

	hoverCard    int
	tiltX, tiltY float64

	minibufferText string
	minibufferSeq  int
}

func newAppModel(ctx context.Context, opts Options) appModel {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := opts.clock
	if clock == nil {
		clock = time.Now
	}
	seed := opts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = "Type a command or search…"
	in.CharLimit = 120

	email := textinput.New()
	email.Prompt = ""
	email.Placeholder = placeholderFor(opts.Content.Contact)
	email.CharLimit = 254

	start := clock()
	sched := &palette.QueueScheduler{}
	m := appModel{
		ctx:       ctx,
		logger:    logger,
		inbox:     opts.Inbox,
		keys:      defaultKeyMap(),
		clock:     clock,
		content:   opts.Content,
		pal:       palette.New(opts.Content.Actions, sched),
		sched:     sched,
		input:     in,
		page:      viewport.New(0, 0),
		grid:      site.DefaultGrid(),
		startedAt: start,
		now:       start,
		events:    site.Initial(opts.Content.Events),
		rng:       rand.New(rand.NewSource(seed)),
		contact:   site.NewContact(opts.Content.Contact),
		email:     email,
		hoverCard: -1,
	}
	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(frameTick(), waitForContent(m.reloads))
}

func (m *appModel) resize() {
	m.page.Width = m.width
	h := m.height - headerHeight - footerHeight
	if h < 1 {
		h = 1
	}
	m.page.Height = h
	m.input.Width = paletteInnerWidth(m.width) - 4
	m.rebuildPage()
}

// setContent swaps in reloaded content. The palette is rebuilt over the new
// actions, so this only happens while it is closed.
func (m *appModel) setContent(c site.Content) {
	m.content = c
	m.pal = palette.New(c.Actions, m.sched)
	m.events = site.Initial(c.Events)
	m.contact = site.NewContact(c.Contact)
	m.email.Placeholder = placeholderFor(c.Contact)
	m.hoverCard = -1
	m.rebuildPage()
	m.logger.Info("content reloaded",
		zap.Int("sections", len(c.Sections)),
		zap.Int("actions", len(c.Actions)))
}

func (m *appModel) showMinibuffer(text string) tea.Cmd {
	m.minibufferText = text
	m.minibufferSeq++
	seq := m.minibufferSeq
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg { return minibufferDoneMsg{seq: seq} })
}

func placeholderFor(c site.ContactCopy) string {
	if strings.TrimSpace(c.Prompt) != "" {
		return c.Prompt
	}
	return "you@company.com"
}
