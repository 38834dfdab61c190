package web

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"folio-cli/internal/palette"
	"folio-cli/internal/site"
	"folio-cli/internal/store"

	"github.com/starfederation/datastar-go/datastar"
	"go.uber.org/zap"
)

type sectionVM struct {
	ID    string
	Title string
	Body  template.HTML
}

type metricVM struct {
	Signal  string
	Label   string
	Initial string
}

type pageVM struct {
	Brand    string
	Tagline  string
	Hero     site.Hero
	Sections []sectionVM
	Metrics  []metricVM
	Events   []site.Event
	Projects []site.Project
	Actions  []palette.Action
	Contact  site.ContactCopy
	Signals  string
	Grid     site.GridConfig
	MaxTilt  float64
	Latency  string
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	c := s.contentSnapshot()
	signals, err := initialSignals(c)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	vm := pageVM{
		Brand:    c.Brand,
		Tagline:  c.Tagline,
		Hero:     c.Hero,
		Events:   site.Initial(c.Events),
		Projects: c.Projects,
		Actions:  c.Actions,
		Contact:  c.Contact,
		Signals:  signals,
		Grid:     site.DefaultGrid(),
		MaxTilt:  site.MaxTilt,
		Latency:  site.StatusLatency,
	}
	for _, sec := range c.Sections {
		vm.Sections = append(vm.Sections, sectionVM{ID: sec.ID, Title: sec.Title, Body: renderMarkdownHTML(sec.Body)})
	}
	for i, m := range c.Metrics {
		vm.Metrics = append(vm.Metrics, metricVM{Signal: metricSignal(i), Label: m.Label, Initial: m.ValueAt(0)})
	}
	s.writeHTMLTemplate(w, "index.html", vm)
}

// metricsFrame is the spacing between counter patches.
const metricsFrame = 40 * time.Millisecond

// handleMetricsStream patches the counter signals along the count-up curve
// and closes once every counter has reached its target.
func (s *Server) handleMetricsStream(w http.ResponseWriter, r *http.Request) {
	c := s.contentSnapshot()
	sse := datastar.NewSSE(w, r)

	for step := 0; ; step++ {
		elapsed := time.Duration(step) * metricsFrame
		if elapsed > site.CountDuration {
			elapsed = site.CountDuration
		}
		sig := make(map[string]any, len(c.Metrics))
		for i, m := range c.Metrics {
			sig[metricSignal(i)] = m.ValueAt(elapsed)
		}
		if err := sse.MarshalAndPatchSignals(sig); err != nil {
			return
		}
		if site.CountDone(elapsed) {
			return
		}
		if !s.cfg.wait(sse.Context(), metricsFrame) {
			return
		}
	}
}

func (s *Server) shuffledEvents(events []site.Event) []site.Event {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return site.Shuffle(events, s.rng)
}

func (s *Server) handleActivityShuffle(w http.ResponseWriter, r *http.Request) {
	c := s.contentSnapshot()
	events := s.shuffledEvents(c.Events)
	html, err := s.renderTemplate("activity_log", events)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	sse := datastar.NewSSE(w, r)
	_ = sse.MarshalAndPatchSignals(map[string]any{"spinning": true})
	_ = sse.PatchElements(html, datastar.WithSelector("#activity-log"), datastar.WithMode(datastar.ElementPatchModeOuter))
	if !s.cfg.wait(sse.Context(), site.SpinFor) {
		return
	}
	_ = sse.MarshalAndPatchSignals(map[string]any{"spinning": false})
}

type contactSignals struct {
	Email string `json:"email"`
}

type toastVM struct {
	ID    string
	Title string
	Body  string
}

// handleContact validates and stores a request, then drives the badge and
// toast timers over the same stream.
func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var sig contactSignals
	if err := datastar.ReadSignals(r, &sig); err != nil {
		http.Error(w, "invalid signals", http.StatusBadRequest)
		return
	}

	c := s.contentSnapshot()
	now := s.cfg.now()
	form := site.NewContact(c.Contact)
	email, ok, err := form.Submit(sig.Email, now)

	sse := datastar.NewSSE(w, r)
	if err != nil {
		_ = sse.MarshalAndPatchSignals(map[string]any{"contactError": err.Error()})
		return
	}
	if !ok {
		return
	}

	toastID := fmt.Sprintf("toast-%d", now.UnixNano())
	if s.cfg.Inbox != nil {
		req, err := s.cfg.Inbox.Add(r.Context(), email, store.SourceWeb, now)
		if err != nil {
			s.logger.Error("store contact request", zap.Error(err))
			_ = sse.MarshalAndPatchSignals(map[string]any{"contactError": "Could not save your request. Try again shortly."})
			return
		}
		toastID = "toast-" + req.ID
		s.logger.Info("contact request stored", zap.String("id", req.ID), zap.String("source", req.Source))
	}

	toasts := form.Toasts(now)
	toast := toastVM{ID: toastID}
	if len(toasts) > 0 {
		toast.Title = toasts[0].Title
		toast.Body = toasts[0].Body
	}
	html, err := s.renderTemplate("toast", toast)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	_ = sse.MarshalAndPatchSignals(map[string]any{
		"email":        "",
		"contactError": "",
		"status":       site.StatusEngaged,
		"submitted":    true,
	})
	_ = sse.PatchElements(html, datastar.WithSelector("#toasts"), datastar.WithMode(datastar.ElementPatchModeAppend))

	ctx := sse.Context()
	if !s.cfg.wait(ctx, site.EngagedFor) {
		return
	}
	_ = sse.MarshalAndPatchSignals(map[string]any{"status": site.StatusOnline, "submitted": false})

	if !s.cfg.wait(ctx, site.ToastVisibleFor-site.EngagedFor) {
		return
	}
	leaving := strings.Replace(html, `class="toast"`, `class="toast leaving"`, 1)
	_ = sse.PatchElements(leaving, datastar.WithSelector("#"+toastID), datastar.WithMode(datastar.ElementPatchModeOuter))

	if !s.cfg.wait(ctx, site.ToastFadeFor) {
		return
	}
	_ = sse.PatchElements("", datastar.WithSelector("#"+toastID), datastar.WithMode(datastar.ElementPatchModeRemove))
}
