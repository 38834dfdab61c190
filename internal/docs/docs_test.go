package docs

import (
	"strings"
	"testing"
)

func TestTopics_SortedWithSummaries(t *testing.T) {
	t.Parallel()

	topics := Topics()
	if len(topics) == 0 {
		t.Fatalf("expected embedded topics")
	}
	for i, tp := range topics {
		if tp.Summary == "" {
			t.Fatalf("topic %q has no summary", tp.Name)
		}
		if i > 0 && topics[i-1].Name >= tp.Name {
			t.Fatalf("topics not sorted: %q before %q", topics[i-1].Name, tp.Name)
		}
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		topic string
		ok    bool
	}{
		{topic: "palette", ok: true},
		{topic: " Palette ", ok: true},
		{topic: "missing"},
		{topic: ""},
		{topic: "../docs"},
	}
	for _, tc := range tests {
		body, ok := Get(tc.topic)
		if ok != tc.ok {
			t.Fatalf("Get(%q) ok=%v, want %v", tc.topic, ok, tc.ok)
		}
		if ok && !strings.Contains(body, "ctrl+k") {
			t.Fatalf("Get(%q): unexpected body", tc.topic)
		}
	}
}
