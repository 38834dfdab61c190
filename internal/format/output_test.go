package format

import (
	"bytes"
	"strings"
	"testing"
)

type sample struct {
	Name  string   `json:"name"`
	Tags  []string `json:"tags,omitempty"`
	Count int      `json:"count"`
}

func TestWrite(t *testing.T) {
	t.Parallel()

	v := map[string]any{"data": sample{Name: "folio", Count: 2}}
	cases := []struct {
		format string
		pretty bool
		want   string
	}{
		{format: "", want: "{\"data\":{\"name\":\"folio\",\"count\":2}}\n"},
		{format: "json", pretty: true, want: "{\n  \"data\": {\n    \"name\": \"folio\",\n    \"count\": 2\n  }\n}\n"},
		{format: "yaml", want: "data:\n  count: 2\n  name: folio\n"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.format, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := Write(&buf, v, tc.format, tc.pretty); err != nil {
				t.Fatalf("Write: %v", err)
			}
			if got := buf.String(); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	t.Parallel()

	err := Write(&bytes.Buffer{}, 1, "edn", false)
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Fatalf("err=%v", err)
	}
}
