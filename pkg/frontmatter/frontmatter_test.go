package frontmatter

import (
	"errors"
	"strings"
	"testing"
	"time"
)

type postMeta struct {
	Title string `yaml:"title"`
	Link  string `yaml:"link"`
}

func TestMustParse(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantTitle string
		wantBody  string
		wantErr   error
	}{
		{
			name:      "valid frontmatter",
			input:     "---\ntitle: Hello\nlink: https://example.com\n---\n\nBody here.\n",
			wantTitle: "Hello",
			wantBody:  "\nBody here.\n",
		},
		{
			name:     "empty frontmatter",
			input:    "---\n---\nBody\n",
			wantBody: "Body\n",
		},
		{
			name:      "no trailing newline after closing delimiter",
			input:     "---\ntitle: Minimal\n---",
			wantTitle: "Minimal",
			wantBody:  "",
		},
		{
			name:      "CRLF line endings",
			input:     "---\r\ntitle: Windows\r\n---\r\n\r\nBody.\r\n",
			wantTitle: "Windows",
			wantBody:  "\r\nBody.\r\n",
		},
		{
			name:      "delimiter-like text in body",
			input:     "---\ntitle: T\n---\nintro\n---\nmore\n",
			wantTitle: "T",
			wantBody:  "intro\n---\nmore\n",
		},
		{
			name:    "no frontmatter",
			input:   "# Just markdown\n",
			wantErr: ErrMissingFrontmatter,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: ErrMissingFrontmatter,
		},
		{
			name:    "partial delimiter",
			input:   "--\ntitle: x\n--\n",
			wantErr: ErrMissingFrontmatter,
		},
		{
			name:    "unclosed",
			input:   "---\ntitle: unclosed\n",
			wantErr: ErrUnclosedFrontmatter,
		},
		{
			name:    "invalid YAML",
			input:   "---\ntitle: [broken\n  still broken\n---\n",
			wantErr: ErrInvalidYAML,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var meta postMeta
			body, err := MustParse(strings.NewReader(tt.input), &meta)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if meta.Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", meta.Title, tt.wantTitle)
			}
			if string(body) != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestParse_Optional(t *testing.T) {
	input := "# No frontmatter\n\ntext\n"
	var meta postMeta
	body, err := Parse(strings.NewReader(input), &meta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != input {
		t.Errorf("body = %q, want full content", body)
	}
	if meta.Title != "" {
		t.Errorf("meta should be untouched, got %+v", meta)
	}

	var unclosed postMeta
	if _, err := Parse(strings.NewReader("---\ntitle: x\n"), &unclosed); !errors.Is(err, ErrUnclosedFrontmatter) {
		t.Errorf("Parse should still reject unclosed frontmatter, got %v", err)
	}
}

func TestMustParse_IntoRecord(t *testing.T) {
	input := "---\ntitle: \"Hi\"\ndate: 2024-01-01\nupdated: \"2024-02-03\"\nlink: https://example.com/a\ncount: 3\n---\n"
	var record map[string]any
	if _, err := MustParse(strings.NewReader(input), &record); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record["title"] != "Hi" {
		t.Errorf("title = %#v", record["title"])
	}
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if got, ok := record["date"].(time.Time); !ok || !got.Equal(want) {
		t.Errorf("date = %#v, want time.Time %v", record["date"], want)
	}
	if record["updated"] != "2024-02-03" {
		t.Errorf("updated = %#v, want quoted date kept as string", record["updated"])
	}
	if record["count"] != 3 {
		t.Errorf("count = %#v, want int 3", record["count"])
	}
}

func TestFormat(t *testing.T) {
	matter := struct {
		Title string    `yaml:"title"`
		Date  time.Time `yaml:"date"`
	}{
		Title: "Hello: World",
		Date:  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	out, err := Format(matter, "Body without newline")
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	s := string(out)
	if !strings.HasPrefix(s, "---\n") {
		t.Errorf("missing opening delimiter: %q", s)
	}
	if !strings.Contains(s, "\n---\n\nBody without newline\n") {
		t.Errorf("unexpected layout: %q", s)
	}

	var back map[string]any
	body, err := MustParse(strings.NewReader(s), &back)
	if err != nil {
		t.Fatalf("re-parse error: %v", err)
	}
	if back["title"] != "Hello: World" {
		t.Errorf("title round-trip = %#v", back["title"])
	}
	if string(body) != "\nBody without newline\n" {
		t.Errorf("body round-trip = %q", body)
	}
}

func TestFormat_EmptyBody(t *testing.T) {
	out, err := Format(map[string]string{"title": "x"}, "")
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	if string(out) != "---\ntitle: x\n---\n" {
		t.Errorf("Format() = %q", out)
	}
}

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantTitle string
		wantErr   error
	}{
		{
			name:      "stops at closing delimiter",
			input:     "---\ntitle: Hello\n---\nnot: [yaml\n",
			wantTitle: "Hello",
		},
		{
			name:  "no header",
			input: "just a body\n",
		},
		{
			name:    "unclosed header",
			input:   "---\ntitle: Hello\n",
			wantErr: ErrUnclosedFrontmatter,
		},
		{
			name:    "bad yaml",
			input:   "---\ntitle: [oops\n---\n",
			wantErr: ErrInvalidYAML,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var meta postMeta
			err := ParseHeader(strings.NewReader(tt.input), &meta)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseHeader() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHeader() unexpected error: %v", err)
			}
			if meta.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", meta.Title, tt.wantTitle)
			}
		})
	}
}
