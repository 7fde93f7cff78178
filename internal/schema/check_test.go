package schema

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestDefinition_Validate(t *testing.T) {
	def := MustDefine("posts", postsFields()...)

	tests := []struct {
		name       string
		record     map[string]any
		wantFields []string // offending fields in reported order
		wantErrs   []error  // sentinel per offending field
	}{
		{
			name: "valid record",
			record: map[string]any{
				"title": "Hello",
				"date":  "2024-01-01",
				"link":  "https://example.com/a",
			},
		},
		{
			name: "valid record with time value and extra keys",
			record: map[string]any{
				"title":       "Hello",
				"date":        time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC),
				"link":        "https://example.com/a",
				"description": "ignored",
			},
		},
		{
			name: "malformed link only",
			record: map[string]any{
				"title": "Hi",
				"date":  "2024-01-01",
				"link":  "not a url",
			},
			wantFields: []string{"link"},
			wantErrs:   []error{ErrMalformedURL},
		},
		{
			name: "empty title is missing",
			record: map[string]any{
				"title": "",
				"date":  "2024-01-01",
				"link":  "https://example.com/a",
			},
			wantFields: []string{"title"},
			wantErrs:   []error{ErrMissingField},
		},
		{
			name: "whitespace title is missing",
			record: map[string]any{
				"title": "   \t",
				"date":  "2024-01-01",
				"link":  "https://example.com/a",
			},
			wantFields: []string{"title"},
			wantErrs:   []error{ErrMissingField},
		},
		{
			name:       "empty record reports every field",
			record:     map[string]any{},
			wantFields: []string{"title", "date", "link"},
			wantErrs:   []error{ErrMissingField, ErrMissingField, ErrMissingField},
		},
		{
			name:       "nil record",
			record:     nil,
			wantFields: []string{"title", "date", "link"},
			wantErrs:   []error{ErrMissingField, ErrMissingField, ErrMissingField},
		},
		{
			name: "missing title does not hide other errors",
			record: map[string]any{
				"date": "yesterday",
				"link": "ftp//broken",
			},
			wantFields: []string{"title", "date", "link"},
			wantErrs:   []error{ErrMissingField, ErrUnparseableDate, ErrMalformedURL},
		},
		{
			name: "wrong types",
			record: map[string]any{
				"title": 42,
				"date":  true,
				"link":  []string{"https://example.com"},
			},
			wantFields: []string{"title", "date", "link"},
			wantErrs:   []error{ErrTypeMismatch, ErrTypeMismatch, ErrTypeMismatch},
		},
		{
			name: "nil values are missing",
			record: map[string]any{
				"title": nil,
				"date":  nil,
				"link":  nil,
			},
			wantFields: []string{"title", "date", "link"},
			wantErrs:   []error{ErrMissingField, ErrMissingField, ErrMissingField},
		},
		{
			name: "URL without host",
			record: map[string]any{
				"title": "Hi",
				"date":  "2024-01-01",
				"link":  "https://",
			},
			wantFields: []string{"link"},
			wantErrs:   []error{ErrMalformedURL},
		},
		{
			name: "URL with invalid host",
			record: map[string]any{
				"title": "Hi",
				"date":  "2024-01-01",
				"link":  "https://exa mple.com/",
			},
			wantFields: []string{"link"},
			wantErrs:   []error{ErrMalformedURL},
		},
		{
			name: "URL with space in path",
			record: map[string]any{
				"title": "Hi",
				"date":  "2024-01-01",
				"link":  "https://example.com/a b",
			},
			wantFields: []string{"link"},
			wantErrs:   []error{ErrMalformedURL},
		},
		{
			name: "URL with trailing newline",
			record: map[string]any{
				"title": "Hi",
				"date":  "2024-01-01",
				"link":  "https://example.com/a\n",
			},
			wantFields: []string{"link"},
			wantErrs:   []error{ErrMalformedURL},
		},
		{
			name: "relative URL",
			record: map[string]any{
				"title": "Hi",
				"date":  "2024-01-01",
				"link":  "/posts/hello",
			},
			wantFields: []string{"link"},
			wantErrs:   []error{ErrMalformedURL},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := def.Validate(tt.record)

			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if entry == nil {
					t.Fatal("expected entry, got nil")
				}
				return
			}

			if entry != nil {
				t.Errorf("expected nil entry on failure, got %+v", entry)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T: %v", err, err)
			}
			if verr.Collection != "posts" {
				t.Errorf("Collection = %q, want posts", verr.Collection)
			}
			if len(verr.Fields) != len(tt.wantFields) {
				t.Fatalf("got %d field errors (%v), want %d", len(verr.Fields), err, len(tt.wantFields))
			}
			for i, fe := range verr.Fields {
				if fe.Field != tt.wantFields[i] {
					t.Errorf("error[%d].Field = %q, want %q", i, fe.Field, tt.wantFields[i])
				}
				if !errors.Is(fe, tt.wantErrs[i]) {
					t.Errorf("error[%d] = %v, want %v", i, fe, tt.wantErrs[i])
				}
				if !errors.Is(err, tt.wantErrs[i]) {
					t.Errorf("aggregate should match %v", tt.wantErrs[i])
				}
			}
		})
	}
}

func TestDefinition_Validate_TypedValues(t *testing.T) {
	def := MustDefine("posts", postsFields()...)
	entry, err := def.Validate(map[string]any{
		"title": "Hello",
		"date":  "2024-03-05T10:15:00Z",
		"link":  "https://example.com/a?b=c",
		"extra": 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if entry.Collection() != "posts" {
		t.Errorf("Collection() = %q", entry.Collection())
	}
	if entry.String("title") != "Hello" {
		t.Errorf("title = %q", entry.String("title"))
	}
	want := time.Date(2024, 3, 5, 10, 15, 0, 0, time.UTC)
	if !entry.Time("date").Equal(want) {
		t.Errorf("date = %v, want %v", entry.Time("date"), want)
	}
	if entry.String("link") != "https://example.com/a?b=c" {
		t.Errorf("link = %q", entry.String("link"))
	}
	if _, ok := entry.Value("extra"); ok {
		t.Error("undeclared keys should not be carried into the entry")
	}
	if len(entry.Record()) != 3 {
		t.Errorf("Record() has %d keys, want 3", len(entry.Record()))
	}
}

func TestDefinition_Validate_DateLayouts(t *testing.T) {
	def := MustDefine("posts", Field{Name: "date", Constraint: DateConstraint{}})

	inputs := []string{
		"2024-01-01",
		"2024-01-01T08:00:00",
		"2024-01-01 08:00:00",
		"2024-01-01T08:00:00+02:00",
		"2024-01-01T08:00:00.123456789Z",
		"  2024-01-01  ",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			if _, err := def.Validate(map[string]any{"date": in}); err != nil {
				t.Errorf("Validate(%q) error: %v", in, err)
			}
		})
	}

	custom := MustDefine("posts", Field{Name: "date", Constraint: DateConstraint{Layouts: []string{"02 Jan 2006"}}})
	if _, err := custom.Validate(map[string]any{"date": "05 Mar 2024"}); err != nil {
		t.Errorf("custom layout should parse: %v", err)
	}
	_, err := custom.Validate(map[string]any{"date": "2024-03-05"})
	if !errors.Is(err, ErrUnparseableDate) {
		t.Errorf("custom layout should reject ISO date, got %v", err)
	}
}

func TestDefinition_Validate_Schemes(t *testing.T) {
	def := MustDefine("links", Field{Name: "link", Constraint: URLConstraint{Schemes: []string{"https"}}})

	if _, err := def.Validate(map[string]any{"link": "HTTPS://example.com"}); err != nil {
		t.Errorf("scheme comparison should be case-insensitive: %v", err)
	}

	_, err := def.Validate(map[string]any{"link": "http://example.com"})
	if !errors.Is(err, ErrMalformedURL) {
		t.Fatalf("expected ErrMalformedURL, got %v", err)
	}
	if !strings.Contains(err.Error(), `scheme "http" not allowed`) {
		t.Errorf("error should name the rejected scheme: %v", err)
	}

	open := MustDefine("links", Field{Name: "link", Constraint: URLConstraint{}})
	if _, err := open.Validate(map[string]any{"link": "mailto:editor@example.com"}); err != nil {
		t.Errorf("opaque URLs should be accepted: %v", err)
	}
}

func TestDefinition_Validate_Idempotent(t *testing.T) {
	def := MustDefine("posts", postsFields()...)
	record := map[string]any{"title": "", "date": "nope", "link": "https://example.com"}

	_, err1 := def.Validate(record)
	_, err2 := def.Validate(record)
	if err1 == nil || err2 == nil {
		t.Fatal("expected both calls to fail")
	}
	if err1.Error() != err2.Error() {
		t.Errorf("results differ:\n%v\n%v", err1, err2)
	}

	good := map[string]any{"title": "A", "date": "2024-01-01", "link": "https://example.com"}
	e1, _ := def.Validate(good)
	e2, _ := def.Validate(good)
	if !reflect.DeepEqual(e1.Record(), e2.Record()) {
		t.Error("entries differ between identical calls")
	}
	if len(record) != 3 || record["title"] != "" {
		t.Error("Validate must not mutate its input")
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Collection: "posts",
		Fields: []*FieldError{
			{Field: "title", Err: ErrMissingField},
			{Field: "link", Value: "not a url", Err: ErrMalformedURL, Detail: "missing scheme"},
		},
	}
	want := `posts: 2 invalid fields: field "title": missing required field; ` +
		`field "link": malformed URL: missing scheme (got "not a url")`
	if got := err.Error(); got != want {
		t.Errorf("Error() =\n%q\nwant\n%q", got, want)
	}

	single := &ValidationError{Collection: "posts", Fields: err.Fields[:1]}
	if !strings.Contains(single.Error(), "1 invalid field:") {
		t.Errorf("singular form expected: %q", single.Error())
	}

	if fe, ok := err.Field("link"); !ok || fe.Detail != "missing scheme" {
		t.Errorf("Field(link) = %v, %v", fe, ok)
	}
	if _, ok := err.Field("date"); ok {
		t.Error("Field(date) should not be found")
	}
}
