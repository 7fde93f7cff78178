package schema

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/cockroachdb/errors"
)

// check dispatches a single field value to its constraint. It returns the
// typed value on success.
func check(f Field, raw any, present bool) (any, *FieldError) {
	if !present || raw == nil {
		return nil, &FieldError{Field: f.Name, Err: ErrMissingField}
	}

	switch c := f.Constraint.(type) {
	case StringConstraint:
		return checkString(f.Name, raw)
	case DateConstraint:
		return checkDate(f.Name, c, raw)
	case URLConstraint:
		return checkURL(f.Name, c, raw)
	default:
		// Unreachable for definitions built by Define.
		return nil, &FieldError{
			Field:  f.Name,
			Value:  raw,
			Err:    ErrTypeMismatch,
			Detail: fmt.Sprintf("unsupported constraint %T", f.Constraint),
		}
	}
}

func checkString(name string, raw any) (any, *FieldError) {
	s, ok := raw.(string)
	if !ok {
		return nil, mismatch(name, "string", raw)
	}
	if strings.TrimSpace(s) == "" {
		return nil, &FieldError{Field: name, Err: ErrMissingField}
	}
	return s, nil
}

func checkDate(name string, c DateConstraint, raw any) (any, *FieldError) {
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case *time.Time:
		if v == nil {
			return nil, &FieldError{Field: name, Err: ErrMissingField}
		}
		return *v, nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil, &FieldError{Field: name, Err: ErrMissingField}
		}
		for _, layout := range c.layouts() {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		return nil, &FieldError{
			Field:  name,
			Value:  v,
			Err:    ErrUnparseableDate,
			Detail: "expected one of " + strings.Join(c.layouts(), ", "),
		}
	default:
		return nil, mismatch(name, "date", raw)
	}
}

func checkURL(name string, c URLConstraint, raw any) (any, *FieldError) {
	s, ok := raw.(string)
	if !ok {
		return nil, mismatch(name, "URL string", raw)
	}
	if strings.TrimSpace(s) == "" {
		return nil, &FieldError{Field: name, Err: ErrMissingField}
	}

	malformed := func(detail string) *FieldError {
		return &FieldError{Field: name, Value: s, Err: ErrMalformedURL, Detail: detail}
	}

	u, err := url.Parse(s)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) {
			return nil, malformed(uerr.Err.Error())
		}
		return nil, malformed(err.Error())
	}
	if !u.IsAbs() {
		return nil, malformed("missing scheme")
	}
	if u.Host == "" && u.Opaque == "" {
		return nil, malformed("missing host")
	}
	if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return nil, malformed("contains whitespace")
	}
	if !c.allows(u.Scheme) {
		return nil, malformed(fmt.Sprintf("scheme %q not allowed (allowed: %s)", u.Scheme, strings.Join(c.Schemes, ", ")))
	}
	return s, nil
}

func mismatch(name, want string, raw any) *FieldError {
	return &FieldError{
		Field:  name,
		Value:  raw,
		Err:    ErrTypeMismatch,
		Detail: fmt.Sprintf("expected %s, got %T", want, raw),
	}
}
