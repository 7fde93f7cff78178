// Package schema declares the field constraints that entries of a content
// collection must satisfy and validates untyped front-matter records against
// them.
//
// A collection is declared once, at startup, from an ordered list of fields.
// Each field carries exactly one [Constraint], a closed set of variants:
//
//   - [StringConstraint]: a non-blank string
//   - [DateConstraint]: a time.Time or a string in one of a set of layouts
//   - [URLConstraint]: a string that parses as an absolute URL
//
// # Declaring a Collection
//
//	var posts = schema.MustDefine("posts",
//		schema.Field{Name: "title", Constraint: schema.StringConstraint{}},
//		schema.Field{Name: "date", Constraint: schema.DateConstraint{}},
//		schema.Field{Name: "link", Constraint: schema.URLConstraint{}},
//	)
//
// [Define] rejects malformed declarations (bad names, duplicate fields,
// element-free date layouts, invalid URL schemes) with [ErrInvalidSchema].
//
// # Validating Records
//
// [Definition.Validate] checks every field in declaration order and never
// stops at the first failure. All failures are returned together as a
// [*ValidationError] whose field errors unwrap to the sentinels
// [ErrMissingField], [ErrTypeMismatch], [ErrMalformedURL] and
// [ErrUnparseableDate]:
//
//	entry, err := posts.Validate(record)
//	if errors.Is(err, schema.ErrMalformedURL) {
//		// at least one URL field is malformed
//	}
//
// Definitions are immutable once built and safe for concurrent use.
package schema
