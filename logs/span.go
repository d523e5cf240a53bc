package logs

// Span identifies one host execution in logs and errors.
type Span string

type spanKey struct{}

var SpanKey spanKey
