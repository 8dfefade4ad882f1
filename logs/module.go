package logs

import "github.com/reusee/dscope"

type Module struct {
	dscope.Module
}

// Span identifies one unit of work, usually a script execution.
type Span string

type spanKey struct{}

var SpanKey spanKey
