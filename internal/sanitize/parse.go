// Package sanitize implements the multi-phase text-repair pipeline that
// turns malformed LLM JSON output into something that parses. Each phase is
// a coarser-grained step than an individual rule in internal/rules; the
// pipeline attempts a strict parse after every phase and stops the moment
// one succeeds, so cheap, early phases absorb the common cases before the
// more invasive later ones run.
package sanitize

import (
	goccyjson "github.com/goccy/go-json"

	"github.com/dshills/jsonrepair/internal/jsonvalue"
)

// StrictParse is the host-provided strict JSON parser. It is a package
// variable, not a hardcoded call, so a caller embedding this library for a
// non-standard JSON dialect (or a faster/slower codec) can swap it out; the
// pipeline and the rest of the package never call a parser directly. The
// default implementation uses goccy/go-json for a fast reject of invalid
// input before paying for an order-preserving tree build.
var StrictParse = defaultStrictParse

func defaultStrictParse(data []byte) (*jsonvalue.Value, error) {
	var probe any
	if err := goccyjson.Unmarshal(data, &probe); err != nil {
		return nil, err
	}
	return jsonvalue.Decode(data)
}
