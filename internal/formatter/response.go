// package formatter builds the line-oriented responses returned by every playback operation
package formatter

import (
	"encoding/json"
	"strings"
)

// QuoteMarker prefixes each line of a verbose response.
const QuoteMarker = "> "

// Response is the ordered lines an operation produced plus how they should be displayed.
// A Response is immutable: build it with [Listing] or [Ack].
type Response struct {
	lines   []string
	verbose bool
}

// Listing builds a verbose response, rendered with quote markers.
func Listing(lines ...string) Response {
	return Response{lines: append([]string{}, lines...), verbose: true}
}

// Ack builds a terse acknowledgement, rendered as plain joined lines.
func Ack(lines ...string) Response {
	return Response{lines: append([]string{}, lines...)}
}

// Lines returns a copy of the response lines.
func (r Response) Lines() []string {
	return append([]string{}, r.lines...)
}

func (r Response) Verbose() bool { return r.verbose }
func (r Response) Empty() bool   { return len(r.lines) == 0 }

// Text joins the lines with newlines.
func (r Response) Text() string {
	return strings.Join(r.lines, "\n")
}

// Quoted prefixes every line with [QuoteMarker].
func (r Response) Quoted() string {
	var b strings.Builder
	for i, line := range r.lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(QuoteMarker)
		b.WriteString(line)
	}
	return b.String()
}

// Render picks [Response.Quoted] or [Response.Text] from the verbosity hint.
func (r Response) Render() string {
	if r.verbose {
		return r.Quoted()
	}
	return r.Text()
}

type responseJSON struct {
	Lines   []string `json:"lines"`
	Verbose bool     `json:"verbose"`
}

// MarshalJSON encodes the response as {"lines": [...], "verbose": bool}.
func (r Response) MarshalJSON() ([]byte, error) {
	lines := r.lines
	if lines == nil {
		lines = []string{}
	}
	return json.Marshal(responseJSON{Lines: lines, Verbose: r.verbose})
}
