package models

import (
	"fmt"
	"strings"

	"github.com/desertthunder/fishify/internal/shared"
)

const (
	uriScheme = "spotify"
	webHost   = "open.spotify.com"
)

// Identifier is a typed reference to one piece of content on the remote service.
type Identifier struct {
	kind ContentKind
	id   string
}

// NewIdentifier builds an identifier from a valid kind and a non-empty id.
func NewIdentifier(kind ContentKind, id string) (Identifier, error) {
	if !kind.Valid() {
		return Identifier{}, fmt.Errorf("%w: %d", shared.ErrUnknownKind, int(kind))
	}
	if id == "" {
		return Identifier{}, fmt.Errorf("%w: empty id", shared.ErrMalformedReference)
	}
	return Identifier{kind: kind, id: id}, nil
}

// MustIdentifier is [NewIdentifier] for values known to be valid. It panics otherwise.
func MustIdentifier(kind ContentKind, id string) Identifier {
	ident, err := NewIdentifier(kind, id)
	if err != nil {
		panic(err)
	}
	return ident
}

func (i Identifier) Kind() ContentKind { return i.kind }
func (i Identifier) ID() string        { return i.id }

// IsZero reports whether i was never constructed.
func (i Identifier) IsZero() bool { return i.kind == KindUnspecified }

// URI renders the canonical "spotify:{kind}:{id}" form.
func (i Identifier) URI() string {
	return uriScheme + ":" + i.kind.String() + ":" + i.id
}

func (i Identifier) String() string { return i.URI() }

// ParseURI parses "scheme:kind:id". Input with fewer than two colons is malformed and
// everything after the second colon is the id.
func ParseURI(text string) (Identifier, error) {
	parts := strings.SplitN(text, ":", 3)
	if len(parts) < 3 {
		return Identifier{}, fmt.Errorf("%w: %q", shared.ErrMalformedReference, text)
	}

	kind, err := ParseKind(parts[1])
	if err != nil {
		return Identifier{}, err
	}

	if parts[2] == "" {
		return Identifier{}, fmt.Errorf("%w: missing id in %q", shared.ErrMalformedReference, text)
	}
	return Identifier{kind: kind, id: parts[2]}, nil
}

// ParseURL converts "https://open.spotify.com/{kind}/{id}[?query]" to its URI string.
// The kind keyword is not validated here.
func ParseURL(text string) (string, error) {
	if i := strings.IndexByte(text, '?'); i >= 0 {
		text = text[:i]
	}

	segments := strings.Split(text, "/")
	n := len(segments)
	if n < 3 || segments[n-3] != webHost || segments[n-1] == "" || segments[n-2] == "" {
		return "", fmt.Errorf("%w: invalid url %q", shared.ErrMalformedReference, text)
	}
	return uriScheme + ":" + segments[n-2] + ":" + segments[n-1], nil
}

// IdentifierFromURL parses a web URL into an [Identifier].
func IdentifierFromURL(text string) (Identifier, error) {
	uri, err := ParseURL(text)
	if err != nil {
		return Identifier{}, err
	}
	return ParseURI(uri)
}

// LooksLikeURI reports whether text is written in the canonical URI form.
func LooksLikeURI(text string) bool {
	return strings.HasPrefix(text, uriScheme+":")
}
