package models

import (
	"errors"
	"testing"

	"github.com/desertthunder/fishify/internal/shared"
)

func TestContentKind(t *testing.T) {
	t.Run("keywords round trip", func(t *testing.T) {
		for _, kind := range Kinds {
			got, err := ParseKind(kind.String())
			if err != nil {
				t.Fatalf("ParseKind(%q) failed: %v", kind.String(), err)
			}
			if got != kind {
				t.Errorf("ParseKind(%q) = %v, want %v", kind.String(), got, kind)
			}
		}
	})

	t.Run("ParseKind is case sensitive", func(t *testing.T) {
		if _, err := ParseKind("Album"); !errors.Is(err, shared.ErrUnknownKind) {
			t.Errorf("expected ErrUnknownKind, got %v", err)
		}
	})

	t.Run("ParseKindFold ignores case", func(t *testing.T) {
		got, err := ParseKindFold(" EpIsOdE ")
		if err != nil || got != Episode {
			t.Errorf("ParseKindFold() = %v, %v", got, err)
		}
	})

	t.Run("titles", func(t *testing.T) {
		want := []string{"Track", "Album", "Playlist", "Artist", "Show", "Episode"}
		for i, kind := range Kinds {
			if kind.Title() != want[i] {
				t.Errorf("expected %s, got %s", want[i], kind.Title())
			}
		}
	})

	t.Run("playable kinds", func(t *testing.T) {
		for _, kind := range Kinds {
			want := kind == Track || kind == Episode
			if kind.Playable() != want {
				t.Errorf("%v.Playable() = %v", kind, kind.Playable())
			}
		}
	})

	t.Run("unspecified is invalid", func(t *testing.T) {
		if KindUnspecified.Valid() {
			t.Error("expected unspecified kind to be invalid")
		}
		defer func() {
			if recover() == nil {
				t.Error("expected panic")
			}
		}()
		KindUnspecified.Playable()
	})
}

func TestParseRepeatState(t *testing.T) {
	tc := []struct {
		in   string
		want RepeatState
	}{
		{"on", RepeatContext},
		{"TRUE", RepeatContext},
		{"context", RepeatContext},
		{"Track", RepeatTrack},
		{"off", RepeatOff},
		{"false", RepeatOff},
	}

	for _, tt := range tc {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRepeatState(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseRepeatState(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	if _, err := ParseRepeatState("sometimes"); !errors.Is(err, shared.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
	if RepeatContext.APIValue() != "context" || RepeatOff.APIValue() != "off" {
		t.Error("unexpected api values")
	}
}
