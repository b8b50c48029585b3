package formatter

import (
	"fmt"
	"time"

	"github.com/desertthunder/fishify/internal/models"
)

// Clock formats d as h:mm:ss, or m:ss under an hour. Fractions of a second are dropped.
func Clock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	h, m, s := total/3600, (total/60)%60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// Credit renders "{name} — {artist}", or just the name when no artist applies.
func Credit(m models.Metadata) string {
	if artist := m.PrimaryArtist(); artist != "" {
		return m.Name() + " — " + artist
	}
	return m.Name()
}

// Byline renders "{verb} {name} by {artist}", dropping the artist when none applies.
func Byline(verb string, m models.Metadata) string {
	if artist := m.PrimaryArtist(); artist != "" {
		return fmt.Sprintf("%s %s by %s", verb, m.Name(), artist)
	}
	return fmt.Sprintf("%s %s", verb, m.Name())
}

// Numbered renders a queue position right-aligned to three columns.
func Numbered(index int, m models.Metadata) string {
	return fmt.Sprintf("%3d. %s", index, Credit(m))
}

// OnOff renders a flag the way status lines show it.
func OnOff(b bool) string {
	if b {
		return "On"
	}
	return "Off"
}
