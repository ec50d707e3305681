package activity

import (
	"slices"
	"time"

	"github.com/gdamore/tcell/v2"
)

// Theme holds the colors and animation frames used to present activity.
type Theme struct {
	Text       tcell.Color
	Background tcell.Color

	TextFrames      []string
	RecordingFrames []string
	UploadingFrames []string

	TextDuration      time.Duration
	RecordingDuration time.Duration
	UploadingDuration time.Duration
}

// DefaultTheme returns the built-in activity theme.
func DefaultTheme() Theme {
	return Theme{
		Text:              tcell.ColorCadetBlue,
		Background:        tcell.ColorBlack,
		TextFrames:        []string{"   ", ".  ", ".. ", "..."},
		RecordingFrames:   []string{"●", " "},
		UploadingFrames:   []string{"▱▱▱", "▰▱▱", "▰▰▱", "▰▰▰"},
		TextDuration:      700 * time.Millisecond,
		RecordingDuration: 700 * time.Millisecond,
		UploadingDuration: 1750 * time.Millisecond,
	}
}

// Frames returns the keyframes and full cycle duration for an animation.
// AnimationNone has no frames.
func (t Theme) Frames(a Animation) ([]string, time.Duration) {
	switch a {
	case AnimationRecording:
		return t.RecordingFrames, t.RecordingDuration
	case AnimationUploading:
		return t.UploadingFrames, t.UploadingDuration
	case AnimationText:
		return t.TextFrames, t.TextDuration
	default:
		return nil, 0
	}
}

// Equal reports whether two themes present identically.
func (t Theme) Equal(o Theme) bool {
	return t.Text == o.Text &&
		t.Background == o.Background &&
		t.TextDuration == o.TextDuration &&
		t.RecordingDuration == o.RecordingDuration &&
		t.UploadingDuration == o.UploadingDuration &&
		slices.Equal(t.TextFrames, o.TextFrames) &&
		slices.Equal(t.RecordingFrames, o.RecordingFrames) &&
		slices.Equal(t.UploadingFrames, o.UploadingFrames)
}
