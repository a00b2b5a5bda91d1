package viewer

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/dlist/internal/config"
)

// Styles holds the styles the viewer draws with.
type Styles struct {
	Normal        tcell.Style
	Cursor        tcell.Style
	Ghost         tcell.Style
	GhostAtCursor tcell.Style
	Dim           tcell.Style
	Status        tcell.Style
}

// hexColor converts a "#rrggbb" string to a true colour.
func hexColor(s string) (tcell.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b)), nil
}

// contrast picks black or white text for a background colour.
func contrast(s string) tcell.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return tcell.ColorWhite
	}
	l, _, _ := c.Lab()
	if l > 0.6 {
		return tcell.ColorBlack
	}
	return tcell.ColorWhite
}

// NewStyles builds the viewer styles from configuration.
func NewStyles(cfg config.ViewerConfig) (Styles, error) {
	cursor, err := hexColor(cfg.CursorColor)
	if err != nil {
		return Styles{}, err
	}
	ghost, err := hexColor(cfg.GhostColor)
	if err != nil {
		return Styles{}, err
	}

	normal := tcell.StyleDefault
	return Styles{
		Normal:        normal,
		Cursor:        normal.Background(cursor).Foreground(contrast(cfg.CursorColor)).Bold(true),
		Ghost:         normal.Foreground(ghost),
		GhostAtCursor: normal.Background(ghost).Foreground(contrast(cfg.GhostColor)).Bold(true),
		Dim:           normal.Dim(true),
		Status:        normal.Reverse(true),
	}, nil
}
