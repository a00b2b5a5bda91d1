package viewer

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Screen rows.
const (
	rowHeader = 0
	rowList   = 2
	rowClip   = 4
)

// ghostLabel marks the ghost position in the list row.
const ghostLabel = "⊘"

// segment is a run of text drawn in one style.
type segment struct {
	text  string
	style tcell.Style
	focus bool
}

// Draw renders the list, clipboard, status and help lines.
func (v *Viewer) Draw() {
	v.screen.Clear()
	width, height := v.screen.Size()

	index := "ghost"
	if i, ok := v.cursor.Index(); ok {
		index = fmt.Sprint(i)
	}
	v.drawText(0, rowHeader, width, fmt.Sprintf("dlist  len=%d  index=%s", v.list.Len(), index), v.styles.Normal)

	v.drawSegments(rowList, width, v.listSegments())
	v.drawText(0, rowClip, width, "clipboard: "+v.clip.String(), v.styles.Dim)

	if height > rowClip+2 {
		v.drawText(0, height-2, width, v.status, v.styles.Normal)
	}
	if height > rowClip+1 {
		v.drawText(0, height-1, width, Help, v.styles.Status)
	}
}

// listSegments lays out the elements followed by the ghost marker.
func (v *Viewer) listSegments() []segment {
	i, atNode := v.cursor.Index()

	segs := make([]segment, 0, 2*v.list.Len()+1)
	for j, item := range v.list.Indexed() {
		style := v.styles.Normal
		focus := atNode && j == i
		if focus {
			style = v.styles.Cursor
		}
		segs = append(segs,
			segment{text: item, style: style, focus: focus},
			segment{text: v.sep, style: v.styles.Dim},
		)
	}

	ghost := segment{text: ghostLabel, style: v.styles.Ghost}
	if !atNode {
		ghost.style = v.styles.GhostAtCursor
		ghost.focus = true
	}
	return append(segs, ghost)
}

// drawSegments draws segs on row y, scrolled so the focused segment is
// visible.
func (v *Viewer) drawSegments(y, width int, segs []segment) {
	offset, x := 0, 0
	for _, s := range segs {
		w := uniseg.StringWidth(s.text)
		if s.focus && x+w > width {
			offset = x + w - width
		}
		x += w
	}

	x = -offset
	for _, s := range segs {
		x = v.drawClipped(x, y, width, s.text, s.style)
		if x >= width {
			return
		}
	}
}

// drawText draws text from column x, clipped at width.
func (v *Viewer) drawText(x, y, width int, text string, style tcell.Style) {
	v.drawClipped(x, y, width, text, style)
}

// drawClipped draws text grapheme by grapheme starting at column x, which
// may be negative. It returns the column after the text.
func (v *Viewer) drawClipped(x, y, width int, text string, style tcell.Style) int {
	state := -1
	for len(text) > 0 {
		var cluster string
		var w int
		cluster, text, w, state = uniseg.FirstGraphemeClusterInString(text, state)
		if x+w > width {
			return width
		}
		if x >= 0 && w > 0 {
			runes := []rune(cluster)
			v.screen.SetContent(x, y, runes[0], runes[1:], style)
		}
		x += w
	}
	return x
}
