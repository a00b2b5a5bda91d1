// Package viewer is an interactive terminal explorer for a list and its
// cursor.
//
// The viewer owns the list's only cursor. Split operations move elements
// into a clipboard list; paste operations splice the clipboard back in at
// the cursor. The ghost position is drawn after the last element, since
// it sits between the back and the front.
package viewer

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/dlist/internal/config"
	"github.com/dshills/dlist/internal/dlist"
	"github.com/dshills/dlist/internal/logging"
)

// Help is the key summary shown on the last line.
const Help = "←/→ move  i/a insert  x remove  s/S split  p/P paste  c check  q quit"

// Viewer drives a list through a cursor from keyboard input.
type Viewer struct {
	screen tcell.Screen
	styles Styles
	sep    string
	logger *logging.Logger

	list   *dlist.List[string]
	cursor *dlist.Cursor[string]
	clip   *dlist.List[string]

	status   string
	inserted int
}

// New creates a viewer for list on an initialised screen.
func New(screen tcell.Screen, list *dlist.List[string], cfg config.ViewerConfig, logger *logging.Logger) (*Viewer, error) {
	styles, err := NewStyles(cfg)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Viewer{
		screen: screen,
		styles: styles,
		sep:    cfg.Separator,
		logger: logger.WithComponent("viewer"),
		list:   list,
		cursor: list.CursorMut(),
		clip:   dlist.New[string](),
	}, nil
}

// List returns the list being edited.
func (v *Viewer) List() *dlist.List[string] {
	return v.list
}

// Clipboard returns the list holding split-off elements.
func (v *Viewer) Clipboard() *dlist.List[string] {
	return v.clip
}

// Cursor returns the viewer's cursor.
func (v *Viewer) Cursor() *dlist.Cursor[string] {
	return v.cursor
}

// Status returns the last status message.
func (v *Viewer) Status() string {
	return v.status
}

// Run draws and handles events until the user quits or the screen is
// finalised.
func (v *Viewer) Run() error {
	for {
		v.Draw()
		v.screen.Show()

		switch ev := v.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			if !v.HandleKey(ev) {
				return nil
			}
		}
	}
}

// HandleKey applies one key press. It returns false when the viewer
// should exit.
func (v *Viewer) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRight:
		v.cursor.MoveNext()
		v.status = ""
		return true
	case tcell.KeyLeft:
		v.cursor.MovePrev()
		v.status = ""
		return true
	case tcell.KeyDelete:
		v.remove()
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	switch ev.Rune() {
	case 'q':
		return false
	case 'l':
		v.cursor.MoveNext()
		v.status = ""
	case 'h':
		v.cursor.MovePrev()
		v.status = ""
	case 'i':
		item := v.nextItem()
		v.cursor.InsertBefore(item)
		v.setStatus("inserted %s before", item)
	case 'a':
		item := v.nextItem()
		v.cursor.InsertAfter(item)
		v.setStatus("inserted %s after", item)
	case 'x':
		v.remove()
	case 's':
		out := v.cursor.SplitBefore()
		n := out.Len()
		v.clip.Append(out)
		v.setStatus("split %d before into clipboard", n)
	case 'S':
		out := v.cursor.SplitAfter()
		n := out.Len()
		v.clip.Append(out)
		v.setStatus("split %d after into clipboard", n)
	case 'p':
		n := v.clip.Len()
		v.cursor.SpliceBefore(v.clip)
		v.setStatus("pasted %d before", n)
	case 'P':
		n := v.clip.Len()
		v.cursor.SpliceAfter(v.clip)
		v.setStatus("pasted %d after", n)
	case 'c':
		if err := v.list.Validate(); err != nil {
			v.logger.Error("%v", err)
			v.setStatus("%v", err)
		} else {
			v.setStatus("ok: %d elements, links consistent", v.list.Len())
		}
	}
	return true
}

func (v *Viewer) remove() {
	if item, ok := v.cursor.RemoveCurrent(); ok {
		v.setStatus("removed %s", item)
		return
	}
	v.setStatus("nothing to remove at the ghost")
}

func (v *Viewer) nextItem() string {
	v.inserted++
	return fmt.Sprintf("new%d", v.inserted)
}

func (v *Viewer) setStatus(format string, args ...any) {
	v.status = fmt.Sprintf(format, args...)
	v.logger.Debug("%s", v.status)
}
