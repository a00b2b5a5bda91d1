package viewer

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/dlist/internal/config"
	"github.com/dshills/dlist/internal/dlist"
)

func newTestViewer(t *testing.T, width int, items ...string) (*Viewer, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(width, 10)

	v, err := New(screen, dlist.From(items...), config.Default().Viewer, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return v, screen
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func press(t *testing.T, v *Viewer, keys string) {
	t.Helper()
	for _, r := range keys {
		if !v.HandleKey(runeKey(r)) {
			t.Fatalf("key %q quit the viewer", r)
		}
	}
}

func rowText(screen tcell.Screen, y int) string {
	width, _ := screen.Size()
	var b strings.Builder
	for x := 0; x < width; x++ {
		r, comb, _, _ := screen.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
		b.WriteRune(r)
		for _, c := range comb {
			b.WriteRune(c)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

func wantList(t *testing.T, l *dlist.List[string], want string) {
	t.Helper()
	if err := l.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if got := l.String(); got != want {
		t.Errorf("list = %s, want %s", got, want)
	}
}

func TestDraw(t *testing.T) {
	v, screen := newTestViewer(t, uniseg.StringWidth(Help)+10, "a", "b", "c")
	v.Draw()

	if got, want := rowText(screen, rowHeader), "dlist  len=3  index=ghost"; got != want {
		t.Errorf("header = %q, want %q", got, want)
	}
	if got, want := rowText(screen, rowList), "a <-> b <-> c <-> "+ghostLabel; got != want {
		t.Errorf("list row = %q, want %q", got, want)
	}
	if got, want := rowText(screen, rowClip), "clipboard: []"; got != want {
		t.Errorf("clipboard row = %q, want %q", got, want)
	}
	if got := rowText(screen, 9); got != Help {
		t.Errorf("help row = %q, want %q", got, Help)
	}
}

func TestDrawClipsAtScreenEdge(t *testing.T) {
	const width = 20
	v, screen := newTestViewer(t, width, "alpha", "beta", "gamma")
	v.Draw()

	rows := []struct {
		y    int
		full string
	}{
		{rowHeader, "dlist  len=3  index=ghost"},
		{rowClip, "clipboard: []"},
		{9, Help},
	}
	for _, r := range rows {
		got := rowText(screen, r.y)
		if uniseg.StringWidth(got) > width {
			t.Errorf("row %d is %d columns wide, screen is %d", r.y, uniseg.StringWidth(got), width)
		}
		if !strings.HasPrefix(r.full, got) {
			t.Errorf("row %d = %q, want a prefix of %q", r.y, got, r.full)
		}
	}
	if got, want := rowText(screen, 9), "←/→ move  i/a insert"; got != want {
		t.Errorf("help row = %q, want %q", got, want)
	}

	// The list row scrolls so the ghost stays visible.
	if got := rowText(screen, rowList); !strings.HasSuffix(got, ghostLabel) {
		t.Errorf("list row = %q, want it to end with the ghost", got)
	}
}

func TestDrawHighlightsCursor(t *testing.T) {
	v, screen := newTestViewer(t, 60, "a", "b")
	cursorColor, err := hexColor(config.Default().Viewer.CursorColor)
	if err != nil {
		t.Fatal(err)
	}
	ghostColor, err := hexColor(config.Default().Viewer.GhostColor)
	if err != nil {
		t.Fatal(err)
	}

	bg := func(x int) tcell.Color {
		_, _, style, _ := screen.GetContent(x, rowList) //nolint:staticcheck // GetContent is the correct API
		_, b, _ := style.Decompose()
		return b
	}
	ghostX := len("a <-> b <-> ")

	v.Draw()
	if got := bg(ghostX); got != ghostColor {
		t.Errorf("ghost background = %v, want %v", got, ghostColor)
	}

	v.HandleKey(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	v.Draw()
	if got := bg(0); got != cursorColor {
		t.Errorf("cursor background = %v, want %v", got, cursorColor)
	}
	if got := bg(ghostX); got == ghostColor {
		t.Error("ghost still highlighted after moving onto a node")
	}
	if got, want := rowText(screen, rowHeader), "dlist  len=2  index=0"; got != want {
		t.Errorf("header = %q, want %q", got, want)
	}
}

func TestDrawScrollsToCursor(t *testing.T) {
	items := make([]string, 10)
	for i := range items {
		items[i] = "item" + string(rune('0'+i))
	}
	v, screen := newTestViewer(t, 12, items...)

	v.HandleKey(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	v.Draw()

	if got := rowText(screen, rowList); !strings.HasSuffix(got, "item9") {
		t.Errorf("list row = %q, want it to end with the cursor item", got)
	}
}

func TestInsertRemove(t *testing.T) {
	v, _ := newTestViewer(t, 60, "1", "2", "3")

	press(t, v, "la")
	wantList(t, v.List(), "[1 new1 2 3]")

	press(t, v, "lx")
	wantList(t, v.List(), "[1 2 3]")
	if got, want := v.Status(), "removed new1"; got != want {
		t.Errorf("status = %q, want %q", got, want)
	}
	if got := v.Cursor().Current(); got == nil || *got != "2" {
		t.Errorf("cursor not on the successor after remove")
	}

	press(t, v, "i")
	wantList(t, v.List(), "[1 new2 2 3]")

	// x at the ghost is a no-op.
	press(t, v, "ll")
	press(t, v, "x")
	wantList(t, v.List(), "[1 new2 2 3]")
}

func TestSplitPaste(t *testing.T) {
	v, _ := newTestViewer(t, 60, "1", "2", "3", "4", "5", "6")

	press(t, v, "lS")
	wantList(t, v.List(), "[1]")
	wantList(t, v.Clipboard(), "[2 3 4 5 6]")

	press(t, v, "h") // back to the ghost
	press(t, v, "p")
	wantList(t, v.List(), "[1 2 3 4 5 6]")
	wantList(t, v.Clipboard(), "[]")
	if got, want := v.Status(), "pasted 5 before"; got != want {
		t.Errorf("status = %q, want %q", got, want)
	}

	// At the ghost, split before takes everything.
	press(t, v, "s")
	wantList(t, v.List(), "[]")
	wantList(t, v.Clipboard(), "[1 2 3 4 5 6]")

	press(t, v, "P")
	wantList(t, v.List(), "[1 2 3 4 5 6]")
}

func TestSplitAccumulatesClipboard(t *testing.T) {
	v, _ := newTestViewer(t, 60, "a", "b", "c", "d")

	press(t, v, "llls") // at c
	wantList(t, v.Clipboard(), "[a b]")
	press(t, v, "S") // still at c
	wantList(t, v.List(), "[c]")
	wantList(t, v.Clipboard(), "[a b d]")
}

func TestCheckKey(t *testing.T) {
	v, _ := newTestViewer(t, 60, "a", "b", "c")
	press(t, v, "c")
	if got := v.Status(); !strings.HasPrefix(got, "ok: 3 elements") {
		t.Errorf("status = %q", got)
	}
}

func TestQuitKeys(t *testing.T) {
	v, _ := newTestViewer(t, 60, "a")

	quits := []*tcell.EventKey{
		runeKey('q'),
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl),
	}
	for _, ev := range quits {
		if v.HandleKey(ev) {
			t.Errorf("%s did not quit", ev.Name())
		}
	}
	if !v.HandleKey(runeKey('z')) {
		t.Error("unbound key quit the viewer")
	}
}

func TestRun(t *testing.T) {
	v, screen := newTestViewer(t, 60, "a", "b")

	screen.InjectKey(tcell.KeyRune, 'l', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	if err := v.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	wantList(t, v.List(), "[b]")
}

func TestNewInvalidColour(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	cfg := config.Default().Viewer
	cfg.CursorColor = "orange"

	if _, err := New(screen, dlist.New[string](), cfg, nil); err == nil {
		t.Error("New() should reject an invalid colour")
	}
}
