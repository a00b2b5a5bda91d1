package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/dlist/internal/dlist"
)

// Metatable names for the userdata types.
const (
	listTypeName   = "dlist.list"
	cursorTypeName = "dlist.cursor"
)

type valueList = dlist.List[lua.LValue]

// cursorHandle is the userdata payload of a Lua cursor.
type cursorHandle struct {
	listUD *lua.LUserData
	list   *valueList
	c      *dlist.Cursor[lua.LValue]
}

// module implements the dlist Lua module.
type module struct {
	s *State
}

// registerModule installs the metatables and the global dlist table.
func registerModule(L *lua.LState, s *State) {
	m := &module{s: s}

	lmt := L.NewTypeMetatable(listTypeName)
	L.SetField(lmt, "__index", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"push_front": m.pushFront,
		"push_back":  m.pushBack,
		"pop_front":  m.popFront,
		"pop_back":   m.popBack,
		"front":      m.front,
		"back":       m.back,
		"len":        m.listLen,
		"is_empty":   m.isEmpty,
		"values":     m.values,
		"reversed":   m.reversed,
		"cursor":     m.cursor,
		"append":     m.appendList,
		"prepend":    m.prependList,
		"clear":      m.clear,
		"clone":      m.clone,
		"check":      m.check,
	}))
	L.SetField(lmt, "__tostring", L.NewFunction(m.listString))
	L.SetField(lmt, "__len", L.NewFunction(m.listLen))
	L.SetField(lmt, "__eq", L.NewFunction(m.listEq))

	cmt := L.NewTypeMetatable(cursorTypeName)
	L.SetField(cmt, "__index", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"move_next":     m.moveNext,
		"move_prev":     m.movePrev,
		"index":         m.index,
		"current":       m.current,
		"set":           m.set,
		"peek_next":     m.peekNext,
		"peek_prev":     m.peekPrev,
		"insert_before": m.insertBefore,
		"insert_after":  m.insertAfter,
		"remove":        m.remove,
		"split_before":  m.splitBefore,
		"split_after":   m.splitAfter,
		"splice_before": m.spliceBefore,
		"splice_after":  m.spliceAfter,
		"valid":         m.valid,
		"list":          m.cursorList,
	}))
	L.SetField(cmt, "__tostring", L.NewFunction(m.cursorString))

	mod := L.NewTable()
	L.SetField(mod, "new", L.NewFunction(m.newList))
	L.SetField(mod, "from", L.NewFunction(m.fromTable))
	L.SetGlobal("dlist", mod)
}

// pushList pushes l as list userdata and returns the userdata.
func pushList(L *lua.LState, l *valueList) *lua.LUserData {
	ud := L.NewUserData()
	ud.Value = l
	L.SetMetatable(ud, L.GetTypeMetatable(listTypeName))
	L.Push(ud)
	return ud
}

func checkList(L *lua.LState, n int) *valueList {
	ud := L.CheckUserData(n)
	if l, ok := ud.Value.(*valueList); ok {
		return l
	}
	L.ArgError(n, "dlist.list expected")
	return nil
}

func toCursor(L *lua.LState, n int) *cursorHandle {
	ud := L.CheckUserData(n)
	if h, ok := ud.Value.(*cursorHandle); ok {
		return h
	}
	L.ArgError(n, "dlist.cursor expected")
	return nil
}

// checkCursor returns the cursor at n, raising if it has been invalidated.
func checkCursor(L *lua.LState, n int) *cursorHandle {
	h := toCursor(L, n)
	if !h.c.Valid() {
		L.RaiseError("cursor is no longer valid: its list was modified or lent to a newer cursor")
	}
	return h
}

// checkElem returns argument n as a list element. nil cannot be stored
// because it doubles as "absent".
func checkElem(L *lua.LState, n int) lua.LValue {
	v := L.CheckAny(n)
	if v == lua.LNil {
		L.ArgError(n, "nil elements are not allowed")
	}
	return v
}

func pushOpt(L *lua.LState, v lua.LValue, ok bool) int {
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(v)
	return 1
}

func pushPtr(L *lua.LState, p *lua.LValue) int {
	if p == nil {
		return pushOpt(L, nil, false)
	}
	return pushOpt(L, *p, true)
}

// dlist.new(...) -> list
func (m *module) newList(L *lua.LState) int {
	m.s.tick(L)
	l := dlist.New[lua.LValue]()
	for i := 1; i <= L.GetTop(); i++ {
		l.PushBack(checkElem(L, i))
	}
	pushList(L, l)
	return 1
}

// dlist.from({...}) -> list
func (m *module) fromTable(L *lua.LState) int {
	m.s.tick(L)
	tbl := L.CheckTable(1)
	l := dlist.New[lua.LValue]()
	for i := 1; i <= tbl.Len(); i++ {
		v := tbl.RawGetInt(i)
		if v == lua.LNil {
			L.ArgError(1, "table has holes")
		}
		l.PushBack(v)
	}
	pushList(L, l)
	return 1
}

func (m *module) pushFront(L *lua.LState) int {
	m.s.tick(L)
	checkList(L, 1).PushFront(checkElem(L, 2))
	return 0
}

func (m *module) pushBack(L *lua.LState) int {
	m.s.tick(L)
	checkList(L, 1).PushBack(checkElem(L, 2))
	return 0
}

func (m *module) popFront(L *lua.LState) int {
	m.s.tick(L)
	v, ok := checkList(L, 1).PopFront()
	return pushOpt(L, v, ok)
}

func (m *module) popBack(L *lua.LState) int {
	m.s.tick(L)
	v, ok := checkList(L, 1).PopBack()
	return pushOpt(L, v, ok)
}

func (m *module) front(L *lua.LState) int {
	m.s.tick(L)
	v, ok := checkList(L, 1).Front()
	return pushOpt(L, v, ok)
}

func (m *module) back(L *lua.LState) int {
	m.s.tick(L)
	v, ok := checkList(L, 1).Back()
	return pushOpt(L, v, ok)
}

func (m *module) listLen(L *lua.LState) int {
	m.s.tick(L)
	L.Push(lua.LNumber(checkList(L, 1).Len()))
	return 1
}

func (m *module) isEmpty(L *lua.LState) int {
	m.s.tick(L)
	L.Push(lua.LBool(checkList(L, 1).IsEmpty()))
	return 1
}

// values() -> {elements front to back}
func (m *module) values(L *lua.LState) int {
	m.s.tick(L)
	l := checkList(L, 1)
	tbl := L.CreateTable(l.Len(), 0)
	for i, v := range l.Indexed() {
		tbl.RawSetInt(i+1, v)
	}
	L.Push(tbl)
	return 1
}

// reversed() -> {elements back to front}
func (m *module) reversed(L *lua.LState) int {
	m.s.tick(L)
	l := checkList(L, 1)
	tbl := L.CreateTable(l.Len(), 0)
	i := 1
	for v := range l.Backward() {
		tbl.RawSetInt(i, v)
		i++
	}
	L.Push(tbl)
	return 1
}

// cursor() -> cursor at the ghost position. Earlier cursors on the list
// become invalid.
func (m *module) cursor(L *lua.LState) int {
	m.s.tick(L)
	l := checkList(L, 1)
	h := &cursorHandle{listUD: L.CheckUserData(1), list: l, c: l.CursorMut()}

	ud := L.NewUserData()
	ud.Value = h
	L.SetMetatable(ud, L.GetTypeMetatable(cursorTypeName))
	L.Push(ud)
	return 1
}

func (m *module) appendList(L *lua.LState) int {
	m.s.tick(L)
	l, other := checkList(L, 1), checkList(L, 2)
	if l == other {
		L.ArgError(2, "cannot append a list to itself")
	}
	l.Append(other)
	return 0
}

func (m *module) prependList(L *lua.LState) int {
	m.s.tick(L)
	l, other := checkList(L, 1), checkList(L, 2)
	if l == other {
		L.ArgError(2, "cannot prepend a list to itself")
	}
	l.Prepend(other)
	return 0
}

func (m *module) clear(L *lua.LState) int {
	m.s.tick(L)
	checkList(L, 1).Clear()
	return 0
}

func (m *module) clone(L *lua.LState) int {
	m.s.tick(L)
	pushList(L, checkList(L, 1).Clone())
	return 1
}

// check() -> nil, or a description of the first broken invariant
func (m *module) check(L *lua.LState) int {
	m.s.tick(L)
	if err := checkList(L, 1).Validate(); err != nil {
		L.Push(lua.LString(err.Error()))
		return 1
	}
	L.Push(lua.LNil)
	return 1
}

func (m *module) listString(L *lua.LState) int {
	L.Push(lua.LString(checkList(L, 1).String()))
	return 1
}

func (m *module) listEq(L *lua.LState) int {
	m.s.tick(L)
	a, b := checkList(L, 1), checkList(L, 2)
	L.Push(lua.LBool(equalLists(L, a, b)))
	return 1
}

// equalLists compares element-wise with Lua equality, raising a Lua error
// if an __eq metamethod modifies either list.
func equalLists(L *lua.LState, a, b *valueList) (eq bool) {
	defer func() {
		if r := recover(); r != nil {
			if r != dlist.ErrConcurrentModification {
				panic(r)
			}
			L.RaiseError("list modified during comparison")
		}
	}()
	return dlist.EqualFunc(a, b, L.Equal)
}

func (m *module) moveNext(L *lua.LState) int {
	m.s.tick(L)
	checkCursor(L, 1).c.MoveNext()
	return 0
}

func (m *module) movePrev(L *lua.LState) int {
	m.s.tick(L)
	checkCursor(L, 1).c.MovePrev()
	return 0
}

// index() -> zero-based index, or nil at the ghost position
func (m *module) index(L *lua.LState) int {
	m.s.tick(L)
	i, ok := checkCursor(L, 1).c.Index()
	return pushOpt(L, lua.LNumber(i), ok)
}

func (m *module) current(L *lua.LState) int {
	m.s.tick(L)
	return pushPtr(L, checkCursor(L, 1).c.Current())
}

// set(v) -> true, or false at the ghost position
func (m *module) set(L *lua.LState) int {
	m.s.tick(L)
	h := checkCursor(L, 1)
	v := checkElem(L, 2)
	p := h.c.Current()
	if p == nil {
		L.Push(lua.LFalse)
		return 1
	}
	*p = v
	L.Push(lua.LTrue)
	return 1
}

func (m *module) peekNext(L *lua.LState) int {
	m.s.tick(L)
	return pushPtr(L, checkCursor(L, 1).c.PeekNext())
}

func (m *module) peekPrev(L *lua.LState) int {
	m.s.tick(L)
	return pushPtr(L, checkCursor(L, 1).c.PeekPrev())
}

func (m *module) insertBefore(L *lua.LState) int {
	m.s.tick(L)
	h := checkCursor(L, 1)
	h.c.InsertBefore(checkElem(L, 2))
	return 0
}

func (m *module) insertAfter(L *lua.LState) int {
	m.s.tick(L)
	h := checkCursor(L, 1)
	h.c.InsertAfter(checkElem(L, 2))
	return 0
}

// remove() -> removed element, or nil at the ghost position
func (m *module) remove(L *lua.LState) int {
	m.s.tick(L)
	v, ok := checkCursor(L, 1).c.RemoveCurrent()
	return pushOpt(L, v, ok)
}

func (m *module) splitBefore(L *lua.LState) int {
	m.s.tick(L)
	pushList(L, checkCursor(L, 1).c.SplitBefore())
	return 1
}

func (m *module) splitAfter(L *lua.LState) int {
	m.s.tick(L)
	pushList(L, checkCursor(L, 1).c.SplitAfter())
	return 1
}

func (m *module) spliceBefore(L *lua.LState) int {
	m.s.tick(L)
	h := checkCursor(L, 1)
	other := checkList(L, 2)
	if other == h.list {
		L.ArgError(2, "cannot splice a list into itself")
	}
	h.c.SpliceBefore(other)
	return 0
}

func (m *module) spliceAfter(L *lua.LState) int {
	m.s.tick(L)
	h := checkCursor(L, 1)
	other := checkList(L, 2)
	if other == h.list {
		L.ArgError(2, "cannot splice a list into itself")
	}
	h.c.SpliceAfter(other)
	return 0
}

// valid() -> whether the cursor can still be used
func (m *module) valid(L *lua.LState) int {
	m.s.tick(L)
	L.Push(lua.LBool(toCursor(L, 1).c.Valid()))
	return 1
}

// list() -> the list the cursor walks
func (m *module) cursorList(L *lua.LState) int {
	m.s.tick(L)
	L.Push(toCursor(L, 1).listUD)
	return 1
}

func (m *module) cursorString(L *lua.LState) int {
	h := toCursor(L, 1)
	switch {
	case !h.c.Valid():
		L.Push(lua.LString("cursor(invalid)"))
	default:
		if i, ok := h.c.Index(); ok {
			L.Push(lua.LString("cursor(" + lua.LNumber(i).String() + ")"))
		} else {
			L.Push(lua.LString("cursor(ghost)"))
		}
	}
	return 1
}
