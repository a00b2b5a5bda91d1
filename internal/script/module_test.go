package script

import (
	"context"
	"strings"
	"testing"

	lua "github.com/yuin/gopher-lua"
)

// globalList returns the list stored in global name and checks its links.
func globalList(t *testing.T, s *State, name string) *valueList {
	t.Helper()
	ud, ok := s.L.GetGlobal(name).(*lua.LUserData)
	if !ok {
		t.Fatalf("global %s is %T, want userdata", name, s.L.GetGlobal(name))
	}
	l, ok := ud.Value.(*valueList)
	if !ok {
		t.Fatalf("global %s holds %T, want list", name, ud.Value)
	}
	if err := l.Validate(); err != nil {
		t.Fatalf("global %s: %v", name, err)
	}
	return l
}

func runLua(t *testing.T, code string) *State {
	t.Helper()
	s := NewState()
	t.Cleanup(s.Close)
	if err := s.DoString(context.Background(), code); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	return s
}

func TestModuleListMethods(t *testing.T) {
	s := runLua(t, `
		l = dlist.new()
		assert(l:is_empty())
		assert(l:pop_front() == nil and l:pop_back() == nil)
		assert(l:front() == nil and l:back() == nil)

		l:push_back(2)
		l:push_front(1)
		l:push_back("three")
		assert(l:len() == 3)
		assert(not l:is_empty())
		assert(l:front() == 1 and l:back() == "three")
		assert(tostring(l) == "[1 2 three]")

		local v = l:values()
		assert(#v == 3 and v[1] == 1 and v[2] == 2 and v[3] == "three")
		local r = l:reversed()
		assert(#r == 3 and r[1] == "three" and r[3] == 1)

		assert(l:pop_back() == "three")
		assert(l:pop_front() == 1)
		assert(l:check() == nil)
	`)
	if got := globalList(t, s, "l").String(); got != "[2]" {
		t.Errorf("l = %s, want [2]", got)
	}
}

func TestModuleFrom(t *testing.T) {
	s := runLua(t, `l = dlist.from({"a", "b", "c"})`)
	if got := globalList(t, s, "l").String(); got != "[a b c]" {
		t.Errorf("l = %s, want [a b c]", got)
	}
}

func TestModuleAppendPrepend(t *testing.T) {
	s := runLua(t, `
		l = dlist.new(3, 4)
		other = dlist.new(5, 6)
		l:append(other)
		assert(other:is_empty())
		l:prepend(dlist.new(1, 2))
		copy = l:clone()
		assert(copy == l)
		copy:pop_back()
		assert(copy ~= l)
	`)
	if got := globalList(t, s, "l").String(); got != "[1 2 3 4 5 6]" {
		t.Errorf("l = %s, want [1 2 3 4 5 6]", got)
	}
	if got := globalList(t, s, "copy").String(); got != "[1 2 3 4 5]" {
		t.Errorf("copy = %s, want [1 2 3 4 5]", got)
	}
	if got := globalList(t, s, "other").Len(); got != 0 {
		t.Errorf("other has %d elements, want 0", got)
	}
}

func TestModuleCursorWalk(t *testing.T) {
	runLua(t, `
		local l = dlist.new(1, 2, 3)
		local c = l:cursor()
		assert(c:index() == nil and c:current() == nil)
		assert(tostring(c) == "cursor(ghost)")
		assert(c:peek_next() == 1 and c:peek_prev() == 3)

		c:move_next()
		assert(c:index() == 0 and c:current() == 1)
		assert(c:peek_prev() == nil and c:peek_next() == 2)

		c:move_next()
		c:move_next()
		assert(c:index() == 2 and c:current() == 3)
		c:move_next()
		assert(c:index() == nil)
		c:move_prev()
		assert(c:current() == 3)

		assert(c:set(30))
		assert(l:back() == 30)
		assert(c:list() == l)
	`)
}

func TestModuleCursorEditing(t *testing.T) {
	s := runLua(t, `
		l = dlist.new(1, 2, 3)
		local c = l:cursor()
		c:move_next()
		c:insert_after(9)
		assert(tostring(l) == "[1 9 2 3]")
		c:insert_before(0)
		assert(c:index() == 1 and c:current() == 1)

		assert(c:remove() == 1)
		assert(c:current() == 9 and c:index() == 1)

		tail = c:split_after()
		assert(tostring(l) == "[0 9]" and tostring(tail) == "[2 3]")
		head = c:split_before()
		assert(tostring(head) == "[0]" and c:index() == 0)

		c:splice_after(tail)
		c:splice_before(head)
		assert(c:index() == 1 and c:current() == 9)
		assert(l:check() == nil)
	`)
	if got := globalList(t, s, "l").String(); got != "[0 9 2 3]" {
		t.Errorf("l = %s, want [0 9 2 3]", got)
	}
}

func TestModuleGhostSplicing(t *testing.T) {
	s := runLua(t, `
		l = dlist.new(2, 3)
		local c = l:cursor()
		c:splice_before(dlist.new(4, 5))
		c:splice_after(dlist.new(0, 1))
		assert(c:index() == nil)
		c:insert_before(6)
		c:insert_after(-1)
	`)
	if got := globalList(t, s, "l").String(); got != "[-1 0 1 2 3 4 5 6]" {
		t.Errorf("l = %s, want [-1 0 1 2 3 4 5 6]", got)
	}
}

func TestModuleErrors(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{
			name: "stale cursor",
			code: `local l = dlist.new(1); local c = l:cursor(); l:push_back(2); c:move_next()`,
			want: "no longer valid",
		},
		{
			name: "superseded cursor",
			code: `local l = dlist.new(1); local c = l:cursor(); l:cursor(); c:current()`,
			want: "no longer valid",
		},
		{
			name: "self splice",
			code: `local l = dlist.new(1); l:cursor():splice_before(l)`,
			want: "into itself",
		},
		{
			name: "self append",
			code: `local l = dlist.new(1); l:append(l)`,
			want: "to itself",
		},
		{
			name: "nil element",
			code: `dlist.new():push_back(nil)`,
			want: "nil elements",
		},
		{
			name: "wrong receiver",
			code: `local l = dlist.new(); local c = l:cursor(); c.move_next(l)`,
			want: "dlist.cursor expected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState()
			defer s.Close()

			err := s.DoString(context.Background(), tt.code)
			if err == nil {
				t.Fatal("DoString() should fail")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestModuleCursorValid(t *testing.T) {
	runLua(t, `
		local l = dlist.new(1, 2)
		local c = l:cursor()
		assert(c:valid())
		l:pop_front()
		assert(not c:valid())
		assert(tostring(c) == "cursor(invalid)")
		local ok = pcall(function() c:move_next() end)
		assert(not ok)

		-- splicing a list away invalidates cursors on it
		local other = dlist.new(9)
		local oc = other:cursor()
		local d = l:cursor()
		d:splice_after(other)
		assert(not oc:valid())
		assert(d:valid())
	`)
}

func TestModuleCallCount(t *testing.T) {
	s := runLua(t, `local l = dlist.new(1, 2); l:push_back(3); l:len()`)
	if got := s.Calls(); got != 3 {
		t.Errorf("Calls() = %d, want 3", got)
	}
}

func TestModuleEqualityModifiedByMetamethod(t *testing.T) {
	s := NewState()
	defer s.Close()

	err := s.DoString(context.Background(), `
		local b
		local mt = {__eq = function() b:pop_back(); return true end}
		local function item() return setmetatable({}, mt) end
		local a = dlist.new(item(), item(), item())
		b = dlist.new(item(), item(), item())
		local eq = a == b
	`)
	if err == nil {
		t.Fatal("DoString() should fail")
	}
	if !strings.Contains(err.Error(), "modified during comparison") {
		t.Errorf("error = %v", err)
	}
}
