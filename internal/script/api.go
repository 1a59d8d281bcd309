package script

import (
	"errors"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/asyncui/internal/bridge"
	"github.com/dshills/asyncui/internal/dom"
	"github.com/dshills/asyncui/internal/event"
	"github.com/dshills/asyncui/internal/events"
)

const (
	elementType = "asyncui.element"
	streamType  = "asyncui.stream"
)

// runtime is the per-run state behind the ui table. It is only used from
// the goroutine running the script.
type runtime struct {
	L        *lua.LState
	script   *Script
	doc      *dom.Document
	root     *dom.Element
	elements map[*dom.Element]*lua.LUserData
	streams  []*bridge.Stream[any]
}

func newRuntime(L *lua.LState, s *Script, root *dom.Element) *runtime {
	return &runtime{
		L:        L,
		script:   s,
		doc:      root.Document(),
		root:     root,
		elements: make(map[*dom.Element]*lua.LUserData),
	}
}

// changed reports a document mutation to the host.
func (rt *runtime) changed() {
	if rt.script.invalidate != nil {
		rt.script.invalidate()
	}
}

// close releases every stream the script opened.
func (rt *runtime) close() {
	for _, s := range rt.streams {
		s.Close()
	}
	rt.streams = nil
}

func (rt *runtime) register() {
	L := rt.L

	em := L.NewTypeMetatable(elementType)
	L.SetField(em, "__index", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"id":         rt.elID,
		"tag":        rt.elTag,
		"text":       rt.elText,
		"set_text":   rt.elSetText,
		"value":      rt.elValue,
		"set_value":  rt.elSetValue,
		"attr":       rt.elAttr,
		"set_attr":   rt.elSetAttr,
		"set_bounds": rt.elSetBounds,
		"append":     rt.elAppend,
		"remove":     rt.elRemove,
	}))
	L.SetField(em, "__tostring", L.NewFunction(func(L *lua.LState) int {
		el := rt.checkElement(1)
		L.Push(lua.LString("<" + el.Tag() + ">"))
		return 1
	}))

	sm := L.NewTypeMetatable(streamType)
	L.SetField(sm, "__index", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"next":     rt.streamNext,
		"try_next": rt.streamTryNext,
		"pending":  rt.streamPending,
		"close":    rt.streamClose,
	}))

	ui := L.NewTable()
	L.SetField(ui, "root", rt.element(rt.root))
	L.SetField(ui, "name", lua.LString(rt.script.name))
	L.SetFuncs(ui, map[string]lua.LGFunction{
		"find":   rt.find,
		"create": rt.create,
		"wait":   rt.wait,
		"on":     rt.on,
		"log":    rt.log,
	})
	L.SetGlobal("ui", ui)
}

// element returns the userdata for el, creating it on first use so that the
// same element always compares equal in Lua.
func (rt *runtime) element(el *dom.Element) lua.LValue {
	if el == nil {
		return lua.LNil
	}
	if ud, ok := rt.elements[el]; ok {
		return ud
	}
	ud := rt.L.NewUserData()
	ud.Value = el
	rt.L.SetMetatable(ud, rt.L.GetTypeMetatable(elementType))
	rt.elements[el] = ud
	return ud
}

func (rt *runtime) checkElement(n int) *dom.Element {
	ud := rt.L.CheckUserData(n)
	if el, ok := ud.Value.(*dom.Element); ok {
		return el
	}
	rt.L.ArgError(n, "element expected")
	return nil
}

func (rt *runtime) checkStream(n int) *bridge.Stream[any] {
	ud := rt.L.CheckUserData(n)
	if s, ok := ud.Value.(*bridge.Stream[any]); ok {
		return s
	}
	rt.L.ArgError(n, "stream expected")
	return nil
}

// ui.find(id) -> element or nil
func (rt *runtime) find(L *lua.LState) int {
	L.Push(rt.element(rt.doc.ElementByID(L.CheckString(1))))
	return 1
}

// ui.create(tag [, id]) -> element
func (rt *runtime) create(L *lua.LState) int {
	tag := L.CheckString(1)
	if tag == "" {
		L.ArgError(1, "tag cannot be empty")
		return 0
	}
	el := rt.doc.CreateElement(tag)
	if id := L.OptString(2, ""); id != "" {
		el.SetID(id)
	}
	L.Push(rt.element(el))
	return 1
}

// ui.wait(element, kind) -> event table, or nil if the element went away
func (rt *runtime) wait(L *lua.LState) int {
	s := rt.subscribe(rt.checkElement(1), event.Kind(L.CheckString(2)))
	defer s.Close()

	p, err := s.Next(L.Context())
	if err != nil {
		rt.raiseWait(err)
		return 1
	}
	L.Push(payloadTable(rt, p))
	return 1
}

// ui.on(element, kind [, queue_size]) -> stream
func (rt *runtime) on(L *lua.LState) int {
	el := rt.checkElement(1)
	kind := event.Kind(L.CheckString(2))

	var opts []bridge.Option
	if size := L.OptInt(3, 0); size > 0 {
		opts = append(opts, bridge.WithQueue(size, bridge.DropOldest))
	}
	s := rt.subscribe(el, kind, opts...)
	rt.streams = append(rt.streams, s)

	ud := L.NewUserData()
	ud.Value = s
	L.SetMetatable(ud, L.GetTypeMetatable(streamType))
	L.Push(ud)
	return 1
}

func (rt *runtime) subscribe(el *dom.Element, kind event.Kind, opts ...bridge.Option) *bridge.Stream[any] {
	all := append([]bridge.Option{bridge.WithLogger(rt.script.logger)}, rt.script.streamOpts...)
	s, err := events.UntilKind(el, kind, append(all, opts...)...)
	if err != nil {
		rt.L.RaiseError("%s", err.Error())
		return nil
	}
	return s
}

// raiseWait turns a failed Next into a Lua error, except for a closed
// stream which the caller reports as nil.
func (rt *runtime) raiseWait(err error) {
	if errors.Is(err, bridge.ErrClosed) {
		rt.L.Push(lua.LNil)
		return
	}
	rt.L.RaiseError("%s", err.Error())
}

// ui.log(...) writes its arguments to the script logger.
func (rt *runtime) log(L *lua.LState) int {
	parts := make([]string, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	rt.script.logger.Info().Str("script", rt.script.name).Msg(strings.Join(parts, " "))
	return 0
}

func (rt *runtime) streamNext(L *lua.LState) int {
	s := rt.checkStream(1)
	p, err := s.Next(L.Context())
	if err != nil {
		rt.raiseWait(err)
		return 1
	}
	L.Push(payloadTable(rt, p))
	return 1
}

func (rt *runtime) streamTryNext(L *lua.LState) int {
	p, ok := rt.checkStream(1).TryNext()
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(payloadTable(rt, p))
	return 1
}

func (rt *runtime) streamPending(L *lua.LState) int {
	L.Push(lua.LNumber(rt.checkStream(1).Pending()))
	return 1
}

func (rt *runtime) streamClose(L *lua.LState) int {
	rt.checkStream(1).Close()
	return 0
}

func (rt *runtime) elID(L *lua.LState) int {
	L.Push(lua.LString(rt.checkElement(1).ID()))
	return 1
}

func (rt *runtime) elTag(L *lua.LState) int {
	L.Push(lua.LString(rt.checkElement(1).Tag()))
	return 1
}

func (rt *runtime) elText(L *lua.LState) int {
	L.Push(lua.LString(dom.TextContent(rt.checkElement(1))))
	return 1
}

func (rt *runtime) elSetText(L *lua.LState) int {
	rt.checkElement(1).SetText(L.CheckString(2))
	rt.changed()
	return 0
}

func (rt *runtime) elValue(L *lua.LState) int {
	v, _ := rt.checkElement(1).Attr("value")
	L.Push(lua.LString(v))
	return 1
}

func (rt *runtime) elSetValue(L *lua.LState) int {
	rt.checkElement(1).SetAttr("value", L.CheckString(2))
	rt.changed()
	return 0
}

func (rt *runtime) elAttr(L *lua.LState) int {
	v, ok := rt.checkElement(1).Attr(L.CheckString(2))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(v))
	return 1
}

func (rt *runtime) elSetAttr(L *lua.LState) int {
	rt.checkElement(1).SetAttr(L.CheckString(2), L.CheckString(3))
	rt.changed()
	return 0
}

func (rt *runtime) elSetBounds(L *lua.LState) int {
	rt.checkElement(1).SetBounds(dom.Rect{
		X:      L.CheckInt(2),
		Y:      L.CheckInt(3),
		Width:  L.CheckInt(4),
		Height: L.CheckInt(5),
	})
	rt.changed()
	return 0
}

func (rt *runtime) elAppend(L *lua.LState) int {
	if err := rt.checkElement(1).AppendChild(rt.checkElement(2)); err != nil {
		L.RaiseError("%s", err.Error())
	}
	rt.changed()
	return 0
}

// el:remove() detaches the element from its parent.
func (rt *runtime) elRemove(L *lua.LState) int {
	el := rt.checkElement(1)
	if p := el.Parent(); p != nil {
		_ = p.RemoveChild(el)
	}
	rt.changed()
	return 0
}
