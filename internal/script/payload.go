package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/asyncui/internal/events"
)

// payloadTable converts an event payload to a Lua table. Field names are
// lower snake case; times are Unix milliseconds.
func payloadTable(rt *runtime, p any) lua.LValue {
	L := rt.L
	t := L.NewTable()

	switch v := p.(type) {
	case events.KeyboardEvent:
		setUIEvent(rt, t, v.UIEvent)
		t.RawSetString("key", lua.LString(v.Key))
		if v.Rune != 0 {
			t.RawSetString("rune", lua.LString(string(v.Rune)))
		}
		t.RawSetString("modifiers", lua.LString(v.Modifiers.String()))
		t.RawSetString("repeat", lua.LBool(v.Repeat))
	case events.WheelEvent:
		setMouseEvent(rt, t, v.MouseEvent)
		t.RawSetString("delta_x", lua.LNumber(v.DeltaX))
		t.RawSetString("delta_y", lua.LNumber(v.DeltaY))
	case events.MouseEvent:
		setMouseEvent(rt, t, v)
	case events.TouchEvent:
		setUIEvent(rt, t, v.UIEvent)
		touches := L.NewTable()
		for _, tc := range v.Touches {
			tt := L.NewTable()
			tt.RawSetString("id", lua.LNumber(tc.ID))
			tt.RawSetString("x", lua.LNumber(tc.X))
			tt.RawSetString("y", lua.LNumber(tc.Y))
			touches.Append(tt)
		}
		t.RawSetString("touches", touches)
		t.RawSetString("modifiers", lua.LString(v.Modifiers.String()))
	case events.CompositionEvent:
		setUIEvent(rt, t, v.UIEvent)
	case events.UIEvent:
		setUIEvent(rt, t, v)
	case events.Event:
		setEvent(rt, t, v)
	default:
		t.RawSetString("value", lua.LString(fmt.Sprint(v)))
	}
	return t
}

func setEvent(rt *runtime, t *lua.LTable, e events.Event) {
	t.RawSetString("type", lua.LString(e.Type))
	t.RawSetString("target", rt.element(e.Target))
	t.RawSetString("time", lua.LNumber(e.Time.UnixMilli()))
	if e.Data != "" {
		t.RawSetString("data", lua.LString(e.Data))
	}
}

func setUIEvent(rt *runtime, t *lua.LTable, e events.UIEvent) {
	setEvent(rt, t, e.Event)
	if e.Related != nil {
		t.RawSetString("related", rt.element(e.Related))
	}
}

func setMouseEvent(rt *runtime, t *lua.LTable, e events.MouseEvent) {
	setUIEvent(rt, t, e.UIEvent)
	t.RawSetString("x", lua.LNumber(e.X))
	t.RawSetString("y", lua.LNumber(e.Y))
	t.RawSetString("button", lua.LString(e.Button.String()))
	t.RawSetString("modifiers", lua.LString(e.Modifiers.String()))
	t.RawSetString("detail", lua.LNumber(e.Detail))
}
