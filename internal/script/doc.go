// Package script runs Lua component bodies.
//
// A script is an ordinary Lua chunk executed on the component's goroutine.
// It reaches the document through the global ui table and suspends on
// events with ui.wait or with the streams returned by ui.on:
//
//	local btn = ui.create("button", "ok")
//	btn:set_bounds(0, 0, 6, 1)
//	btn:set_text("OK")
//	ui.root:append(btn)
//
//	local ev = ui.wait(btn, "click")
//	btn:set_text("at " .. ev.x)
//
//	local keys = ui.on(ui.root, "keydown", 16)
//	while true do
//		local k = keys:next()
//		if k == nil or k.key == "q" then break end
//	end
//
// Only the base, table, string and math libraries are opened. Cancelling the
// component's context aborts the chunk, including a pending wait.
package script
