/*
Package document provides a headless document for the shell.

A Document is a goja runtime dressed up as the little part of a browser
window that the IPC layer touches: a global window object, a console, timer
functions and the window.ipc.postMessage channel. It lets the shell run its
document-side scripts without a renderer, which is how headless mode and the
end-to-end tests drive the bridge.

# Script scheduling

Eval never runs a script immediately. Scripts are queued and Pump evaluates
them one by one after the current script returns, the way a renderer
schedules injected scripts on its own event loop. Promise continuations run
at the end of every evaluation, so an await on a response resumes as soon as
the response script is pumped.

# Timers

setTimeout and setInterval return handles but never fire. Responses are
always delivered by Pump, so the response timeout of the document scripts is
not needed here.

# Usage Example

	doc, err := document.New(document.DefaultConfig(), logger)
	doc.OnMessage(func(msg string) { bridge.Handle(ctx, msg, doc) })
	_ = doc.Init(web.MustScript(web.ScriptInit))
	_, err = doc.Run(ctx, script)
*/
package document
