/*
Package shell wires the window, the asset server and the IPC bridge together.

A Shell runs in one of three modes:

  - native: a webview window loads the entry document from the loopback
    asset server. Inbound messages arrive through a bound function on the
    window's UI thread and responses are injected with the window's Eval.
  - browser: the asset server also accepts WebSocket connections at /ipc;
    any browser pointed at the printed URL becomes the document.
  - headless: a goja document runs the bootstrap scripts and a driver
    script, with no renderer and no server.

In every mode the bridge runs on exactly one goroutine at a time, and each
response is handed to the sink of the document that sent the request.
*/
package shell
