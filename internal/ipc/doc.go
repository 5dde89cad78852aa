// Package ipc implements the request/response protocol between the host and
// the rendered document.
//
// The renderer only offers a fire-and-forget string channel in each
// direction. The document sends a request envelope
//
//	{"transactionId": 7, "type": "Greet", "parameters": {"name": "Ada"}}
//
// and the host answers by evaluating
//
//	window.rpc.handleResponse({"transactionId": 7, "type": "User", "value": {...}})
//
// in the document, where the document-side dispatcher resolves the caller
// waiting on that transaction id.
//
// Processing is synchronous and stateless: one inbound message yields at most
// one injected response, on the goroutine that delivered the message.
// Malformed envelopes and unknown request types are logged and dropped.
// Handler failures are answered with {"type": "Error", "value": null}; their
// detail stays in the host log.
package ipc
