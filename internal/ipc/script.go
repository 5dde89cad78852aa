package ipc

// ResponseHandler is the document-side dispatcher that receives responses.
// It is defined by the shell's initialization script.
const ResponseHandler = "window.rpc.handleResponse"

// Sink schedules a script body for evaluation in the document's top-level
// scope. It must not wait for the evaluation to finish.
type Sink interface {
	Eval(script string) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(script string) error

// Eval calls f(script).
func (f SinkFunc) Eval(script string) error {
	return f(script)
}

// ResponseScript wraps an encoded response in a call to ResponseHandler.
func ResponseScript(payload string) string {
	return ResponseHandler + "(" + payload + ")"
}
