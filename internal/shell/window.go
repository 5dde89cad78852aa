package shell

import "errors"

// BindingName is the function the native bootstrap calls to post a message.
const BindingName = "__shell_post"

// ErrNativeUnavailable is returned when the binary was built without cgo.
var ErrNativeUnavailable = errors.New("native window support requires a cgo build")

// Window is the renderer boundary of native mode. Every method except
// Terminate must be called on the UI thread.
type Window interface {
	SetTitle(title string)
	SetSize(width, height int)
	// Init injects a script that runs before every page load.
	Init(script string)
	// Bind exposes fn to the document as window[name](message).
	Bind(name string, fn func(message string)) error
	Navigate(url string)
	// Eval schedules script in the document's top-level scope.
	Eval(script string) error
	Run()
	// Terminate stops Run; safe from any goroutine.
	Terminate()
	Destroy()
}

// WindowFactory opens a window; debug enables the developer tools.
type WindowFactory func(debug bool) (Window, error)
