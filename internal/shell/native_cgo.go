//go:build cgo

package shell

import (
	webview "github.com/webview/webview_go"
)

type nativeWindow struct {
	w webview.WebView
}

// NewNativeWindow opens a webview window.
func NewNativeWindow(debug bool) (Window, error) {
	w := webview.New(debug)
	if w == nil {
		return nil, ErrNativeUnavailable
	}
	return &nativeWindow{w: w}, nil
}

func (n *nativeWindow) SetTitle(title string) { n.w.SetTitle(title) }

func (n *nativeWindow) SetSize(width, height int) {
	n.w.SetSize(width, height, webview.HintNone)
}

func (n *nativeWindow) Init(script string) { n.w.Init(script) }

func (n *nativeWindow) Bind(name string, fn func(message string)) error {
	return n.w.Bind(name, fn)
}

func (n *nativeWindow) Navigate(url string) { n.w.Navigate(url) }

// Eval never fails once the window exists; webview queues the script.
func (n *nativeWindow) Eval(script string) error {
	n.w.Eval(script)
	return nil
}

func (n *nativeWindow) Run()       { n.w.Run() }
func (n *nativeWindow) Terminate() { n.w.Terminate() }
func (n *nativeWindow) Destroy()   { n.w.Destroy() }
