//go:build !cgo

package shell

// NewNativeWindow always fails without cgo.
func NewNativeWindow(debug bool) (Window, error) {
	return nil, ErrNativeUnavailable
}
