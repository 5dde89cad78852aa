package ipc

import (
	"errors"
	"fmt"
)

// Parameter failure kinds.
var (
	ErrNoParam  = errors.New("missing parameter")
	ErrBadParam = errors.New("incompatible parameter")
)

// Drop reasons: no response is sent to the document for these.
var (
	ErrDecode      = errors.New("malformed ipc request")
	ErrUnknownType = errors.New("unknown ipc request type")
	ErrEncode      = errors.New("failed to encode ipc response")
	ErrSink        = errors.New("failed to evaluate script")
)

// ParamError reports a parameter that is absent or has the wrong dynamic type.
type ParamError struct {
	Kind error // ErrNoParam or ErrBadParam
	Key  string
}

func (e *ParamError) Error() string {
	if e.Kind == ErrNoParam {
		return fmt.Sprintf("Missing parameter: %s", e.Key)
	}
	return fmt.Sprintf("Incompatible parameter: %s", e.Key)
}

// Unwrap lets errors.Is match ErrNoParam and ErrBadParam.
func (e *ParamError) Unwrap() error {
	return e.Kind
}

func noParam(key string) error {
	return &ParamError{Kind: ErrNoParam, Key: key}
}

func badParam(key string) error {
	return &ParamError{Kind: ErrBadParam, Key: key}
}
