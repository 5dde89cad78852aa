package ipc

import (
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/bytedance/sonic/ast"
)

// codec keeps numbers as json.Number and escapes HTML so encoded responses
// can be embedded in script text verbatim. Envelope keys match exactly.
var codec = sonic.Config{
	CaseSensitive:    true,
	EscapeHTML:       true,
	CompactMarshaler: true,
	CopyString:       true,
	ValidateString:   true,
	UseNumber:        true,
}.Froze()

// Request is a decoded inbound envelope.
type Request struct {
	TransactionID uint64
	Type          string
	Params        *Params
}

// Response is an outbound envelope.
type Response struct {
	TransactionID uint64      `json:"transactionId"`
	Type          Shape       `json:"type"`
	Value         interface{} `json:"value"`
}

var envelopeKeys = map[string]struct{}{
	"transactionId": {},
	"type":          {},
	"parameters":    {},
}

type wireRequest struct {
	TransactionID *uint64                `json:"transactionId"`
	Type          *string                `json:"type"`
	Parameters    map[string]interface{} `json:"parameters"`
}

// DecodeRequest parses an inbound envelope. Every failure wraps ErrDecode.
func DecodeRequest(message string) (*Request, error) {
	var wire wireRequest
	if err := codec.UnmarshalFromString(message, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if err := checkDuplicateKeys(message); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	var missing error
	switch {
	case wire.TransactionID == nil:
		missing = errors.New("missing field transactionId")
	case wire.Type == nil:
		missing = errors.New("missing field type")
	case *wire.Type == "":
		missing = errors.New("empty field type")
	case wire.Parameters == nil:
		missing = errors.New("missing field parameters")
	}
	if missing != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, missing)
	}

	return &Request{
		TransactionID: *wire.TransactionID,
		Type:          *wire.Type,
		Params:        NewParams(wire.Parameters),
	}, nil
}

// checkDuplicateKeys rejects envelopes that repeat one of the envelope keys.
// Unknown keys are ignored, as they are by the decoder.
func checkDuplicateKeys(message string) error {
	root := ast.NewRaw(message)
	props, err := root.Properties()
	if err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(envelopeKeys))
	var pair ast.Pair
	for props.Next(&pair) {
		if _, known := envelopeKeys[pair.Key]; !known {
			continue
		}
		if _, dup := seen[pair.Key]; dup {
			return fmt.Errorf("duplicate field %s", pair.Key)
		}
		seen[pair.Key] = struct{}{}
	}
	return nil
}

// EncodeResponse serializes an outbound envelope.
func EncodeResponse(resp *Response) (string, error) {
	payload, err := codec.MarshalToString(resp)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return payload, nil
}
