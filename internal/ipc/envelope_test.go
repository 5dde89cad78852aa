package ipc

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRequest(t *testing.T) {
	req, err := DecodeRequest(`{"transactionId":7,"type":"UpdateCounter","parameters":{"value":41,"extra":"x"}}`)
	require.NoError(t, err)

	assert.Equal(t, uint64(7), req.TransactionID)
	assert.Equal(t, "UpdateCounter", req.Type)
	assert.Equal(t, 2, req.Params.Len())

	n, err := req.Params.I32("value")
	require.NoError(t, err)
	assert.Equal(t, int32(41), n)
}

func TestDecodeRequestKeepsNumberLiterals(t *testing.T) {
	req, err := DecodeRequest(`{"transactionId":1,"type":"UpdateCounter","parameters":{"value":1.0}}`)
	require.NoError(t, err)

	_, err = req.Params.I32("value")
	assert.True(t, errors.Is(err, ErrBadParam))
}

func TestDecodeRequestIgnoresUnknownKeys(t *testing.T) {
	req, err := DecodeRequest(`{"transactionId":3,"type":"GetTime","parameters":{},"extra":1,"extra":2}`)
	require.NoError(t, err)

	assert.Equal(t, uint64(3), req.TransactionID)
	assert.Equal(t, "GetTime", req.Type)
}

func TestDecodeRequestErrors(t *testing.T) {
	tests := []struct {
		name    string
		message string
	}{
		{"not json", "not json"},
		{"empty", ""},
		{"array", `[1,2,3]`},
		{"missing transaction id", `{"type":"Greet","parameters":{}}`},
		{"negative transaction id", `{"transactionId":-1,"type":"Greet","parameters":{}}`},
		{"fractional transaction id", `{"transactionId":1.5,"type":"Greet","parameters":{}}`},
		{"textual transaction id", `{"transactionId":"1","type":"Greet","parameters":{}}`},
		{"missing type", `{"transactionId":1,"parameters":{}}`},
		{"empty type", `{"transactionId":1,"type":"","parameters":{}}`},
		{"numeric type", `{"transactionId":1,"type":3,"parameters":{}}`},
		{"missing parameters", `{"transactionId":1,"type":"Greet"}`},
		{"null parameters", `{"transactionId":1,"type":"Greet","parameters":null}`},
		{"array parameters", `{"transactionId":1,"type":"Greet","parameters":[]}`},
		{"capitalized transaction id", `{"TransactionID":7,"type":"Greet","parameters":{"name":"Ada"}}`},
		{"upper case type", `{"transactionId":7,"TYPE":"Greet","parameters":{"name":"Ada"}}`},
		{"capitalized parameters", `{"transactionId":7,"type":"Greet","Parameters":{}}`},
		{"duplicate transaction id", `{"transactionId":7,"transactionId":8,"type":"Greet","parameters":{}}`},
		{"duplicate type", `{"transactionId":7,"type":"Greet","type":"GetTime","parameters":{}}`},
		{"duplicate parameters", `{"transactionId":7,"type":"Greet","parameters":{},"parameters":{"name":"Ada"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := DecodeRequest(tt.message)
			assert.Nil(t, req)
			assert.True(t, errors.Is(err, ErrDecode), "got %v", err)
		})
	}
}

func TestEncodeResponse(t *testing.T) {
	tests := []struct {
		name string
		resp *Response
		want string
	}{
		{
			name: "void",
			resp: &Response{TransactionID: 1, Type: ShapeVoid},
			want: `{"transactionId":1,"type":"Void","value":null}`,
		},
		{
			name: "string",
			resp: &Response{TransactionID: 2, Type: ShapeString, Value: "2024-01-01 00:00:00 UTC"},
			want: `{"transactionId":2,"type":"String","value":"2024-01-01 00:00:00 UTC"}`,
		},
		{
			name: "i32",
			resp: &Response{TransactionID: 3, Type: ShapeI32, Value: int32(-2147483648)},
			want: `{"transactionId":3,"type":"i32","value":-2147483648}`,
		},
		{
			name: "error",
			resp: &Response{TransactionID: 4, Type: ShapeError},
			want: `{"transactionId":4,"type":"Error","value":null}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeResponse(tt.resp)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, got)
		})
	}
}

func TestEncodeResponseEscapesMarkup(t *testing.T) {
	got, err := EncodeResponse(&Response{TransactionID: 1, Type: ShapeString, Value: "</script>"})
	require.NoError(t, err)

	assert.NotContains(t, got, "</script>")

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(got), &decoded))
	assert.Equal(t, "</script>", decoded["value"])
}

func TestEncodeResponseUnsupportedValue(t *testing.T) {
	_, err := EncodeResponse(&Response{TransactionID: 1, Type: ShapeUser, Value: make(chan int)})
	assert.True(t, errors.Is(err, ErrEncode))
}

func TestResponseScript(t *testing.T) {
	script := ResponseScript(`{"transactionId":1,"type":"Void","value":null}`)
	assert.Equal(t, `window.rpc.handleResponse({"transactionId":1,"type":"Void","value":null})`, script)
}
