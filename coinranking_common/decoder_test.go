package coinranking_common

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	Coins []json.RawMessage `json:"coins"`
}

func TestDecodeEnvelope(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		statusCode int
		wantKind   ErrorKind
		wantErr    bool
		wantCoins  int
	}{
		{
			name:       "success",
			body:       `{"status":"success","data":{"coins":[{"uuid":"a"},{"uuid":"b"}]}}`,
			statusCode: 200,
			wantCoins:  2,
		},
		{
			name:       "fail status",
			body:       `{"status":"fail","type":"RATE_LIMIT_EXCEEDED"}`,
			statusCode: 200,
			wantErr:    true,
			wantKind:   KindServerError,
		},
		{
			name:       "missing status",
			body:       `{"data":{"coins":[]}}`,
			statusCode: 200,
			wantErr:    true,
			wantKind:   KindDecodingFailed,
		},
		{
			name:       "null data",
			body:       `{"status":"success","data":null}`,
			statusCode: 200,
			wantErr:    true,
			wantKind:   KindDecodingFailed,
		},
		{
			name:       "not json",
			body:       `<html>oops</html>`,
			statusCode: 200,
			wantErr:    true,
			wantKind:   KindDecodingFailed,
		},
		{
			name:       "data of wrong shape",
			body:       `{"status":"success","data":{"coins":"nope"}}`,
			statusCode: 200,
			wantErr:    true,
			wantKind:   KindDecodingFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := DecodeEnvelope[testPayload]([]byte(tt.body), tt.statusCode)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Len(t, payload.Coins, tt.wantCoins)
				return
			}

			require.Error(t, err)
			var netErr *NetworkError
			require.True(t, errors.As(err, &netErr))
			assert.Equal(t, tt.wantKind, netErr.Kind)
		})
	}
}

func TestDecodeEnvelope_ServerErrorCarriesStatusCode(t *testing.T) {
	_, err := DecodeEnvelope[testPayload]([]byte(`{"status":"fail"}`), 429)
	assert.Equal(t, "Server error with status code: 429", err.Error())
}

func TestLenientString(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
		ok       bool
	}{
		{`"42.5"`, "42.5", true},
		{`42.5`, "42.5", true},
		{`1e3`, "1e3", true},
		{`null`, "", false},
		{``, "", false},
		{`true`, "", false},
		{`{"a":1}`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			value, ok := LenientString(json.RawMessage(tt.raw))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestLenientInt64(t *testing.T) {
	tests := []struct {
		raw      string
		expected int64
		ok       bool
	}{
		{`1`, 1, true},
		{`"17"`, 17, true},
		{`" 17 "`, 17, true},
		{`1330214400.9`, 1330214400, true},
		{`"abc"`, 0, false},
		{`null`, 0, false},
		{`[1]`, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			value, ok := LenientInt64(json.RawMessage(tt.raw))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestLenientStrings(t *testing.T) {
	values, ok := LenientStrings(json.RawMessage(`["50000", null, 50500, false]`), "0.0")
	assert.True(t, ok)
	assert.Equal(t, []string{"50000", "0.0", "50500", "0.0"}, values)

	_, ok = LenientStrings(json.RawMessage(`null`), "0.0")
	assert.False(t, ok)

	_, ok = LenientStrings(json.RawMessage(`"50000"`), "0.0")
	assert.False(t, ok)

	empty, ok := LenientStrings(json.RawMessage(`[]`), "0.0")
	assert.True(t, ok)
	assert.Empty(t, empty)
}
