package coinranking_common

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// envelope is the top level shape of every CoinRanking response
type envelope struct {
	Status *string         `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// DecodeEnvelope decodes the {status, data} envelope strictly and data into T.
// A status other than "success" is reported as a server error carrying
// statusCode even when the body decodes.
func DecodeEnvelope[T any](body []byte, statusCode int) (T, error) {
	var zero T

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return zero, NewDecodingError(err)
	}
	if env.Status == nil {
		return zero, NewDecodingError(errors.New("missing status field"))
	}
	if *env.Status != STATUS_SUCCESS {
		return zero, NewServerError(statusCode)
	}
	if isNull(env.Data) {
		return zero, NewDecodingError(errors.New("missing data field"))
	}

	var data T
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return zero, NewDecodingError(err)
	}
	return data, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// LenientString decodes a JSON string, or a number rendered as its literal.
// ok is false for absent, null or any other JSON type.
func LenientString(raw json.RawMessage) (string, bool) {
	if isNull(raw) {
		return "", false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), true
	}
	return "", false
}

// LenientInt64 decodes a JSON integer, or a string holding one.
// Fractional numbers are truncated.
func LenientInt64(raw json.RawMessage) (int64, bool) {
	if isNull(raw) {
		return 0, false
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return parseInt64(n.String())
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return parseInt64(strings.TrimSpace(s))
	}
	return 0, false
}

func parseInt64(s string) (int64, bool) {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f), true
	}
	return 0, false
}

// LenientStrings decodes an array of lenient strings. Elements that are
// null or of another type become fallback. ok is false when raw is not an array.
func LenientStrings(raw json.RawMessage, fallback string) ([]string, bool) {
	if isNull(raw) {
		return nil, false
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}

	result := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := LenientString(item); ok {
			result = append(result, s)
		} else {
			result = append(result, fallback)
		}
	}
	return result, true
}
