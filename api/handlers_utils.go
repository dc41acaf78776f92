package api

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/status-im/coin-browser/coinranking"
	cr "github.com/status-im/coin-browser/coinranking_common"
)

type errorResponse struct {
	Error string `json:"error"`
}

// sendJSONResponse is a common wrapper for JSON responses that sets Content-Type,
// Content-Length and ETag headers
func (s *Server) sendJSONResponse(w http.ResponseWriter, data interface{}) {
	s.sendJSONResponseWithStatus(w, http.StatusOK, data)
}

func (s *Server) sendJSONResponseWithStatus(w http.ResponseWriter, status int, data interface{}) {
	responseBytes, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "Error encoding response", http.StatusInternalServerError)
		return
	}

	// ETag is the MD5 hash of the response
	hash := md5.Sum(responseBytes)
	etag := hex.EncodeToString(hash[:])

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(responseBytes)))
	w.Header().Set("ETag", "\""+etag+"\"")
	w.WriteHeader(status)

	if _, err := w.Write(responseBytes); err != nil {
		s.logger.Warn("error writing response", zap.Error(err))
	}
}

func (s *Server) sendError(w http.ResponseWriter, status int, message string) {
	s.sendJSONResponseWithStatus(w, status, errorResponse{Error: message})
}

// statusForError maps a fetch error to the response status. Stale results
// are not failures from the caller's point of view.
func statusForError(err error) int {
	if err == nil || errors.Is(err, coinranking.ErrStaleResponse) {
		return http.StatusOK
	}

	var netErr *cr.NetworkError
	if !errors.As(err, &netErr) {
		return http.StatusInternalServerError
	}
	switch netErr.Kind {
	case cr.KindNoConnectivity:
		return http.StatusServiceUnavailable
	case cr.KindTimeout:
		return http.StatusGatewayTimeout
	case cr.KindServerError, cr.KindDecodingFailed, cr.KindTransportError:
		return http.StatusBadGateway
	case cr.KindUnknown:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

func getParamLowercase(r *http.Request, key string) string {
	if r == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(r.URL.Query().Get(key)))
}
