package coinranking_common

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// IHttpStatusHandler receives the outcome of every executed request
type IHttpStatusHandler interface {
	// OnRequest handles a request with its status label and duration
	OnRequest(status string, duration time.Duration)
}

// ClientOptions configures the HTTP client
type ClientOptions struct {
	ConnectionTimeout time.Duration // Timeout for establishing connection
	RequestTimeout    time.Duration // Total request timeout including reading response
}

// DefaultClientOptions returns default client options
func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		ConnectionTimeout: 10 * time.Second,
		RequestTimeout:    30 * time.Second,
	}
}

// HTTPClient executes CoinRanking requests and classifies their failures.
// It never retries, the caller decides what to do with an error.
type HTTPClient struct {
	Client        *http.Client
	Opts          ClientOptions
	StatusHandler IHttpStatusHandler
	Limiter       *rate.Limiter
	logger        *zap.Logger
}

// NewHTTPClient creates a new HTTP client. handler and limiter may be nil.
func NewHTTPClient(opts ClientOptions, handler IHttpStatusHandler, limiter *rate.Limiter, logger *zap.Logger) *HTTPClient {
	client := &http.Client{
		Timeout: opts.RequestTimeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout: opts.ConnectionTimeout,
			}).DialContext,
			TLSHandshakeTimeout: opts.ConnectionTimeout,
		},
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &HTTPClient{
		Client:        client,
		Opts:          opts,
		StatusHandler: handler,
		Limiter:       limiter,
		logger:        logger,
	}
}

// SetStatusHandler sets the status handler for this client
func (c *HTTPClient) SetStatusHandler(handler IHttpStatusHandler) {
	c.StatusHandler = handler
}

// ExecuteRequest executes req and returns the response body and status code.
// Any status outside 200-299 is returned as a KindServerError together with
// the body that was read.
func (c *HTTPClient) ExecuteRequest(req *http.Request) ([]byte, int, time.Duration, error) {
	requestID := uuid.NewString()
	log := c.logger.With(zap.String("request_id", requestID), zap.String("url", req.URL.Path))
	log.Debug("executing request", zap.String("curl", CurlCommand(req)))

	requestStart := time.Now()

	if c.Limiter != nil {
		if err := c.Limiter.Wait(req.Context()); err != nil {
			netErr := ClassifyError(fmt.Errorf("rate limiter wait failed: %w", limiterCause(req, err)))
			c.report(netErr, time.Since(requestStart))
			return nil, 0, time.Since(requestStart), netErr
		}
	}

	resp, err := c.Client.Do(req)
	requestDuration := time.Since(requestStart)
	if err != nil {
		netErr := ClassifyError(err)
		log.Warn("request failed",
			zap.Duration("duration", requestDuration),
			zap.String("kind", netErr.Kind.String()),
			zap.Error(err))
		c.report(netErr, requestDuration)
		return nil, 0, requestDuration, netErr
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		netErr := ClassifyError(fmt.Errorf("error reading response: %w", err))
		c.report(netErr, requestDuration)
		return nil, resp.StatusCode, requestDuration, netErr
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("request returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.Duration("duration", requestDuration),
			zap.ByteString("body", truncate(body, 512)))
		netErr := NewServerError(resp.StatusCode)
		c.report(netErr, requestDuration)
		return body, resp.StatusCode, requestDuration, netErr
	}

	log.Debug("request succeeded",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", requestDuration),
		zap.Int("bytes", len(body)))
	c.report(nil, requestDuration)
	return body, resp.StatusCode, requestDuration, nil
}

func (c *HTTPClient) report(err error, duration time.Duration) {
	if c.StatusHandler != nil {
		c.StatusHandler.OnRequest(StatusLabel(err), duration)
	}
}

// limiterCause maps a limiter wait failure to the context error behind it.
// A wait that would overrun the deadline counts as a timeout.
func limiterCause(req *http.Request, err error) error {
	ctx := req.Context()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if _, ok := ctx.Deadline(); ok {
		return context.DeadlineExceeded
	}
	return err
}

func truncate(body []byte, limit int) []byte {
	if len(body) <= limit {
		return body
	}
	return body[:limit]
}
