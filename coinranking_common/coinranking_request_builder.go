package coinranking_common

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

// buildURL safely combines a base URL with a path
func buildURL(baseURL, path string) string {
	baseURL = strings.TrimRight(baseURL, "/")
	trimmedPath := strings.TrimLeft(path, "/")

	return baseURL + "/" + trimmedPath
}

// enforceHTTPS upgrades plain http URLs to https unless they point at a loopback host
func enforceHTTPS(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme != "http" {
		return rawURL
	}
	host := u.Hostname()
	if host == "localhost" {
		return rawURL
	}
	if ip := net.ParseIP(host); ip != nil && ip.IsLoopback() {
		return rawURL
	}
	u.Scheme = "https"
	return u.String()
}

// CoinrankingRequestBuilder implements the Builder pattern for CoinRanking API requests
type CoinrankingRequestBuilder struct {
	baseURL    string
	httpMethod string
	apiPath    string
	params     map[string]string
	apiKey     string
	userAgent  string
	headers    map[string]string
}

// NewCoinrankingRequestBuilder creates a new base request builder for CoinRanking endpoints
func NewCoinrankingRequestBuilder(baseURL, apiPath string) *CoinrankingRequestBuilder {
	rb := &CoinrankingRequestBuilder{
		baseURL:    baseURL,
		apiPath:    apiPath,
		httpMethod: http.MethodGet,
		params:     make(map[string]string),
		headers:    make(map[string]string),
		userAgent:  "coin-browser/1.0",
	}

	rb.headers["Accept"] = "application/json"

	return rb
}

// With adds a custom parameter to the URL query
func (rb *CoinrankingRequestBuilder) With(key, value string) *CoinrankingRequestBuilder {
	rb.params[key] = value
	return rb
}

// WithMethod overrides the HTTP method, GET by default
func (rb *CoinrankingRequestBuilder) WithMethod(method string) *CoinrankingRequestBuilder {
	if method != "" {
		rb.httpMethod = method
	}
	return rb
}

// WithApiKey sets the API key sent in the x-access-token header
func (rb *CoinrankingRequestBuilder) WithApiKey(apiKey string) *CoinrankingRequestBuilder {
	rb.apiKey = apiKey
	return rb
}

// WithHeader adds a custom HTTP header
func (rb *CoinrankingRequestBuilder) WithHeader(name, value string) *CoinrankingRequestBuilder {
	rb.headers[name] = value
	return rb
}

// WithUserAgent sets the User-Agent header
func (rb *CoinrankingRequestBuilder) WithUserAgent(userAgent string) *CoinrankingRequestBuilder {
	if userAgent != "" {
		rb.userAgent = userAgent
	}
	return rb
}

// BuildURL builds the complete URL for the request
func (rb *CoinrankingRequestBuilder) BuildURL() string {
	fullPath := enforceHTTPS(buildURL(rb.baseURL, rb.apiPath))

	query := url.Values{}
	for key, value := range rb.params {
		query.Add(key, value)
	}

	queryString := query.Encode()
	if queryString == "" {
		return fullPath
	}
	return fmt.Sprintf("%s?%s", fullPath, queryString)
}

// Build creates an http.Request bound to ctx
func (rb *CoinrankingRequestBuilder) Build(ctx context.Context) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, rb.httpMethod, rb.BuildURL(), nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", rb.userAgent)
	for key, value := range rb.headers {
		req.Header.Set(key, value)
	}
	if rb.apiKey != "" {
		req.Header.Set(API_KEY_HEADER, rb.apiKey)
	}

	return req, nil
}

// CurlCommand renders req as a curl command line for debug logs.
// The API key header value is redacted.
func CurlCommand(req *http.Request) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "curl -X %s %q", req.Method, req.URL.String())

	names := make([]string, 0, len(req.Header))
	for name := range req.Header {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := req.Header.Get(name)
		if strings.EqualFold(name, API_KEY_HEADER) {
			value = "<redacted>"
		}
		fmt.Fprintf(&sb, " -H %q", name+": "+value)
	}
	return sb.String()
}
