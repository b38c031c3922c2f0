package pool

import (
	"net"
	"net/http"
	"time"
)

// HTTPClientPool provides a shared HTTP client with connection pooling,
// used for every outbound origin fetch.
type HTTPClientPool struct {
	client *http.Client
}

// NewHTTPClientPool creates an HTTP client tuned for media origins:
// generous idle pool, keep-alives, HTTP/2. requestTimeout bounds an
// entire fetch including the body copy; redirects are followed with the
// transport's default limit.
func NewHTTPClientPool(requestTimeout time.Duration) *HTTPClientPool {
	return &HTTPClientPool{
		client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				MaxConnsPerHost:     50,
				IdleConnTimeout:     90 * time.Second,

				DialContext: (&net.Dialer{
					Timeout:   30 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,

				TLSHandshakeTimeout:   10 * time.Second,
				ForceAttemptHTTP2:     true,
				ResponseHeaderTimeout: 30 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,

				// Media payloads are already compressed; asking origins
				// to gzip them just burns CPU on both ends.
				DisableCompression: true,
			},
			Timeout: requestTimeout,
		},
	}
}

// Client returns the underlying HTTP client
func (p *HTTPClientPool) Client() *http.Client {
	return p.client
}

// Close closes all idle connections
func (p *HTTPClientPool) Close() {
	p.client.CloseIdleConnections()
}
