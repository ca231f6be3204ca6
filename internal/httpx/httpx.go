package httpx

import (
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Client is a small wrapper around http.Client with sane defaults. It
// attaches UserAgent and Headers to every request that does not set them.
type Client struct {
	HTTP      *http.Client
	UserAgent string
	Headers   map[string]string
	Logger    *zap.Logger
}

func New(timeout time.Duration, userAgent string) *Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 3 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		MaxIdleConns:          20,
		MaxIdleConnsPerHost:   10,
		ForceAttemptHTTP2:     true,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   3 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		// The 5m/1h/6h datasets are several MB.
		ResponseHeaderTimeout: 15 * time.Second,
	}
	return &Client{
		HTTP:      &http.Client{Timeout: timeout, Transport: transport},
		UserAgent: userAgent,
		Logger:    zap.NewNop(),
	}
}

// Do sends req. It satisfies the HTTPClient interfaces of the API clients.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.UserAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	for k, v := range c.Headers {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}

	start := time.Now()
	res, err := c.HTTP.Do(req)
	if c.Logger != nil {
		if err != nil {
			c.Logger.Debug("request failed", zap.String("url", req.URL.String()), zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		} else {
			c.Logger.Debug("request done", zap.String("url", req.URL.String()), zap.Int("status", res.StatusCode), zap.Duration("elapsed", time.Since(start)))
		}
	}
	return res, err
}
