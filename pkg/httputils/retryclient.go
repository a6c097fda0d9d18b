package httputils

import (
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/ratelimit"

	"github.com/autobrr/rxrule/pkg/runtime"
)

// NewRetryableHttpClient returns a client retrying failed requests, optionally rate limited by rl.
func NewRetryableHttpClient(timeout time.Duration, rl ratelimit.Limiter) *http.Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 2
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 5 * time.Second
	retryClient.RequestLogHook = func(l retryablehttp.Logger, request *http.Request, attempt int) {
		if request != nil {
			request.Header.Set("User-Agent", "rxrule/"+runtime.Version)
		}

		if rl != nil {
			rl.Take()
		}
	}
	retryClient.HTTPClient.Timeout = timeout
	retryClient.Logger = nil
	return retryClient.StandardClient()
}
