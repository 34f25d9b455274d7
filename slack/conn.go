package slack

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
)

const (
	methodPOST  = "POST"
	contentJSON = "application/json; charset=utf-8"
)

// response is the outcome of an HTTP exchange that reached the server.
type response struct {
	status int
	body   []byte
}

// makeRequest sends body to url, retrying transport failures and 5xx answers
// up to retries times. Any other status is returned to the caller as is.
func makeRequest(ctx context.Context, url, method, contentType, userAgent string, body []byte,
	timeout time.Duration, retries int) (*response, error) {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.Header.SetMethod(method)
	req.Header.SetContentType(contentType)
	if userAgent != "" {
		req.Header.SetUserAgent(userAgent)
	}
	req.SetRequestURI(url)
	if body != nil {
		req.SetBody(body)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)
	if retries < 1 {
		retries = 1
	}
	var (
		err      error
		attempts int
	)
	for attempts < retries {
		if err = ctx.Err(); err != nil {
			break
		}
		attempts++
		if err = fasthttp.DoTimeout(req, resp, requestTimeout(ctx, timeout)); err == nil {
			code := resp.StatusCode()
			if code < fasthttp.StatusInternalServerError {
				break
			}
			err = errors.Errorf("%d: %s", code, fasthttp.StatusMessage(code))
		}
		logrus.WithError(err).WithField("attempt", attempts).Debug("Request failed")
	}
	if err != nil {
		return nil, errors.Wrapf(err, "request failed after %d attempts", attempts)
	}

	respBody := make([]byte, len(resp.Body()))
	copy(respBody, resp.Body())
	return &response{status: resp.StatusCode(), body: respBody}, nil
}

// requestTimeout shortens timeout to the context deadline, if that comes first.
func requestTimeout(ctx context.Context, timeout time.Duration) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return timeout
	}
	if left := time.Until(deadline); left < timeout {
		return left
	}
	return timeout
}
