package readers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// httpTimeout bounds every outbound request a reader makes; a station
// that hangs must not be allowed to hold up the rest of a run.
const httpTimeout = 5 * time.Second

// userAgent is sent to stations whose APIs reject default Go clients.
const userAgent = "Mozilla/5.0 (compatible; wxgatherer/1.0)"

// sharedClient is safe to use concurrently across every reader instance;
// only the Reader itself must be constructed fresh per station.
var sharedClient = &http.Client{Timeout: httpTimeout}

var acceptableStatus = map[int]bool{
	http.StatusOK:        true,
	http.StatusCreated:   true,
	http.StatusNoContent: true,
}

// Get issues a GET request to url with a Mozilla user agent, returning the
// response body as a string. Any status code outside {200, 201, 204} is
// treated as a failure.
func Get(ctx context.Context, url string) (string, error) {
	return GetWithHeaders(ctx, url, nil)
}

// GetWithHeaders is Get plus caller-supplied headers, layered on top of
// (never replacing) the default User-Agent — for sources such as
// WeatherLink v2 that authenticate via a header rather than a query
// parameter.
func GetWithHeaders(ctx context.Context, url string, headers map[string]string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return doRequest(req)
}

// PostForm issues a POST request with url-encoded form values.
func PostForm(ctx context.Context, url string, body io.Reader) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return doRequest(req)
}

func doRequest(req *http.Request) (string, error) {
	resp, err := sharedClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if !acceptableStatus[resp.StatusCode] {
		return "", fmt.Errorf("unexpected status %d from %s: %s", resp.StatusCode, req.URL, string(data))
	}

	return string(data), nil
}
