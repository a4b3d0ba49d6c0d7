package veo

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
)

// httpClient sends predict requests.
type httpClient struct {
	client *http.Client
}

// response is a fully read HTTP response.
type response struct {
	StatusCode int
	Body       []byte
}

// postJSON marshals body, posts it to endpoint and reads the whole response.
// A non-2xx status is returned as a KindHTTPStatus error with the body
// attached.
func (h *httpClient) postJSON(ctx context.Context, endpoint string, body any) (*response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, newError(KindUnexpected, "marshal request body", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, newError(KindTransport, "create request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, newError(KindTransport, "do request", redactURLError(err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		e := newError(KindTransport, "read response body", err)
		e.StatusCode = resp.StatusCode
		return nil, e
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		e := newError(KindHTTPStatus, http.StatusText(resp.StatusCode), nil)
		e.StatusCode = resp.StatusCode
		e.Body = respBody
		return nil, e
	}

	return &response{StatusCode: resp.StatusCode, Body: respBody}, nil
}

// redactURLError drops the query string, which carries the API key, from
// errors returned by http.Client.
func redactURLError(err error) error {
	ue, ok := err.(*url.Error)
	if !ok {
		return err
	}
	u, perr := url.Parse(ue.URL)
	if perr != nil {
		return &url.Error{Op: ue.Op, URL: "(redacted)", Err: ue.Err}
	}
	u.RawQuery = ""
	return &url.Error{Op: ue.Op, URL: u.String(), Err: ue.Err}
}
