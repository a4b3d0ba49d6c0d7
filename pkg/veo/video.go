package veo

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
)

// predictionField is the prediction key holding the base64 video.
const predictionField = "bytesB64Encoded"

// BuildRequestBody returns the body sent for req: req.Data when set,
// otherwise a PredictRequest with one instance and one sample.
func BuildRequestBody(req *Request) any {
	if req.Data != nil {
		return req.Data
	}
	return &PredictRequest{
		Instances: []Instance{{Prompt: req.Prompt}},
		Parameters: Parameters{
			SampleCount:    1,
			AspectRatio:    req.aspectRatio(),
			Duration:       req.duration(),
			OutputMIMEType: OutputMIMEType,
		},
	}
}

// GenerateVideo sends one predict request and returns the decoded video
// from the first prediction.
//
// Every failure, including a panic inside the call, is returned as a
// *Error; see ErrorKind for the classification.
//
// Example:
//
//	video, err := client.GenerateVideo(ctx, &veo.Request{
//	    Prompt:      "A cat walking in a garden",
//	    AspectRatio: "9:16",
//	})
func (c *Client) GenerateVideo(ctx context.Context, req *Request) (video *Video, err error) {
	defer func() {
		if r := recover(); r != nil {
			video = nil
			err = newError(KindUnexpected, "panic during generation", fmt.Errorf("%v", r))
		}
	}()

	if req == nil {
		return nil, newError(KindUnexpected, "nil request", nil)
	}

	modelID := c.config.ModelID(req.Model)
	body := BuildRequestBody(req)

	c.logger.Info("sending video generation request",
		"prompt", truncate(req.Prompt, 100),
		"model", modelID)
	c.logger.Info("video parameters",
		"aspect_ratio", req.aspectRatio(),
		"duration", req.duration(),
		"custom_payload", req.Data != nil)
	c.logger.Debug("predict endpoint", "url", c.endpoint(modelID, maskedKey))

	resp, err := c.http.postJSON(ctx, c.endpoint(modelID, url.QueryEscape(c.config.APIKey)), body)
	if err != nil {
		return nil, err
	}

	data, perr := decodePrediction(resp.Body)
	if perr != nil {
		perr.StatusCode = resp.StatusCode
		perr.Body = resp.Body
		return nil, perr
	}

	c.logger.Info("generated video", "bytes", len(data), "model", modelID)
	return &Video{Data: data, MIMEType: OutputMIMEType, Model: modelID}, nil
}

// Generate is GenerateVideo with failures logged and reported as nil.
// It never panics.
func (c *Client) Generate(ctx context.Context, req *Request) []byte {
	video, err := c.GenerateVideo(ctx, req)
	if err != nil {
		c.LogFailure(err)
		return nil
	}
	return video.Data
}

// LogFailure writes one error line per failure, with the response when
// there is one.
func (c *Client) LogFailure(err error) {
	e, ok := AsError(err)
	if !ok {
		c.logger.Error("video generation failed", "error", err)
		return
	}

	attrs := []any{"kind", string(e.Kind), "error", err}
	if e.StatusCode != 0 {
		attrs = append(attrs, "status", e.StatusCode)
	}

	switch e.Kind {
	case KindTransport, KindHTTPStatus:
		if e.Body != nil {
			attrs = append(attrs, "response", string(e.Body))
		}
		c.logger.Error("HTTP error during video generation", attrs...)
	case KindResponseShape, KindDecode:
		// Parse and decode failures carry the body on the error line; a
		// well-formed body missing the payload only goes to debug.
		if e.Err != nil && e.Body != nil {
			attrs = append(attrs, "response", string(e.Body))
			c.logger.Error("failed to parse video generation response", attrs...)
			return
		}
		c.logger.Error("failed to parse video generation response", attrs...)
		if e.Body != nil {
			c.logger.Debug("full response", "body", string(e.Body))
		}
	default:
		c.logger.Error("unexpected error during video generation", attrs...)
	}
}

// decodePrediction extracts and decodes predictions[0].bytesB64Encoded.
func decodePrediction(body []byte) ([]byte, *Error) {
	var resp struct {
		Predictions []map[string]json.RawMessage `json:"predictions"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, newError(KindResponseShape, "malformed response", err)
	}
	if len(resp.Predictions) == 0 {
		return nil, newError(KindResponseShape, "response missing 'predictions' or list is empty", nil)
	}

	raw, ok := resp.Predictions[0][predictionField]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, newError(KindResponseShape, "prediction missing '"+predictionField+"'", nil)
	}

	var encoded string
	if err := json.Unmarshal(raw, &encoded); err != nil {
		return nil, newError(KindResponseShape, "'"+predictionField+"' is not a string", err)
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, newError(KindDecode, "invalid base64 video payload", err)
	}
	return data, nil
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
