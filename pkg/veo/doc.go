// Package veo provides a Go client for Google's Veo video generation
// models served through the Vertex AI predict endpoint.
//
// A single call sends one prompt and returns the decoded video bytes from
// the first prediction in the response.
//
// # Basic Usage
//
//	client := veo.NewClient(veo.Config{
//	    APIKey:    "your-api-key",
//	    ProjectID: "my-project",
//	    Location:  "us-central1",
//	})
//
//	video, err := client.GenerateVideo(ctx, &veo.Request{
//	    Prompt:   "A serene sunset over mountains",
//	    Duration: "10s",
//	})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("out.mp4", video.Data, 0644)
//
// # Error Handling
//
// GenerateVideo reports every failure as a *Error whose Kind tells transport
// problems apart from bad responses:
//
//	if e, ok := veo.AsError(err); ok {
//	    switch e.Kind {
//	    case veo.KindHTTPStatus:
//	        // e.StatusCode, e.Body
//	    case veo.KindResponseShape, veo.KindDecode:
//	        // the API answered but the payload was unusable
//	    }
//	}
//
// Generate keeps the older contract: failures are logged and reported as a
// nil slice.
//
//	data := client.Generate(ctx, &veo.Request{Prompt: "A cat"})
//	if data == nil {
//	    // generation failed, see logs
//	}
//
// # Raw Payloads
//
// Request.Data replaces the default instances/parameters body entirely and
// is sent as-is.
package veo
