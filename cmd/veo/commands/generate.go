package commands

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vivekmathapati01/google-clients/pkg/cli"
	"github.com/vivekmathapati01/google-clients/pkg/history"
	"github.com/vivekmathapati01/google-clients/pkg/storage"
	"github.com/vivekmathapati01/google-clients/pkg/veo"
)

const (
	samplePrompt = "A serene sunset over mountains with clouds moving slowly across the sky"
	sampleOutput = "test_video.mp4"
)

// Error kinds for failures after a successful predict call.
const (
	errorKindEmptyVideo = "empty_video"
	errorKindStorage    = "storage"
)

type generateOptions struct {
	requestFile string
	payloadFile string
	model       string
	aspectRatio string
	duration    string
	output      string
	dryRun      bool
	noHistory   bool
	s3          storage.S3Config
}

var generateOpts generateOptions

var generateCmd = &cobra.Command{
	Use:   "generate [prompt]",
	Short: "Generate a video from a text prompt",
	Long: `Generate a video with a Veo model and save it as MP4.

Without a prompt the built-in sample prompt is used and the result is
written to test_video.mp4. Failures are logged and leave no output file.

Examples:
  veo generate
  veo generate "A fox running through snow" -o fox.mp4 --duration 8s
  veo generate -f request.yaml --model veo-3.0-fast
  veo generate --payload body.json --dry-run
  veo generate "Waves" --s3-bucket my-videos --s3-prefix renders`,
	RunE: runGenerate,
}

// generateResult is printed after each run.
type generateResult struct {
	ID        string `json:"id,omitempty" yaml:"id,omitempty"`
	Status    string `json:"status" yaml:"status"`
	Model     string `json:"model" yaml:"model"`
	Bytes     int    `json:"bytes,omitempty" yaml:"bytes,omitempty"`
	Output    string `json:"output,omitempty" yaml:"output,omitempty"`
	ErrorKind string `json:"error_kind,omitempty" yaml:"error_kind,omitempty"`
	Elapsed   string `json:"elapsed" yaml:"elapsed"`
}

// dryRunResult shows what would be sent.
type dryRunResult struct {
	URL  string `json:"url" yaml:"url"`
	Body any    `json:"body" yaml:"body"`
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, err := getContext()
	if err != nil {
		return err
	}
	printVerbose("Using context: %s", ctx.Name)

	req, err := buildRequest(args)
	if err != nil {
		return err
	}

	client := veo.NewClient(ctx.VeoConfig(),
		veo.WithTimeout(ctx.TimeoutDuration()),
		veo.WithLogger(slog.Default()),
	)
	modelID := client.Config().ModelID(req.Model)

	if generateOpts.dryRun {
		return outputResult(dryRunResult{
			URL:  client.MaskedEndpoint(req.Model),
			Body: veo.BuildRequestBody(req),
		}, "")
	}

	if err := client.Config().Validate(); err != nil {
		return err
	}

	store, err := outputStore()
	if err != nil {
		return fmt.Errorf("output store: %w", err)
	}
	outPath := filepath.Base(generateOpts.output)

	if !isJSONOutput() {
		cli.PrintInfo("Generating %s video (%s) with %s", req.Duration, req.AspectRatio, modelID)
	}
	start := time.Now()
	video, genErr := client.GenerateVideo(cmd.Context(), req)
	result := generateResult{Model: modelID}

	rec := history.Record{
		Prompt:      req.Prompt,
		Model:       modelID,
		AspectRatio: req.AspectRatio,
		Duration:    req.Duration,
	}

	fail := func(kind string) {
		result.Status = history.StatusFailed
		result.ErrorKind = kind
		rec.Status = history.StatusFailed
		rec.ErrorKind = kind
	}

	switch {
	case genErr != nil:
		client.LogFailure(genErr)
		fail("")
		if e, ok := veo.AsError(genErr); ok {
			fail(string(e.Kind))
			rec.StatusCode = e.StatusCode
		}
	case len(video.Data) == 0:
		slog.Error("video generation returned an empty video", "model", modelID)
		fail(errorKindEmptyVideo)
	default:
		uri, err := storage.Save(cmd.Context(), store, outPath, video.Data)
		if err != nil {
			slog.Error("failed to save video", "path", store.URI(outPath), "error", err)
			fail(errorKindStorage)
			break
		}
		result.Status = history.StatusOK
		result.Bytes = len(video.Data)
		result.Output = uri
		rec.Status = history.StatusOK
		rec.Bytes = int64(len(video.Data))
		rec.Output = uri
	}

	elapsed := time.Since(start)
	result.Elapsed = cli.FormatDuration(elapsed)
	rec.ElapsedMS = elapsed.Milliseconds()

	if !generateOpts.noHistory {
		if id, err := recordHistory(cmd.Context(), rec); err != nil {
			slog.Debug("record history", "error", err)
			if !isJSONOutput() {
				cli.PrintWarning("History not recorded: %v", err)
			}
		} else {
			result.ID = id
		}
	}

	if isJSONOutput() {
		return outputResult(result, "")
	}
	if result.Status == history.StatusFailed {
		cli.PrintError("video generation failed (%s)", result.ErrorKind)
		if e, ok := veo.AsError(genErr); ok && e.IsServerError() {
			cli.PrintInfo("The service returned %d; the request may succeed later", e.StatusCode)
		}
		return nil
	}
	cli.PrintSuccess("Video saved to %s", result.Output)
	cli.PrintField("Model", result.Model)
	cli.PrintField("Size", cli.FormatBytes(int64(result.Bytes)))
	cli.PrintField("Elapsed", result.Elapsed)
	if result.ID != "" {
		cli.PrintField("History ID", result.ID)
	}
	return nil
}

// buildRequest merges the request file, the payload file, flags and the
// positional prompt, in increasing precedence.
func buildRequest(args []string) (*veo.Request, error) {
	req := &veo.Request{}
	if generateOpts.requestFile != "" {
		if err := cli.LoadRequest(generateOpts.requestFile, req); err != nil {
			return nil, err
		}
	}
	if generateOpts.payloadFile != "" {
		data, err := cli.LoadPayload(generateOpts.payloadFile)
		if err != nil {
			return nil, err
		}
		req.Data = data
	}
	if prompt := strings.TrimSpace(strings.Join(args, " ")); prompt != "" {
		req.Prompt = prompt
	}
	if req.Prompt == "" && req.Data == nil {
		req.Prompt = samplePrompt
	}
	if generateOpts.model != "" {
		req.Model = generateOpts.model
	}
	if generateOpts.aspectRatio != "" {
		req.AspectRatio = generateOpts.aspectRatio
	}
	if generateOpts.duration != "" {
		req.Duration = generateOpts.duration
	}
	if req.AspectRatio == "" {
		req.AspectRatio = veo.DefaultAspectRatio
	}
	if req.Duration == "" {
		req.Duration = veo.DefaultDuration
	}
	return req, nil
}

// outputStore returns S3 when a bucket is given, else the directory of
// the output file.
func outputStore() (storage.FileStore, error) {
	if generateOpts.s3.Bucket != "" {
		s3, err := storage.NewS3FromConfig(generateOpts.s3)
		if err != nil {
			return nil, err
		}
		return s3, nil
	}
	local, err := storage.NewLocal(filepath.Dir(generateOpts.output))
	if err != nil {
		return nil, err
	}
	return local, nil
}

func recordHistory(ctx context.Context, rec history.Record) (string, error) {
	store, err := openHistory()
	if err != nil {
		return "", err
	}
	defer store.Close()

	rec, err = store.Add(ctx, rec)
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func init() {
	f := generateCmd.Flags()
	f.StringVarP(&generateOpts.requestFile, "file", "f", "", "request file (YAML or JSON)")
	f.StringVar(&generateOpts.payloadFile, "payload", "", "raw predict body file, sent verbatim")
	f.StringVarP(&generateOpts.model, "model", "m", "", "model name or identifier")
	f.StringVar(&generateOpts.aspectRatio, "aspect-ratio", "", "aspect ratio (default 16:9)")
	f.StringVar(&generateOpts.duration, "duration", "", "clip duration (default 5s)")
	f.StringVarP(&generateOpts.output, "output", "o", sampleOutput, "output file")
	f.BoolVar(&generateOpts.dryRun, "dry-run", false, "print the endpoint and body without sending")
	f.BoolVar(&generateOpts.noHistory, "no-history", false, "do not record this run")
	f.StringVar(&generateOpts.s3.Bucket, "s3-bucket", "", "upload to this S3 bucket instead of local disk")
	f.StringVar(&generateOpts.s3.Prefix, "s3-prefix", "", "S3 key prefix")
	f.StringVar(&generateOpts.s3.Region, "s3-region", "", "S3 region (default $AWS_REGION)")
	f.StringVar(&generateOpts.s3.Endpoint, "s3-endpoint", "", "S3-compatible endpoint URL")
}
