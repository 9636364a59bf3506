package video

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/lepinkainen/videocatalog/types"
)

// DefaultProbeTimeout bounds a single ffprobe invocation
const DefaultProbeTimeout = 2 * time.Minute

// ErrProbe marks failures to run ffprobe or to understand its output
var ErrProbe = errors.New("ffprobe failed")

// Prober extracts technical metadata from a single video file
type Prober interface {
	Probe(ctx context.Context, path string) (*Metadata, error)
}

// FFprobe runs the ffprobe binary once per file and decodes its JSON output
type FFprobe struct {
	Binary  string        // defaults to "ffprobe"
	Timeout time.Duration // defaults to DefaultProbeTimeout
}

// probeOutput mirrors the parts of `ffprobe -show_format -show_streams -of json` we use
type probeOutput struct {
	Streams []probeStream `json:"streams"`
	Format  *probeFormat  `json:"format"`
}

type probeStream struct {
	CodecType  string `json:"codec_type"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	FrameRate  string `json:"r_frame_rate"`
	BitRate    string `json:"bit_rate"`
	SampleRate string `json:"sample_rate"`
	Channels   int    `json:"channels"`
}

type probeFormat struct {
	Duration string            `json:"duration"`
	BitRate  string            `json:"bit_rate"`
	Tags     map[string]string `json:"tags"`
}

// Probe runs ffprobe against path and parses the result
func (p *FFprobe) Probe(ctx context.Context, path string) (*Metadata, error) {
	binary := strings.TrimSpace(p.Binary)
	if binary == "" {
		binary = "ffprobe"
	}
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, binary, "-v", "error", "-hide_banner",
		"-show_format", "-show_streams", "-of", "json", "--", path)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: timed out after %s", ErrProbe, timeout)
		}
		return nil, fmt.Errorf("%w: %w: %s", ErrProbe, err, extractFirstLine(stderr.String()))
	}

	return ParseProbeOutput(stdout.Bytes())
}

// ParseProbeOutput converts ffprobe JSON into Metadata.
// Fields ffprobe did not report stay unknown; output without any streams or
// format section is an error.
func ParseProbeOutput(data []byte) (*Metadata, error) {
	var out probeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: invalid output: %w", ErrProbe, err)
	}
	if len(out.Streams) == 0 && out.Format == nil {
		return nil, fmt.Errorf("%w: no streams found", ErrProbe)
	}

	meta := UnknownMetadata()

	if out.Format != nil {
		if seconds, ok := parseNumber(out.Format.Duration); ok {
			meta.Duration = types.Known(FormatDuration(seconds))
		}
		if rate, ok := parseNumber(out.Format.BitRate); ok {
			meta.Bitrate = types.Known(FormatBitrate(int64(rate)))
		}
		if comment, ok := lookupTag(out.Format.Tags, "comment"); ok {
			meta.Comment = types.Known(comment)
		}
	}

	if v := firstStream(out.Streams, "video"); v != nil {
		if v.Width > 0 && v.Height > 0 {
			meta.Resolution = types.Known(fmt.Sprintf("%dx%d", v.Width, v.Height))
			meta.ResolutionLabel = types.Known(ResolutionLabel(v.Width, v.Height))
		}
		if fps, ok := ParseFrameRate(v.FrameRate); ok {
			meta.FPS = types.Known(FormatFPS(fps))
		}
	}

	if a := firstStream(out.Streams, "audio"); a != nil {
		if rate, ok := parseNumber(a.BitRate); ok && rate > 0 {
			meta.AudioBitrate = types.Known(FormatBitrate(int64(rate)))
		}
		if a.Channels > 0 {
			meta.AudioChannels = types.Known(strconv.Itoa(a.Channels))
		}
		if hz, ok := parseNumber(a.SampleRate); ok && hz > 0 {
			meta.AudioSampleRate = types.Known(FormatSampleRate(int64(hz)))
		}
	}

	return meta, nil
}

func firstStream(streams []probeStream, codecType string) *probeStream {
	for i := range streams {
		if strings.EqualFold(streams[i].CodecType, codecType) {
			return &streams[i]
		}
	}
	return nil
}

// lookupTag finds a tag regardless of case; Matroska files use upper-case keys
func lookupTag(tags map[string]string, key string) (string, bool) {
	for k, v := range tags {
		if strings.EqualFold(k, key) {
			v = strings.TrimSpace(v)
			return v, v != ""
		}
	}
	return "", false
}

// parseNumber parses ffprobe numeric strings, rejecting empty and "N/A" values
func parseNumber(value string) (float64, bool) {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" || cleaned == "N/A" {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || parsed < 0 || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0, false
	}
	return parsed, true
}

// extractFirstLine extracts just the first line from a multi-line string
func extractFirstLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > 0 && strings.TrimSpace(lines[0]) != "" {
		return strings.TrimSpace(lines[0])
	}
	return "no additional information available"
}
