// Package catalog holds the CSV catalogue of scanned videos: its record schema,
// loading and atomic saving, and the merge of a new scan into prior results.
package catalog

import (
	"fmt"
	"strings"

	"github.com/lepinkainen/videocatalog/types"
)

// Headers is the column order of the catalogue file
var Headers = []string{
	"name",
	"size",
	"duration",
	"collection",
	"cast",
	"tags",
	"path",
	"bitrate",
	"create_time",
	"fps",
	"resolution",
	"audio_bitrate",
	"audio_channels",
	"audio_sampling_rate",
	"comment",
}

// Record is one catalogue row describing a single video file.
// Path is the unique key.
type Record struct {
	Name              string
	Size              string
	Duration          string
	Collection        string
	Cast              string
	Tags              string
	Path              string
	Bitrate           string
	CreateTime        string
	FPS               string
	Resolution        string
	AudioBitrate      string
	AudioChannels     string
	AudioSamplingRate string
	Comment           string
}

// Probed reports whether the technical fields were filled by a successful probe
func (r Record) Probed() bool {
	return r.Duration != "" && r.Duration != types.UnknownText
}

// Row returns the record's values in Headers order
func (r Record) Row() []string {
	return []string{
		r.Name,
		r.Size,
		r.Duration,
		r.Collection,
		r.Cast,
		r.Tags,
		r.Path,
		r.Bitrate,
		r.CreateTime,
		r.FPS,
		r.Resolution,
		r.AudioBitrate,
		r.AudioChannels,
		r.AudioSamplingRate,
		r.Comment,
	}
}

// field returns a pointer to the record field for a header name
func (r *Record) field(header string) *string {
	switch header {
	case "name":
		return &r.Name
	case "size":
		return &r.Size
	case "duration":
		return &r.Duration
	case "collection":
		return &r.Collection
	case "cast":
		return &r.Cast
	case "tags":
		return &r.Tags
	case "path":
		return &r.Path
	case "bitrate":
		return &r.Bitrate
	case "create_time":
		return &r.CreateTime
	case "fps":
		return &r.FPS
	case "resolution":
		return &r.Resolution
	case "audio_bitrate":
		return &r.AudioBitrate
	case "audio_channels":
		return &r.AudioChannels
	case "audio_sampling_rate":
		return &r.AudioSamplingRate
	case "comment":
		return &r.Comment
	}
	return nil
}

// columnMap resolves a header row to record fields, ignoring unknown columns
type columnMap []string

func newColumnMap(header []string) (columnMap, error) {
	cols := make(columnMap, len(header))
	hasPath := false
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if (&Record{}).field(h) != nil {
			cols[i] = h
		}
		if h == "path" {
			hasPath = true
		}
	}
	if !hasPath {
		return nil, fmt.Errorf("header has no path column: %v", header)
	}
	return cols, nil
}

func (c columnMap) record(row []string) Record {
	var r Record
	for i, value := range row {
		if i >= len(c) || c[i] == "" {
			continue
		}
		*r.field(c[i]) = value
	}
	return r
}
