package video

import "github.com/lepinkainen/videocatalog/types"

// Metadata contains the technical values extracted from a video file by ffprobe.
// Every field is unknown when ffprobe did not report it.
type Metadata struct {
	Duration        types.Value // HH:MM:SS
	Bitrate         types.Value // e.g. 4500kbps
	Resolution      types.Value // e.g. 1920x1080
	ResolutionLabel types.Value // e.g. 1080p
	FPS             types.Value // e.g. 29.97 fps
	AudioBitrate    types.Value // e.g. 128kbps
	AudioChannels   types.Value // e.g. 2
	AudioSampleRate types.Value // e.g. 48.0 kHz
	Comment         types.Value // container comment tag
}

// UnknownMetadata returns metadata with every field unknown
func UnknownMetadata() *Metadata {
	return &Metadata{}
}
