package models

// EpisodeStatus represents the processing state of an episode
type EpisodeStatus string

const (
	EpisodeStatusPending    EpisodeStatus = "pending"
	EpisodeStatusProcessing EpisodeStatus = "processing"
	EpisodeStatusReady      EpisodeStatus = "ready"
	EpisodeStatusFailed     EpisodeStatus = "failed"
)

// Episode represents one video in the library
type Episode struct {
	ID              int           `json:"id"`
	Title           string        `json:"title"`
	Language        string        `json:"language"`
	DurationSeconds int           `json:"durationSeconds"`
	VideoPath       string        `json:"videoPath"`
	SubtitlePath    string        `json:"-"` // Internal path to the uploaded .srt file
	Status          EpisodeStatus `json:"status"`
}

// VideoSegment is a fixed-duration chunk of an episode presented as one learning unit
type VideoSegment struct {
	ID           int `json:"id"`
	EpisodeID    int `json:"episodeId"`
	SegmentIndex int `json:"segmentIndex"`
	StartSeconds int `json:"startSeconds"`
	EndSeconds   int `json:"endSeconds"`
}

// EpisodeDetail is an episode together with its segment list
type EpisodeDetail struct {
	Episode
	Segments []VideoSegment `json:"segments"`
}
