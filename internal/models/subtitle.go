package models

// SubtitleCue is one subtitle line with its display time range
type SubtitleCue struct {
	ID        int    `json:"id"`
	SegmentID int    `json:"segmentId"`
	CueIndex  int    `json:"cueIndex"`
	StartMS   int    `json:"startMs"`
	EndMS     int    `json:"endMs"`
	Text      string `json:"text"`
}
