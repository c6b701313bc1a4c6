package models

import "time"

// ProcessJobStatus represents the state of a processing job
type ProcessJobStatus string

const (
	ProcessJobStatusPending ProcessJobStatus = "pending"
	ProcessJobStatusRunning ProcessJobStatus = "running"
	ProcessJobStatusDone    ProcessJobStatus = "done"
	ProcessJobStatusFailed  ProcessJobStatus = "failed"
)

// ProcessJob tracks one episode processing run
type ProcessJob struct {
	ID         int              `json:"id"`
	EpisodeID  int              `json:"episodeId"`
	Status     ProcessJobStatus `json:"status"`
	Error      string           `json:"error,omitempty"`
	EnqueuedAt time.Time        `json:"enqueuedAt"`
	FinishedAt *time.Time       `json:"finishedAt,omitempty"`
}

// ProcessRequest represents a request to process an episode
type ProcessRequest struct {
	EpisodeID int `json:"episode_id"`
}
