package models

import "time"

// GameSession tracks a user's progress through an episode
type GameSession struct {
	ID           int       `json:"id"`
	UserID       int       `json:"userId"`
	EpisodeID    int       `json:"episodeId"`
	SegmentIndex int       `json:"segmentIndex"`
	Completed    bool      `json:"completed"`
	StartedAt    time.Time `json:"startedAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SessionProgress holds per-word answer state within a session
type SessionProgress struct {
	SessionID int  `json:"sessionId"`
	WordID    int  `json:"wordId"`
	Correct   bool `json:"correct"`
	Attempts  int  `json:"attempts"`
}

// SessionDetail is a session together with its progress map keyed by word ID
type SessionDetail struct {
	GameSession
	Progress map[int]SessionProgress `json:"progress"`
}

// StartSessionRequest represents a request to start or resume a session
type StartSessionRequest struct {
	EpisodeID int `json:"episode_id"`
}

// AnswerRequest represents a vocabulary answer submission within a session
type AnswerRequest struct {
	WordID  int  `json:"word_id"`
	Correct bool `json:"correct"`
}
