package models

import "time"

// VocabularyWord represents a dictionary entry in the target language
type VocabularyWord struct {
	ID          int       `json:"id"`
	Lemma       string    `json:"lemma"`
	Translation string    `json:"translation"`
	Language    string    `json:"language"` // ISO 639-1 code, e.g. "de"
	Level       CEFRLevel `json:"level"`
	Frequency   int       `json:"frequency"` // Corpus frequency rank, higher = more common
}

// UserWord represents a user's knowledge state for a dictionary word
type UserWord struct {
	UserID   int       `json:"userId"`
	WordID   int       `json:"wordId"`
	Known    bool      `json:"known"`
	MarkedAt time.Time `json:"markedAt"`
}

// BlockingWord is a word in a video segment judged too difficult for the learner
type BlockingWord struct {
	VocabularyWord
	Occurrences int `json:"occurrences"` // Times the word appears in the segment
}

// MarkWordsRequest represents a request to mark words known or unknown
type MarkWordsRequest struct {
	WordIDs []int `json:"word_ids"`
}

// LevelStats holds known/total word counts for one CEFR level
type LevelStats struct {
	Level CEFRLevel `json:"level"`
	Known int       `json:"known"`
	Total int       `json:"total"`
}

// WordUpsertRequest represents an admin create/update request for a dictionary word
type WordUpsertRequest struct {
	Lemma       string    `json:"lemma"`
	Translation string    `json:"translation"`
	Language    string    `json:"language"`
	Level       CEFRLevel `json:"level"`
	Frequency   int       `json:"frequency"`
}
