package models

import "time"

// Profile is a learner identity. Sessions and answer history hang off it.
type Profile struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// QuizSession is the persisted record of one quiz session. Counts mirror the
// in-memory engine score and are written on every answer so a crash loses at
// most the in-flight round.
type QuizSession struct {
	ID           string     `json:"id"`
	ProfileID    int64      `json:"profile_id"`
	CorrectCount int        `json:"correct_count"`
	TotalCount   int        `json:"total_count"`
	StartedAt    time.Time  `json:"started_at"`
	EndedAt      *time.Time `json:"ended_at,omitempty"`
}

// Answer is one judged choice within a session.
type Answer struct {
	ID         int64     `json:"id"`
	SessionID  string    `json:"session_id"`
	Syllable   string    `json:"syllable"`
	Chosen     string    `json:"chosen"`
	Correct    bool      `json:"correct"`
	AnsweredAt time.Time `json:"answered_at"`
}

// AnswerFilter narrows answer-history queries.
type AnswerFilter struct {
	ProfileID int64
	SessionID string
	Syllable  string
	Correct   *bool
	Limit     int
	Offset    int
}

// SyllableStat is per-syllable accuracy over a profile's history.
type SyllableStat struct {
	Syllable string  `json:"syllable"`
	Attempts int     `json:"attempts"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}

// FilterSelection is the user's vowel/consonant choice as sent by the
// client. Either Consonants is set explicitly (non-nil, possibly empty) or
// the three toggles are resolved against the catalog.
type FilterSelection struct {
	VowelIDs      []string `json:"vowels"`
	Consonants    []string `json:"consonants,omitempty"`
	IncludeBase   bool     `json:"include_base"`
	IncludeDagesh bool     `json:"include_dagesh"`
	IncludeFinal  bool     `json:"include_final"`
}
