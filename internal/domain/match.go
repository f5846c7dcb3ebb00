package domain

import (
	"github.com/google/uuid"
)

// Embedding is a fixed-length face feature vector produced by an extractor.
type Embedding []float64

// Dimension returns the number of components in the embedding.
func (e Embedding) Dimension() int {
	return len(e)
}

// MatchOutcome classifies how a recognition attempt ended.
type MatchOutcome string

const (
	OutcomeMatched                MatchOutcome = "matched"
	OutcomeNoFaceDetected         MatchOutcome = "no_face_detected"
	OutcomeNoMatchWithinTolerance MatchOutcome = "no_match_within_tolerance"
	OutcomeConfidenceBelowFloor   MatchOutcome = "confidence_below_floor"
	OutcomeIdentityUnresolved     MatchOutcome = "identity_unresolved"
)

// MatchResult is the structured answer of a recognition session.
type MatchResult struct {
	Accepted   bool         `json:"accepted"`
	Outcome    MatchOutcome `json:"outcome"`
	EmployeeID *uuid.UUID   `json:"employee_id,omitempty"`
	Identity   string       `json:"identity,omitempty"`
	Confidence float64      `json:"confidence"`
	Distance   float64      `json:"distance"`
	Reason     string       `json:"reason"`
}

// Rejected builds a non-accepted result with a human-readable reason.
func Rejected(outcome MatchOutcome, reason string) *MatchResult {
	return &MatchResult{
		Outcome: outcome,
		Reason:  reason,
	}
}
