package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type ShortlistEvent struct {
	Type          string `json:"type"`
	JobID         string `json:"job_id"`
	ApplicationID string `json:"application_id"`
	CandidateID   string `json:"candidate_id"`
	MatchScore    int    `json:"match_score"`
	Timestamp     string `json:"timestamp"`
}

// Notifier broadcasts screening decisions to connected recruiters. A nil
// receiver or marshal failure drops the event silently.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) NotifyShortlisted(jobID, applicationID, candidateID uuid.UUID, matchScore int) {
	if n == nil || n.hub == nil {
		return
	}

	evt := ShortlistEvent{
		Type:          "candidate_shortlisted",
		JobID:         jobID.String(),
		ApplicationID: applicationID.String(),
		CandidateID:   candidateID.String(),
		MatchScore:    matchScore,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	n.hub.Broadcast(b)
}
