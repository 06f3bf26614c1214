package resume

import (
	"time"

	"github.com/google/uuid"
)

// Resume holds the extracted text and parsed skills of an uploaded resume.
// Immutable once processed except for ATS score refreshes.
type Resume struct {
	ID          uuid.UUID
	CandidateID uuid.UUID

	ExtractedText string
	Skills        []string
	ATSScore      int

	UploadedAt time.Time
}
