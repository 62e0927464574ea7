package domain

import "fmt"

// Status is the pipeline state shared by jobs and applications. A job's own
// status is a user-editable mirror and is never derived from its application.
type Status string

const (
	StatusSaved     Status = "saved"
	StatusApplied   Status = "applied"
	StatusInterview Status = "interview"
	StatusOffer     Status = "offer"
	StatusRejected  Status = "rejected"
)

var statusOrder = map[Status]int{
	StatusSaved:     0,
	StatusApplied:   1,
	StatusInterview: 2,
	StatusOffer:     3,
	StatusRejected:  4,
}

func (s Status) Valid() bool {
	_, ok := statusOrder[s]
	return ok
}

// Order gives the display ordering saved < applied < interview < offer < rejected.
// Any status may still follow any other; ordering is for sorting only.
func (s Status) Order() int {
	return statusOrder[s]
}

func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", raw)}
	}
	return s, nil
}

type ArtifactType string

const (
	ArtifactTypeCV          ArtifactType = "cv"
	ArtifactTypeCoverLetter ArtifactType = "cover_letter"
	ArtifactTypeMessage     ArtifactType = "message"
)

func (t ArtifactType) Valid() bool {
	switch t {
	case ArtifactTypeCV, ArtifactTypeCoverLetter, ArtifactTypeMessage:
		return true
	}
	return false
}

func ParseArtifactType(raw string) (ArtifactType, error) {
	t := ArtifactType(raw)
	if !t.Valid() {
		return "", &ValidationError{Field: "type", Reason: fmt.Sprintf("unknown artifact type %q", raw)}
	}
	return t, nil
}

var seniorities = map[string]struct{}{
	"junior": {}, "mid": {}, "senior": {}, "lead": {}, "principal": {},
}

func ValidSeniority(s string) bool {
	_, ok := seniorities[s]
	return ok
}

var remotePreferences = map[string]struct{}{
	"remote": {}, "hybrid": {}, "onsite": {}, "any": {},
}

func ValidRemotePreference(s string) bool {
	_, ok := remotePreferences[s]
	return ok
}

// ValidRemoteType covers job postings, which have no "any" option.
func ValidRemoteType(s string) bool {
	return s == "remote" || s == "hybrid" || s == "onsite"
}
