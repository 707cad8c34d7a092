package domain

// ReviewStatus is the moderation state shared by classes and teacher requests.
type ReviewStatus string

const (
	StatusPending  ReviewStatus = "Pending"
	StatusAccepted ReviewStatus = "Accepted"
	StatusRejected ReviewStatus = "Rejected"
)

func ParseReviewStatus(s string) (ReviewStatus, error) {
	switch st := ReviewStatus(s); st {
	case StatusPending, StatusAccepted, StatusRejected:
		return st, nil
	default:
		return "", ErrInvalidStatus
	}
}
