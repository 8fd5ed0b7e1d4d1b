// internal/workers/outreach/notify-match/models.go
package notifymatch

type Input struct {
	RequesterID string `json:"requesterId"`
	ListingID   string `json:"listingId"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Subject     string `json:"subject,omitempty"`
	Reply       string `json:"reply"`
	Priority    string `json:"priority,omitempty"`
}

type Output struct {
	NotificationID string `json:"notificationId"`
	Status         string `json:"status"` // "sent", "failed", "disabled"
	EmailSent      bool   `json:"emailSent"`
	SMSSent        bool   `json:"smsSent"`
	SentAt         string `json:"sentAt"` // ISO 8601
}

const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)
