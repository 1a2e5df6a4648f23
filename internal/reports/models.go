package reports

import (
	"time"

	"github.com/google/uuid"
)

// ReportStatus tracks moderation state. Reports start Pending and move to
// Verified or Rejected by explicit moderator action only.
type ReportStatus string

const (
	StatusPending  ReportStatus = "Pending"
	StatusVerified ReportStatus = "Verified"
	StatusRejected ReportStatus = "Rejected"
)

// ModerationAction optionally promotes the reported code onto a list
type ModerationAction string

const (
	ActionNone         ModerationAction = ""
	ActionAddSafe      ModerationAction = "add_safe"
	ActionAddBlacklist ModerationAction = "add_blacklist"
)

// Report is a community submission about a suspicious code or message
type Report struct {
	ID        uuid.UUID    `json:"id"`
	Type      string       `json:"report_type"`
	Content   string       `json:"content"`
	Location  string       `json:"location"`
	Username  string       `json:"username"`
	Timestamp time.Time    `json:"timestamp"`
	Status    ReportStatus `json:"status"`
	Lat       *float64     `json:"lat"`
	Lon       *float64     `json:"lon"`
}

// MobileReport is the lightweight record appended by the mobile app
type MobileReport struct {
	ID        int64  `json:"id"`
	Type      string `json:"type"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
	Source    string `json:"source"`
}

// SubmitRequest is the community report submission payload
type SubmitRequest struct {
	Type     string `json:"report_type" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Location string `json:"location"`
	Username string `json:"username"`
}

// ListQuery filters the community report listing. Status is validated so a
// typo'd filter returns 400 instead of a silently empty page.
type ListQuery struct {
	Status string `form:"status" binding:"omitempty,report_status"`
}

// ModerateRequest is the moderation payload
type ModerateRequest struct {
	ID     uuid.UUID        `json:"id" binding:"required"`
	Status ReportStatus     `json:"status" binding:"required,oneof=Verified Rejected"`
	Action ModerationAction `json:"action" binding:"omitempty,oneof=add_safe add_blacklist"`
}

// MobileSubmitRequest is the mobile report payload (query or form encoded)
type MobileSubmitRequest struct {
	Code    string `form:"code" json:"code"`
	Message string `form:"message" json:"message"`
	Type    string `form:"report_type" json:"report_type"`
}
