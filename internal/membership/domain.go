// internal/membership/domain.go
package membership

import (
	"time"

	"github.com/google/uuid"
)

// MembershipType identifies the partner loyalty program a record belongs to.
type MembershipType string

const (
	TypeNaver MembershipType = "NAVER"
	TypeKakao MembershipType = "KAKAO"
	TypeLine  MembershipType = "LINE"
)

// Valid reports whether t is one of the supported partner programs.
func (t MembershipType) Valid() bool {
	switch t {
	case TypeNaver, TypeKakao, TypeLine:
		return true
	}
	return false
}

// Membership is a stored association between a user and a partner program,
// carrying an accumulated point balance. UserID and MembershipType never
// change after creation; Point only grows through the accumulate operation.
type Membership struct {
	ID             uuid.UUID      `json:"id"`
	UserID         string         `json:"user_id"`
	MembershipType MembershipType `json:"membership_type"`
	Point          int            `json:"point"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// MembershipSummary is the projection returned by registration and listing.
type MembershipSummary struct {
	ID             uuid.UUID      `json:"id"`
	MembershipType MembershipType `json:"membership_type"`
}

// MembershipDetail is the projection returned by the detail lookup.
type MembershipDetail struct {
	ID             uuid.UUID      `json:"id"`
	MembershipType MembershipType `json:"membership_type"`
	Point          int            `json:"point"`
}

func (m *Membership) summary() *MembershipSummary {
	return &MembershipSummary{ID: m.ID, MembershipType: m.MembershipType}
}

func (m *Membership) detail() *MembershipDetail {
	return &MembershipDetail{ID: m.ID, MembershipType: m.MembershipType, Point: m.Point}
}
