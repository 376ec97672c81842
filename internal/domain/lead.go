package domain

// LeadStatus is the telecaller funnel position of a Lead
type LeadStatus string

const (
	LeadStatusNew                 LeadStatus = "New"
	LeadStatusInterestedBooked    LeadStatus = "Interested (Booked)"
	LeadStatusInterestedNotBooked LeadStatus = "Interested (Not Booked)"
	LeadStatusNotInterested       LeadStatus = "Not Interested"
	LeadStatusFollowUp            LeadStatus = "Follow Up"
)

// StatusAll disables status filtering in lead and campaign views
const StatusAll = "All"

// LeadStatuses lists every status in display order
var LeadStatuses = []LeadStatus{
	LeadStatusNew,
	LeadStatusInterestedBooked,
	LeadStatusInterestedNotBooked,
	LeadStatusNotInterested,
	LeadStatusFollowUp,
}

// Valid reports whether s is a known status
func (s LeadStatus) Valid() bool {
	for _, known := range LeadStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Lead is a prospective customer tracked by telecallers.
// City and Category are free-text labels matched against folder names by value.
type Lead struct {
	ID               string     `json:"id" validate:"required"`
	Name             string     `json:"name" validate:"required"`
	City             string     `json:"city"`
	Category         string     `json:"category"`
	Phone            string     `json:"phone"`
	Status           LeadStatus `json:"status" validate:"leadstatus"`
	Remarks          string     `json:"remarks,omitempty"`
	MeetingDate      string     `json:"meetingDate,omitempty"`
	SocialMediaLinks []string   `json:"socialMediaLinks"`
}

// GetID implements the collection entity contract
func (l Lead) GetID() string { return l.ID }

// LeadPatch is a shallow partial update; nil fields are left untouched.
type LeadPatch struct {
	Name             *string     `json:"name,omitempty"`
	City             *string     `json:"city,omitempty"`
	Category         *string     `json:"category,omitempty"`
	Phone            *string     `json:"phone,omitempty"`
	Status           *LeadStatus `json:"status,omitempty" validate:"omitempty,leadstatus"`
	Remarks          *string     `json:"remarks,omitempty"`
	MeetingDate      *string     `json:"meetingDate,omitempty"`
	SocialMediaLinks *[]string   `json:"socialMediaLinks,omitempty"`
}

// Apply merges the patch into l
func (p LeadPatch) Apply(l *Lead) {
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.City != nil {
		l.City = *p.City
	}
	if p.Category != nil {
		l.Category = *p.Category
	}
	if p.Phone != nil {
		l.Phone = *p.Phone
	}
	if p.Status != nil {
		l.Status = *p.Status
	}
	if p.Remarks != nil {
		l.Remarks = *p.Remarks
	}
	if p.MeetingDate != nil {
		l.MeetingDate = *p.MeetingDate
	}
	if p.SocialMediaLinks != nil {
		l.SocialMediaLinks = append([]string(nil), (*p.SocialMediaLinks)...)
	}
}
