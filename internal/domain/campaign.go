package domain

import (
	"encoding/json"
	"fmt"
)

// Platform is the outreach channel of a Campaign
type Platform string

const (
	PlatformEmail     Platform = "Email"
	PlatformLinkedIn  Platform = "LinkedIn"
	PlatformInstagram Platform = "Instagram"
)

// Valid reports whether p is a known platform
func (p Platform) Valid() bool {
	switch p {
	case PlatformEmail, PlatformLinkedIn, PlatformInstagram:
		return true
	}
	return false
}

// CampaignStatus is the run state of a Campaign
type CampaignStatus string

const (
	CampaignActive    CampaignStatus = "Active"
	CampaignPaused    CampaignStatus = "Paused"
	CampaignCompleted CampaignStatus = "Completed"
)

// FunnelStatus is the outreach progress of a CampaignLead
type FunnelStatus string

const (
	FunnelPending   FunnelStatus = "Pending"
	FunnelContacted FunnelStatus = "Contacted"
	FunnelReplied   FunnelStatus = "Replied"
	FunnelConverted FunnelStatus = "Converted"
)

// Contact is the platform specific half of a CampaignLead.
// Exactly one implementation exists per Platform.
type Contact interface {
	Platform() Platform
}

// EmailContact is a lead captured by an email campaign
type EmailContact struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email"`
	CompanyName string `json:"companyName"`
}

// Platform implements Contact
func (EmailContact) Platform() Platform { return PlatformEmail }

// LinkedInContact is a lead captured by a LinkedIn campaign
type LinkedInContact struct {
	Name            string `json:"name" validate:"required"`
	LinkedinProfile string `json:"linkedinProfile"`
}

// Platform implements Contact
func (LinkedInContact) Platform() Platform { return PlatformLinkedIn }

// InstagramContact is a lead captured by an Instagram campaign
type InstagramContact struct {
	InstagramHandle string `json:"instagramHandle" validate:"required"`
	FollowersCount  string `json:"followersCount"`
}

// Platform implements Contact
func (InstagramContact) Platform() Platform { return PlatformInstagram }

// CampaignLead is a contact inside a Campaign's own lead list
type CampaignLead struct {
	ID      string
	Status  FunnelStatus
	Contact Contact
}

// campaignLeadWire is the flat persisted shape shared by every platform
type campaignLeadWire struct {
	ID              string       `json:"id"`
	Status          FunnelStatus `json:"status"`
	Name            string       `json:"name,omitempty"`
	Email           string       `json:"email,omitempty"`
	CompanyName     string       `json:"companyName,omitempty"`
	LinkedinProfile string       `json:"linkedinProfile,omitempty"`
	InstagramHandle string       `json:"instagramHandle,omitempty"`
	FollowersCount  string       `json:"followersCount,omitempty"`
}

// inferPlatform guesses the variant of a lead decoded without its campaign
func (w campaignLeadWire) inferPlatform() Platform {
	if w.InstagramHandle != "" || w.FollowersCount != "" {
		return PlatformInstagram
	}
	if w.LinkedinProfile != "" {
		return PlatformLinkedIn
	}
	return PlatformEmail
}

func (w campaignLeadWire) lead(platform Platform) CampaignLead {
	lead := CampaignLead{ID: w.ID, Status: w.Status}
	switch platform {
	case PlatformLinkedIn:
		lead.Contact = LinkedInContact{Name: w.Name, LinkedinProfile: w.LinkedinProfile}
	case PlatformInstagram:
		lead.Contact = InstagramContact{InstagramHandle: w.InstagramHandle, FollowersCount: w.FollowersCount}
	default:
		lead.Contact = EmailContact{Name: w.Name, Email: w.Email, CompanyName: w.CompanyName}
	}
	return lead
}

// Platform returns the platform of the lead's contact, Email when unset
func (l CampaignLead) Platform() Platform {
	if l.Contact == nil {
		return PlatformEmail
	}
	return l.Contact.Platform()
}

// Reshape returns the lead with its contact converted to platform,
// carrying over the fields the two variants share.
func (l CampaignLead) Reshape(platform Platform) CampaignLead {
	if l.Contact != nil && l.Contact.Platform() == platform {
		return l
	}
	return l.wire().lead(platform)
}

func (l CampaignLead) wire() campaignLeadWire {
	w := campaignLeadWire{ID: l.ID, Status: l.Status}
	switch c := l.Contact.(type) {
	case EmailContact:
		w.Name, w.Email, w.CompanyName = c.Name, c.Email, c.CompanyName
	case LinkedInContact:
		w.Name, w.LinkedinProfile = c.Name, c.LinkedinProfile
	case InstagramContact:
		w.InstagramHandle, w.FollowersCount = c.InstagramHandle, c.FollowersCount
	}
	return w
}

// DisplayName is the human label for the lead regardless of platform
func (l CampaignLead) DisplayName() string {
	switch c := l.Contact.(type) {
	case EmailContact:
		return c.Name
	case LinkedInContact:
		return c.Name
	case InstagramContact:
		return c.InstagramHandle
	}
	return ""
}

// MarshalJSON writes the flat shape with only the variant's fields
func (l CampaignLead) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.wire())
}

// UnmarshalJSON reads the flat shape, inferring the variant from its fields.
// Campaign decoding reshapes leads to the campaign platform afterwards.
func (l *CampaignLead) UnmarshalJSON(data []byte) error {
	var w campaignLeadWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*l = w.lead(w.inferPlatform())
	return nil
}

// CampaignLeadPatch updates the shared fields and any contact field of the lead's variant
type CampaignLeadPatch struct {
	Status          *FunnelStatus `json:"status,omitempty"`
	Name            *string       `json:"name,omitempty"`
	Email           *string       `json:"email,omitempty"`
	CompanyName     *string       `json:"companyName,omitempty"`
	LinkedinProfile *string       `json:"linkedinProfile,omitempty"`
	InstagramHandle *string       `json:"instagramHandle,omitempty"`
	FollowersCount  *string       `json:"followersCount,omitempty"`
}

// Apply merges the patch into l. Fields of other platforms are ignored.
func (p CampaignLeadPatch) Apply(l *CampaignLead) {
	if p.Status != nil {
		l.Status = *p.Status
	}
	switch c := l.Contact.(type) {
	case EmailContact:
		setIf(&c.Name, p.Name)
		setIf(&c.Email, p.Email)
		setIf(&c.CompanyName, p.CompanyName)
		l.Contact = c
	case LinkedInContact:
		setIf(&c.Name, p.Name)
		setIf(&c.LinkedinProfile, p.LinkedinProfile)
		l.Contact = c
	case InstagramContact:
		setIf(&c.InstagramHandle, p.InstagramHandle)
		setIf(&c.FollowersCount, p.FollowersCount)
		l.Contact = c
	}
}

func setIf(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// Campaign is an outbound outreach effort on one platform.
// LeadsGenerated always equals len(Leads); the store recomputes it on every lead change.
type Campaign struct {
	ID             string         `json:"id" validate:"required"`
	Name           string         `json:"name" validate:"required"`
	Platform       Platform       `json:"platform" validate:"required,oneof=Email LinkedIn Instagram"`
	LeadsGenerated int            `json:"leadsGenerated"`
	Status         CampaignStatus `json:"status"`
	Date           string         `json:"date"`
	Documents      []string       `json:"documents"`
	Leads          []CampaignLead `json:"leads"`
}

// GetID implements the collection entity contract
func (c Campaign) GetID() string { return c.ID }

// UnmarshalJSON decodes leads into the variant dictated by the campaign platform
func (c *Campaign) UnmarshalJSON(data []byte) error {
	type plain Campaign
	var raw struct {
		plain
		Leads []json.RawMessage `json:"leads"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*c = Campaign(raw.plain)
	c.Leads = nil
	if raw.Leads != nil {
		c.Leads = make([]CampaignLead, 0, len(raw.Leads))
	}
	for i, msg := range raw.Leads {
		var w campaignLeadWire
		if err := json.Unmarshal(msg, &w); err != nil {
			return fmt.Errorf("campaign %s lead %d: %w", c.ID, i, err)
		}
		c.Leads = append(c.Leads, w.lead(c.Platform))
	}
	return nil
}

// CampaignPatch is a shallow partial update; nil fields are left untouched.
// A Leads patch also rewrites LeadsGenerated.
type CampaignPatch struct {
	Name      *string         `json:"name,omitempty"`
	Platform  *Platform       `json:"platform,omitempty" validate:"omitempty,oneof=Email LinkedIn Instagram"`
	Status    *CampaignStatus `json:"status,omitempty"`
	Date      *string         `json:"date,omitempty"`
	Documents *[]string       `json:"documents,omitempty"`
	Leads     *[]CampaignLead `json:"leads,omitempty"`
}

// Apply merges the patch into c and keeps the lead count in step
func (p CampaignPatch) Apply(c *Campaign) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Platform != nil && *p.Platform != c.Platform {
		c.Platform = *p.Platform
		reshaped := make([]CampaignLead, len(c.Leads))
		for i, lead := range c.Leads {
			reshaped[i] = lead.Reshape(c.Platform)
		}
		c.Leads = reshaped
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.Date != nil {
		c.Date = *p.Date
	}
	if p.Documents != nil {
		c.Documents = append([]string(nil), (*p.Documents)...)
	}
	if p.Leads != nil {
		c.Leads = make([]CampaignLead, 0, len(*p.Leads))
		for _, lead := range *p.Leads {
			c.Leads = append(c.Leads, lead.Reshape(c.Platform))
		}
	}
	c.LeadsGenerated = len(c.Leads)
}
