package domain

// ProjectStatus is the delivery state of a Project
type ProjectStatus string

const (
	ProjectUpcoming  ProjectStatus = "Upcoming"
	ProjectOngoing   ProjectStatus = "Ongoing"
	ProjectCompleted ProjectStatus = "Completed"
)

// Milestone is a checklist item inside a Project
type Milestone struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	IsCompleted bool   `json:"isCompleted"`
}

// Project is a client engagement tracked by the dashboard.
// Progress is a percentage but no bound is enforced.
type Project struct {
	ID          string        `json:"id" validate:"required"`
	Name        string        `json:"name" validate:"required"`
	Client      string        `json:"client"`
	Status      ProjectStatus `json:"status" validate:"omitempty,oneof=Upcoming Ongoing Completed"`
	Description string        `json:"description"`
	Progress    int           `json:"progress"`
	Documents   []string      `json:"documents"`
	Milestones  []Milestone   `json:"milestones"`
}

// GetID implements the collection entity contract
func (p Project) GetID() string { return p.ID }

// ProjectPatch is a shallow partial update; nil fields are left untouched.
type ProjectPatch struct {
	Name        *string        `json:"name,omitempty"`
	Client      *string        `json:"client,omitempty"`
	Status      *ProjectStatus `json:"status,omitempty" validate:"omitempty,oneof=Upcoming Ongoing Completed"`
	Description *string        `json:"description,omitempty"`
	Progress    *int           `json:"progress,omitempty"`
	Documents   *[]string      `json:"documents,omitempty"`
	Milestones  *[]Milestone   `json:"milestones,omitempty"`
}

// Apply merges the patch into p
func (pp ProjectPatch) Apply(p *Project) {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Client != nil {
		p.Client = *pp.Client
	}
	if pp.Status != nil {
		p.Status = *pp.Status
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.Progress != nil {
		p.Progress = *pp.Progress
	}
	if pp.Documents != nil {
		p.Documents = append([]string(nil), (*pp.Documents)...)
	}
	if pp.Milestones != nil {
		p.Milestones = append([]Milestone(nil), (*pp.Milestones)...)
	}
}
