package domain

// Report is metadata for an uploaded daily activity file.
// File content lives only in the session file registry.
type Report struct {
	ID       string `json:"id" validate:"required"`
	FileName string `json:"fileName" validate:"required"`
	Date     string `json:"date"`
	Uploader string `json:"uploader"`
}

// GetID implements the collection entity contract
func (r Report) GetID() string { return r.ID }

// ReportPatch is a shallow partial update; nil fields are left untouched.
type ReportPatch struct {
	FileName *string `json:"fileName,omitempty"`
	Date     *string `json:"date,omitempty"`
	Uploader *string `json:"uploader,omitempty"`
}

// Apply merges the patch into r
func (p ReportPatch) Apply(r *Report) {
	if p.FileName != nil {
		r.FileName = *p.FileName
	}
	if p.Date != nil {
		r.Date = *p.Date
	}
	if p.Uploader != nil {
		r.Uploader = *p.Uploader
	}
}
