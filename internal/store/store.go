// store.go
//
// Local lead-organization store for the Raulo CRM dashboard
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of raulo-crmdb.
// raulo-crmdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// raulo-crmdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with raulo-crmdb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package store

import (
	"sync"

	"github.com/localnerve/raulo-crmdb/internal/domain"
	"github.com/localnerve/raulo-crmdb/internal/persist"
	"github.com/sirupsen/logrus"
)

// Store is the single read/mutate surface over leads, projects, campaigns,
// reports, the folder tree and session file handles. Build one per process
// with New and pass it to collaborators.
//
// Mutators report whether anything changed; unknown ids are silent no-ops.
// The returned error is only ever a failure to persist the new snapshot, in
// which case the in-memory state already holds the change.
type Store struct {
	mu        sync.RWMutex
	notifyMu  sync.Mutex // taken before mu is released; lock order is mu then notifyMu
	log       logrus.FieldLogger
	leads     *Collection[domain.Lead]
	projects  *Collection[domain.Project]
	campaigns *Collection[domain.Campaign]
	reports   *Collection[domain.Report]
	folders   *FolderTree
	files     *FileRegistry
	listeners []func(Overview)
}

// New loads every snapshot through adapter, falling back to seeds for any
// entry that was never saved or cannot be decoded.
func New(adapter *persist.Adapter, seeds Seeds, log logrus.FieldLogger) *Store {
	root := persist.Load(adapter, persist.KeyFolders, seeds.Folders)
	if root.ID == "" || root.Type != domain.FolderRoot {
		log.WithField("key", persist.KeyFolders).Warn("Stored folder tree has no valid root, using defaults")
		root = seeds.Folders
	}
	folders, rekeyed := NewFolderTree(root, adapter)
	if len(rekeyed) > 0 {
		log.WithField("ids", rekeyed).Warn("Duplicate folder ids were given fresh ids")
	}

	campaigns := persist.Load(adapter, persist.KeyCampaigns, seeds.Campaigns)
	for i := range campaigns {
		campaigns[i].LeadsGenerated = len(campaigns[i].Leads)
	}

	return &Store{
		log:       log,
		leads:     NewCollection(persist.KeyLeads, persist.Load(adapter, persist.KeyLeads, seeds.Leads), adapter),
		projects:  NewCollection(persist.KeyProjects, persist.Load(adapter, persist.KeyProjects, seeds.Projects), adapter),
		campaigns: NewCollection(persist.KeyCampaigns, campaigns, adapter),
		reports:   NewCollection(persist.KeyReports, persist.Load(adapter, persist.KeyReports, seeds.Reports), adapter),
		folders:   folders,
		files:     NewFileRegistry(),
	}
}

// mustInit panics when the store was not built with New
func (s *Store) mustInit() {
	if s == nil || s.leads == nil {
		panic("store: used before initialization")
	}
}

// OnChange registers fn to run with a fresh Overview after every mutation.
// Calls are serialized in mutation order and fn must not call back into the
// store.
func (s *Store) OnChange(fn func(Overview)) {
	s.mustInit()
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// write runs one mutation under the writer lock, logs persistence failures
// and notifies listeners when state changed.
func (s *Store) write(op string, fn func() (bool, error)) (bool, error) {
	s.mustInit()

	s.mu.Lock()
	changed, err := fn()
	if !changed {
		s.mu.Unlock()
		s.logPersistError(op, err)
		return false, err
	}

	overview := s.overviewLocked()
	listeners := append(([]func(Overview))(nil), s.listeners...)
	s.notifyMu.Lock()
	s.mu.Unlock()

	s.logPersistError(op, err)
	for _, fn := range listeners {
		fn(overview)
	}
	s.notifyMu.Unlock()

	return true, err
}

func (s *Store) logPersistError(op string, err error) {
	if err != nil {
		s.log.WithError(err).WithField("op", op).Error("Failed to persist snapshot")
	}
}

func added(err error) (bool, error) {
	return true, err
}

// Leads returns every lead
func (s *Store) Leads() []domain.Lead {
	s.mustInit()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.leads.All()
}

// Lead returns the lead with id
func (s *Store) Lead(id string) (domain.Lead, bool) {
	s.mustInit()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.leads.Get(id)
}

// AddLead appends a lead; the caller supplies its id
func (s *Store) AddLead(lead domain.Lead) error {
	_, err := s.write("addLead", func() (bool, error) {
		return added(s.leads.Add(lead))
	})
	return err
}

// ImportLeads adds each parsed row in order and returns how many were added
func (s *Store) ImportLeads(rows []domain.Lead) (int, error) {
	count := 0
	for _, row := range rows {
		if err := s.AddLead(row); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// UpdateLead merges patch into the lead with id
func (s *Store) UpdateLead(id string, patch domain.LeadPatch) (bool, error) {
	return s.write("updateLead", func() (bool, error) {
		return s.leads.Update(id, patch)
	})
}

// DeleteLead removes the lead with id
func (s *Store) DeleteLead(id string) (bool, error) {
	return s.write("deleteLead", func() (bool, error) {
		return s.leads.Remove(id)
	})
}

// VisibleLeads applies the folder, search and status filters. An unknown
// node id selects the root.
func (s *Store) VisibleLeads(nodeID string, q LeadQuery) []domain.Lead {
	s.mustInit()
	s.mu.RLock()
	defer s.mu.RUnlock()

	node, ok := s.folders.Find(nodeID)
	if !ok {
		node = s.folders.Snapshot()
	}
	return FilterLeads(s.leads.All(), node, q)
}

// Projects returns every project
func (s *Store) Projects() []domain.Project {
	s.mustInit()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projects.All()
}

// Project returns the project with id
func (s *Store) Project(id string) (domain.Project, bool) {
	s.mustInit()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projects.Get(id)
}

// AddProject appends a project
func (s *Store) AddProject(project domain.Project) error {
	_, err := s.write("addProject", func() (bool, error) {
		return added(s.projects.Add(project))
	})
	return err
}

// UpdateProject merges patch into the project with id
func (s *Store) UpdateProject(id string, patch domain.ProjectPatch) (bool, error) {
	return s.write("updateProject", func() (bool, error) {
		return s.projects.Update(id, patch)
	})
}

// DeleteProject removes the project with id
func (s *Store) DeleteProject(id string) (bool, error) {
	return s.write("deleteProject", func() (bool, error) {
		return s.projects.Remove(id)
	})
}

// ToggleMilestone flips the completion of one milestone of a project
func (s *Store) ToggleMilestone(projectID, milestoneID string) (bool, error) {
	return s.write("toggleMilestone", func() (bool, error) {
		project, ok := s.projects.Get(projectID)
		if !ok {
			return false, nil
		}
		milestones := make([]domain.Milestone, len(project.Milestones))
		found := false
		for i, m := range project.Milestones {
			if m.ID == milestoneID {
				m.IsCompleted = !m.IsCompleted
				found = true
			}
			milestones[i] = m
		}
		if !found {
			return false, nil
		}
		return s.projects.Update(projectID, domain.ProjectPatch{Milestones: &milestones})
	})
}

// Campaigns returns every campaign
func (s *Store) Campaigns() []domain.Campaign {
	s.mustInit()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.campaigns.All()
}

// VisibleCampaigns returns the campaigns on platform, or all for "All"
func (s *Store) VisibleCampaigns(platform string) []domain.Campaign {
	s.mustInit()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return FilterCampaigns(s.campaigns.All(), platform)
}

// Campaign returns the campaign with id
func (s *Store) Campaign(id string) (domain.Campaign, bool) {
	s.mustInit()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.campaigns.Get(id)
}

// AddCampaign appends a campaign, shaping its leads to its platform and
// deriving LeadsGenerated from them.
func (s *Store) AddCampaign(campaign domain.Campaign) error {
	leads := make([]domain.CampaignLead, 0, len(campaign.Leads))
	for _, lead := range campaign.Leads {
		leads = append(leads, lead.Reshape(campaign.Platform))
	}
	campaign.Leads = leads
	campaign.LeadsGenerated = len(leads)

	_, err := s.write("addCampaign", func() (bool, error) {
		return added(s.campaigns.Add(campaign))
	})
	return err
}

// UpdateCampaign merges patch into the campaign with id
func (s *Store) UpdateCampaign(id string, patch domain.CampaignPatch) (bool, error) {
	return s.write("updateCampaign", func() (bool, error) {
		return s.campaigns.Update(id, patch)
	})
}

// DeleteCampaign removes the campaign with id
func (s *Store) DeleteCampaign(id string) (bool, error) {
	return s.write("deleteCampaign", func() (bool, error) {
		return s.campaigns.Remove(id)
	})
}

// modifyLeads rewrites a campaign's lead list and its count in one update.
// edit reports whether it changed the list.
func (s *Store) modifyLeads(op, campaignID string, edit func(platform domain.Platform, leads []domain.CampaignLead) ([]domain.CampaignLead, bool)) (bool, error) {
	return s.write(op, func() (bool, error) {
		campaign, ok := s.campaigns.Get(campaignID)
		if !ok {
			return false, nil
		}
		current := append([]domain.CampaignLead(nil), campaign.Leads...)
		next, changed := edit(campaign.Platform, current)
		if !changed {
			return false, nil
		}
		return s.campaigns.Modify(campaignID, func(c *domain.Campaign) {
			c.Leads = next
			c.LeadsGenerated = len(next)
		})
	})
}

// AddCampaignLead appends lead to a campaign, shaped to the campaign platform
func (s *Store) AddCampaignLead(campaignID string, lead domain.CampaignLead) (bool, error) {
	return s.ImportCampaignLeads(campaignID, []domain.CampaignLead{lead})
}

// ImportCampaignLeads appends imported leads to a campaign in one update
func (s *Store) ImportCampaignLeads(campaignID string, leads []domain.CampaignLead) (bool, error) {
	return s.modifyLeads("importCampaignLeads", campaignID, func(platform domain.Platform, current []domain.CampaignLead) ([]domain.CampaignLead, bool) {
		if len(leads) == 0 {
			return current, false
		}
		for _, lead := range leads {
			current = append(current, lead.Reshape(platform))
		}
		return current, true
	})
}

// UpdateCampaignLead merges patch into one lead of a campaign
func (s *Store) UpdateCampaignLead(campaignID, leadID string, patch domain.CampaignLeadPatch) (bool, error) {
	return s.modifyLeads("updateCampaignLead", campaignID, func(_ domain.Platform, current []domain.CampaignLead) ([]domain.CampaignLead, bool) {
		found := false
		for i := range current {
			if current[i].ID == leadID {
				patch.Apply(&current[i])
				found = true
			}
		}
		return current, found
	})
}

// DeleteCampaignLead removes one lead from a campaign
func (s *Store) DeleteCampaignLead(campaignID, leadID string) (bool, error) {
	return s.modifyLeads("deleteCampaignLead", campaignID, func(_ domain.Platform, current []domain.CampaignLead) ([]domain.CampaignLead, bool) {
		next := make([]domain.CampaignLead, 0, len(current))
		for _, lead := range current {
			if lead.ID != leadID {
				next = append(next, lead)
			}
		}
		return next, len(next) != len(current)
	})
}

// Reports returns every report
func (s *Store) Reports() []domain.Report {
	s.mustInit()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reports.All()
}

// Report returns the report with id
func (s *Store) Report(id string) (domain.Report, bool) {
	s.mustInit()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reports.Get(id)
}

// AddReport appends report metadata
func (s *Store) AddReport(report domain.Report) error {
	_, err := s.write("addReport", func() (bool, error) {
		return added(s.reports.Add(report))
	})
	return err
}

// UpdateReport merges patch into the report with id
func (s *Store) UpdateReport(id string, patch domain.ReportPatch) (bool, error) {
	return s.write("updateReport", func() (bool, error) {
		return s.reports.Update(id, patch)
	})
}

// DeleteReport removes report metadata; a registered file handle stays
// available until the process exits.
func (s *Store) DeleteReport(id string) (bool, error) {
	return s.write("deleteReport", func() (bool, error) {
		return s.reports.Remove(id)
	})
}

// Folders returns the whole folder tree
func (s *Store) Folders() domain.FolderNode {
	s.mustInit()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.folders.Snapshot()
}

// FindFolder returns the subtree rooted at id
func (s *Store) FindFolder(id string) (domain.FolderNode, bool) {
	s.mustInit()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.folders.Find(id)
}

// AddFolder creates a child folder under parentID. ok is false when the
// parent is unknown or kind is not legal below it.
func (s *Store) AddFolder(parentID, name string, kind domain.FolderType) (node domain.FolderNode, ok bool, err error) {
	ok, err = s.write("addFolder", func() (bool, error) {
		var added bool
		var addErr error
		node, added, addErr = s.folders.AddChild(parentID, name, kind)
		return added, addErr
	})
	return node, ok, err
}

// RenameFolder renames a folder without touching leads that use the old name
func (s *Store) RenameFolder(id, name string) (bool, error) {
	return s.write("renameFolder", func() (bool, error) {
		return s.folders.Rename(id, name)
	})
}

// DeleteFolder removes a folder and its subtree; the root is never removed
func (s *Store) DeleteFolder(id string) (bool, error) {
	var removed int
	changed, err := s.write("deleteFolder", func() (bool, error) {
		if node, ok := s.folders.Find(id); ok && id != s.folders.RootID() {
			removed = node.Count()
		}
		return s.folders.Remove(id)
	})
	if changed {
		s.log.WithFields(logrus.Fields{"id": id, "nodes": removed}).Info("Folder subtree removed")
	}
	return changed, err
}

// RegisterFileHandle keeps content openable by id for the rest of the session
func (s *Store) RegisterFileHandle(id, name string, content []byte) FileHandle {
	s.mustInit()
	return s.files.Register(id, name, content)
}

// FileHandle returns the handle registered under id in this session
func (s *Store) FileHandle(id string) (FileHandle, bool) {
	s.mustInit()
	return s.files.Lookup(id)
}

// Overview aggregates the dashboard metrics
func (s *Store) Overview() Overview {
	s.mustInit()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.overviewLocked()
}

func (s *Store) overviewLocked() Overview {
	return computeOverview(s.leads.All(), s.projects.All(), s.campaigns.All(), s.reports.Len(), s.folders.Len())
}
