package store

import (
	"strings"

	"github.com/localnerve/raulo-crmdb/internal/domain"
)

// LeadQuery narrows the leads under a folder node
type LeadQuery struct {
	Search string `query:"q"`
	Status string `query:"status"`
}

// FilterLeads returns the leads visible for node, narrowed by search text and
// status. Nodes match leads by name only:
//   - root: every lead
//   - country: leads whose city names one of the country's direct city children
//   - city: leads whose city equals the node name
//   - category: leads whose category equals the node name
//
// Search is a case-insensitive substring match on name, phone or city.
// Status "" or "All" disables status filtering. The filters are a plain AND.
func FilterLeads(leads []domain.Lead, node domain.FolderNode, q LeadQuery) []domain.Lead {
	inNode := nodeMatcher(node)
	search := strings.TrimSpace(q.Search) != ""
	needle := strings.ToLower(q.Search)
	status := q.Status != "" && q.Status != domain.StatusAll

	out := make([]domain.Lead, 0, len(leads))
	for _, lead := range leads {
		if !inNode(lead) {
			continue
		}
		if search && !matchesSearch(lead, needle) {
			continue
		}
		if status && string(lead.Status) != q.Status {
			continue
		}
		out = append(out, lead)
	}
	return out
}

func nodeMatcher(node domain.FolderNode) func(domain.Lead) bool {
	switch node.Type {
	case domain.FolderCountry:
		cities := make(map[string]struct{}, len(node.Children))
		for _, child := range node.Children {
			cities[child.Name] = struct{}{}
		}
		return func(l domain.Lead) bool {
			_, ok := cities[l.City]
			return ok
		}
	case domain.FolderCity:
		return func(l domain.Lead) bool { return l.City == node.Name }
	case domain.FolderCategory:
		return func(l domain.Lead) bool { return l.Category == node.Name }
	}
	return func(domain.Lead) bool { return true }
}

func matchesSearch(lead domain.Lead, needle string) bool {
	return strings.Contains(strings.ToLower(lead.Name), needle) ||
		strings.Contains(strings.ToLower(lead.Phone), needle) ||
		strings.Contains(strings.ToLower(lead.City), needle)
}

// FilterCampaigns keeps campaigns on platform; "" or "All" keeps everything
func FilterCampaigns(campaigns []domain.Campaign, platform string) []domain.Campaign {
	out := make([]domain.Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		if platform == "" || platform == domain.StatusAll || string(c.Platform) == platform {
			out = append(out, c)
		}
	}
	return out
}
