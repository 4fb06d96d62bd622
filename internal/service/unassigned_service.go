package service

import (
	"context"

	"hackadmin/internal/domain"
	"hackadmin/internal/session"
	"hackadmin/pkg/logger"
)

// UncategorizedLabel buckets teams without a category relation
const UncategorizedLabel = "Uncategorized"

// UnassignedStats counts unassigned teams along three axes
type UnassignedStats struct {
	TotalTeams              int            `json:"totalTeams"`
	ByDepartment            map[string]int `json:"byDepartment"`
	ByCategory              map[string]int `json:"byCategory"`
	ByParticipationCategory map[string]int `json:"byParticipationCategory"`
}

// UnassignedFilter narrows the unassigned list locally. Category matches
// the category name.
type UnassignedFilter struct {
	Department            string `json:"department,omitempty"`
	Category              string `json:"category,omitempty"`
	ParticipationCategory string `json:"participationCategory,omitempty"`
}

// UnassignedView is the rendered unassigned-teams page. Stats always cover
// the full list; Teams is filtered.
type UnassignedView struct {
	Teams   []domain.Team   `json:"teams"`
	Stats   UnassignedStats `json:"stats"`
	Message string          `json:"message,omitempty"`
}

// UnassignedService reports teams still waiting for a panel
type UnassignedService struct {
	backend Backend
	logger  *logger.Logger
}

func NewUnassignedService(b Backend, log *logger.Logger) *UnassignedService {
	return &UnassignedService{backend: b, logger: named(log, "unassigned")}
}

// View fetches the unassigned teams and applies f
func (s *UnassignedService) View(ctx context.Context, sess session.Context, f UnassignedFilter) (*UnassignedView, error) {
	teams, err := s.backend.UnassignedTeams(ctx, sess)
	if err != nil {
		return nil, err
	}
	v := &UnassignedView{
		Teams: FilterUnassigned(teams, f),
		Stats: UnassignedStatsOf(teams),
	}
	if len(v.Teams) == 0 {
		v.Message = EmptyResultMessage
	}
	return v, nil
}

// UnassignedStatsOf tallies teams by department, category name and
// participation category
func UnassignedStatsOf(teams []domain.Team) UnassignedStats {
	st := UnassignedStats{
		TotalTeams:              len(teams),
		ByDepartment:            map[string]int{},
		ByCategory:              map[string]int{},
		ByParticipationCategory: map[string]int{},
	}
	for _, t := range teams {
		st.ByDepartment[t.Department]++
		if t.Category != nil {
			st.ByCategory[t.Category.Name]++
		} else {
			st.ByCategory[UncategorizedLabel]++
		}
		st.ByParticipationCategory[t.ParticipationCategory]++
	}
	return st
}

// FilterUnassigned keeps teams matching every non-empty field of f
func FilterUnassigned(teams []domain.Team, f UnassignedFilter) []domain.Team {
	out := make([]domain.Team, 0, len(teams))
	for _, t := range teams {
		if f.Department != "" && t.Department != f.Department {
			continue
		}
		if f.Category != "" && (t.Category == nil || t.Category.Name != f.Category) {
			continue
		}
		if f.ParticipationCategory != "" && t.ParticipationCategory != f.ParticipationCategory {
			continue
		}
		out = append(out, t)
	}
	return out
}
