package service

import (
	"context"
	"sort"
	"strconv"

	"hackadmin/internal/backend"
	"hackadmin/internal/domain"
	"hackadmin/internal/session"
	"hackadmin/pkg/errors"
	"hackadmin/pkg/logger"
)

// EvaluationService serves final results, qualification and evaluation
// removal
type EvaluationService struct {
	backend Backend
	cache   *CacheService
	audit   *AuditService
	logger  *logger.Logger
}

func NewEvaluationService(b Backend, cache *CacheService, audit *AuditService, log *logger.Logger) *EvaluationService {
	return &EvaluationService{backend: b, cache: cache, audit: audit, logger: named(log, "evaluations")}
}

// ResultQueryFrom validates a results query: participation category is
// required, and the category only applies to college
func ResultQueryFrom(participation, categoryID string) (backend.ResultQuery, error) {
	if participation == "" {
		return backend.ResultQuery{}, errors.NewValidationError("Select a participation category to view teams", nil)
	}
	if !domain.IsParticipationCategory(participation) {
		return backend.ResultQuery{}, errors.NewValidationError("Unknown participation category", map[string]interface{}{"participationCategory": participation})
	}
	q := backend.ResultQuery{ParticipationCategory: participation}
	if participation == domain.ParticipationCollege {
		if categoryID == "" {
			return q, errors.NewValidationError("Select an innovation category to view college teams", nil)
		}
		if _, err := strconv.Atoi(categoryID); err != nil {
			return q, errors.NewValidationError("Invalid category", map[string]interface{}{"categoryId": categoryID})
		}
		q.CategoryID = categoryID
	}
	return q, nil
}

// Results fetches evaluated teams grouped by category
func (s *EvaluationService) Results(ctx context.Context, sess session.Context, q backend.ResultQuery) ([]domain.CategoryGroup, error) {
	teams, err := s.backend.FinalResults(ctx, sess, q)
	if err != nil {
		return nil, err
	}
	return GroupByCategory(teams), nil
}

// GroupByCategory buckets teams by category id, ordered by id with the
// uncategorized bucket last. Team order within a bucket is preserved.
func GroupByCategory(teams []domain.Team) []domain.CategoryGroup {
	index := map[int]int{}
	var groups []domain.CategoryGroup
	for _, t := range teams {
		id := t.EffectiveCategoryID()
		i, ok := index[id]
		if !ok {
			i = len(groups)
			index[id] = i
			label := domain.UncategorizedLabel
			if id != 0 {
				label = domain.CategoryLabel(id)
			}
			groups = append(groups, domain.CategoryGroup{CategoryID: id, Category: label})
		}
		t.AverageScore = AverageScore(t)
		groups[i].Teams = append(groups[i].Teams, t)
		if t.IsDepartmentQualified {
			groups[i].QualifiedCount++
		}
	}
	sort.SliceStable(groups, func(a, b int) bool {
		ia, ib := groups[a].CategoryID, groups[b].CategoryID
		if (ia == 0) != (ib == 0) {
			return ib == 0
		}
		return ia < ib
	})
	if groups == nil {
		groups = []domain.CategoryGroup{}
	}
	return groups
}

// AverageScore returns the backend average, or the mean of the evaluation
// totals when absent. nil means no evaluation yet.
func AverageScore(t domain.Team) *float64 {
	if t.AverageScore != nil {
		return t.AverageScore
	}
	if len(t.Evaluations) == 0 {
		return nil
	}
	sum := 0.0
	for _, e := range t.Evaluations {
		sum += e.TotalScore
	}
	avg := sum / float64(len(t.Evaluations))
	return &avg
}

// MarkQualified marks a team as department qualified
func (s *EvaluationService) MarkQualified(ctx context.Context, sess session.Context, teamID int) (string, error) {
	if teamID <= 0 {
		return "", errors.NewValidationError("Invalid team id", nil)
	}
	msg, err := s.backend.MarkQualified(ctx, sess, teamID)
	if err != nil {
		return "", err
	}
	if msg == "" {
		msg = "Team marked as qualified"
	}
	s.invalidateDashboards(ctx)
	s.audit.Record(ctx, sess, domain.ActionMarkQualified, "team:"+itoa(teamID), nil)
	return msg, nil
}

// DeleteEvaluation removes one evaluation after password confirmation
func (s *EvaluationService) DeleteEvaluation(ctx context.Context, sess session.Context, evaluationID int, password string) (string, error) {
	if evaluationID <= 0 {
		return "", errors.NewValidationError("Invalid evaluation id", nil)
	}
	if password == "" {
		return "", errors.NewValidationError("Password is required to delete an evaluation", nil)
	}
	msg, err := s.backend.DeleteEvaluation(ctx, sess, evaluationID, password)
	if err != nil {
		return "", err
	}
	if msg == "" {
		msg = "Evaluation deleted successfully"
	}
	s.audit.Record(ctx, sess, domain.ActionDeleteEvaluation, "evaluation:"+itoa(evaluationID), nil)
	return msg, nil
}

func (s *EvaluationService) invalidateDashboards(ctx context.Context) {
	if keys := s.cache.Keys(); keys != nil {
		s.cache.InvalidatePattern(ctx, keys.PatternDashboard())
	}
}
