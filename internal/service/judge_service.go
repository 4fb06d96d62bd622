package service

import (
	"context"
	"strings"

	"hackadmin/internal/domain"
	"hackadmin/internal/session"
	"hackadmin/pkg/errors"
	"hackadmin/pkg/logger"
	"hackadmin/pkg/phone"
	"hackadmin/pkg/redis"
)

// JudgeService manages the judge directory
type JudgeService struct {
	backend Backend
	cache   *CacheService
	audit   *AuditService
	logger  *logger.Logger
}

func NewJudgeService(b Backend, cache *CacheService, audit *AuditService, log *logger.Logger) *JudgeService {
	return &JudgeService{backend: b, cache: cache, audit: audit, logger: named(log, "judges")}
}

func (s *JudgeService) judgesKey() string {
	if keys := s.cache.Keys(); keys != nil {
		return keys.KeyJudges()
	}
	return ""
}

// List returns every judge, narrowed by a case-insensitive name or email term
func (s *JudgeService) List(ctx context.Context, sess session.Context, term string) ([]domain.Judge, error) {
	if err := sess.Require(); err != nil {
		return nil, err
	}
	judges, err := cached(ctx, s.cache, s.judgesKey(), redis.TTLJudges, func(ctx context.Context) ([]domain.Judge, error) {
		return s.backend.ListJudges(ctx, sess)
	})
	if err != nil {
		return nil, err
	}
	return SearchJudges(judges, term), nil
}

// SearchJudges filters judges whose name or email contains term
func SearchJudges(judges []domain.Judge, term string) []domain.Judge {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return judges
	}
	out := make([]domain.Judge, 0, len(judges))
	for _, j := range judges {
		if strings.Contains(strings.ToLower(j.Name), term) || strings.Contains(strings.ToLower(j.Email), term) {
			out = append(out, j)
		}
	}
	return out
}

// ValidateNewJudge trims the form, requires every field and normalizes the
// phone number
func ValidateNewJudge(j domain.NewJudge) (domain.NewJudge, error) {
	j.Name = strings.TrimSpace(j.Name)
	j.Email = strings.TrimSpace(j.Email)
	j.Phonenumber = strings.TrimSpace(j.Phonenumber)

	missing := []string{}
	if j.Name == "" {
		missing = append(missing, "name")
	}
	if j.Email == "" {
		missing = append(missing, "email")
	}
	if j.Password == "" {
		missing = append(missing, "password")
	}
	if j.Phonenumber == "" {
		missing = append(missing, "phonenumber")
	}
	if len(missing) > 0 {
		return j, errors.NewValidationError("All fields are required", map[string]interface{}{"missing": missing})
	}
	if !strings.Contains(j.Email, "@") {
		return j, errors.NewValidationError("Invalid email address", map[string]interface{}{"email": j.Email})
	}
	number, err := phone.Normalize(j.Phonenumber)
	if err != nil {
		return j, errors.NewValidationError("Invalid phone number", map[string]interface{}{"phonenumber": j.Phonenumber})
	}
	j.Phonenumber = number
	return j, nil
}

// Create registers a judge and drops the cached directory
func (s *JudgeService) Create(ctx context.Context, sess session.Context, j domain.NewJudge) (*domain.Judge, string, error) {
	j, err := ValidateNewJudge(j)
	if err != nil {
		return nil, "", err
	}
	created, msg, err := s.backend.CreateJudge(ctx, sess, j)
	if err != nil {
		return nil, "", err
	}
	if msg == "" {
		msg = "Judge created successfully"
	}

	s.cache.Invalidate(ctx, s.judgesKey())
	s.audit.Record(ctx, sess, domain.ActionCreateJudge, "judge:"+j.Email, map[string]string{"name": j.Name})
	return created, msg, nil
}
