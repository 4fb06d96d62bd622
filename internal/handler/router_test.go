package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hackadmin/internal/backend"
	"hackadmin/internal/config"
	"hackadmin/internal/container"
	"hackadmin/internal/domain"
	"hackadmin/internal/handler"
	"hackadmin/internal/service/mocks"
	"hackadmin/internal/session"
	"hackadmin/pkg/errors"
	"hackadmin/pkg/logger"
)

const testSecret = "test-secret"

type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Total      int             `json:"total"`
	TotalPages int             `json:"totalPages"`
	Summary    string          `json:"summary"`
}

func setupRouter(t *testing.T) (http.Handler, *mocks.Backend) {
	t.Helper()
	b := new(mocks.Backend)
	log := logger.NewNop()
	cfg := &config.Config{
		AllowedOrigins: []string{"http://localhost:5173"},
		JWTSecret:      testSecret,
		Environment:    "test",
		PageSessionTTL: time.Minute,
	}
	c := &container.Container{
		Config:   cfg,
		Logger:   log,
		Backend:  backend.New("http://backend.test", 0, log),
		Services: container.NewServices(b, nil, nil, cfg, log),
	}
	return handler.NewRouter(c), b
}

func token(t *testing.T, email, role string) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"role":  role,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return tok
}

func subject(email string) interface{} {
	return mock.MatchedBy(func(s session.Context) bool { return s.Subject == email })
}

func do(t *testing.T, h http.Handler, method, path, tok string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errors.ErrorResponse {
	t.Helper()
	var body errors.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestRouter_Health(t *testing.T) {
	h, _ := setupRouter(t)
	rec := do(t, h, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body handler.HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "http://backend.test", body.Backend)
	assert.Equal(t, "disabled", body.Dependencies["redis"])
}

func TestRouter_NotFound(t *testing.T) {
	h, _ := setupRouter(t)
	rec := do(t, h, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Endpoint not found")
}

func TestRouter_RequiresToken(t *testing.T) {
	h, b := setupRouter(t)
	rec := do(t, h, http.MethodGet, "/api/console/teams/school", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, errors.MissingTokenMessage, body.Error.Message)
	assert.NotEmpty(t, body.Error.RequestID)
	b.AssertNotCalled(t, "ListTeams", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRouter_Login(t *testing.T) {
	h, b := setupRouter(t)
	tok := token(t, "root@example.com", domain.RoleSuperAdmin)
	b.On("Login", mock.Anything, "root@example.com", "pw").
		Return(&backend.LoginResult{Token: tok, Role: domain.RoleSuperAdmin}, nil).Once()

	rec := do(t, h, http.MethodPost, "/api/console/auth/login", "", map[string]string{"email": "root@example.com", "password": "pw"})
	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.True(t, env.Success)
	assert.Contains(t, string(env.Data), tok)

	rec = do(t, h, http.MethodPost, "/api/console/auth/login", "", map[string]string{"email": "", "password": "pw"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email and password are required", decodeError(t, rec).Error.Message)

	rec = do(t, h, http.MethodGet, "/api/console/auth/me", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(decode(t, rec).Data), `"subject":"root@example.com"`)
	b.AssertExpectations(t)
}

func TestRouter_TeamsCollegeInside(t *testing.T) {
	h, b := setupRouter(t)
	tok := token(t, "root@example.com", domain.RoleSuperAdmin)
	b.On("ListTeams", mock.Anything, subject("root@example.com"), domain.SegmentCollegeInside, backend.TeamQuery{Page: 1, Limit: 20}).
		Return(backend.Page[domain.Team]{
			Items: []domain.Team{{ID: 1, TeamCode: "T-1"}},
			Total: 1, TotalPages: 1, Page: 1, Limit: 20,
		}, nil).Once()

	rec := do(t, h, http.MethodGet, "/api/console/teams/college-inside", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, 1, env.Total)
	assert.Equal(t, "1 to 1 of 1", env.Summary)
	assert.Contains(t, string(env.Data), `"teamCode":"T-1"`)

	rec = do(t, h, http.MethodGet, "/api/console/teams/nowhere", tok, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	b.AssertExpectations(t)
}

func TestRouter_EmptyListKeepsArray(t *testing.T) {
	h, b := setupRouter(t)
	tok := token(t, "root@example.com", domain.RoleSuperAdmin)
	b.On("ListTeams", mock.Anything, mock.Anything, domain.SegmentSchool, mock.Anything).
		Return(backend.Page[domain.Team]{}, nil).Once()

	rec := do(t, h, http.MethodGet, "/api/console/teams/school", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.JSONEq(t, `[]`, string(env.Data))
	assert.Equal(t, "No records found, adjust filters", env.Message)
}

func TestRouter_AssignmentExportCSV(t *testing.T) {
	h, b := setupRouter(t)
	tok := token(t, "root@example.com", domain.RoleSuperAdmin)
	b.On("TeamsByDepartmentAndCategory", mock.Anything, mock.Anything, backend.AssignmentQuery{ParticipationCategory: "school", Status: "unassign"}).
		Return([]domain.Team{{ID: 7, TeamCode: "C-07", TeamName: "Seven"}}, nil).Once()

	rec := do(t, h, http.MethodGet, "/api/console/assignments/export.csv?participationCategory=school", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Regexp(t, `attachment; filename="assignment-export-\d{4}-\d{2}-\d{2}\.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "1", rec.Header().Get("X-Export-Rows"))
	lines := strings.Split(strings.TrimRight(rec.Body.String(), "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[1], "C-07")
	b.AssertExpectations(t)
}

func TestRouter_AssignValidation(t *testing.T) {
	h, b := setupRouter(t)
	tok := token(t, "root@example.com", domain.RoleSuperAdmin)

	rec := do(t, h, http.MethodPost, "/api/console/assignments", tok, map[string]interface{}{
		"participationCategory": "school",
		"judgeId1":              4,
		"judgeId2":              4,
		"teamIds":               []int{1},
		"panelName":             "P1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "The same judge cannot be selected twice", decodeError(t, rec).Error.Message)
	b.AssertNotCalled(t, "AssignJudges", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRouter_ResultsPrompt(t *testing.T) {
	h, _ := setupRouter(t)
	tok := token(t, "root@example.com", domain.RoleSuperAdmin)

	rec := do(t, h, http.MethodGet, "/api/console/results?participationCategory=college", tok, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Select an innovation category to view college teams", decodeError(t, rec).Error.Message)
}

func TestRouter_SettingsRequireSuperAdmin(t *testing.T) {
	h, b := setupRouter(t)
	tok := token(t, "cse@example.com", domain.RoleDepartmentAdmin)

	rec := do(t, h, http.MethodPut, "/api/console/registration", tok, map[string]bool{"open": true})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, h, http.MethodPut, "/api/console/registration", tok, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	b.AssertNotCalled(t, "SetRegistrationStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestRouter_Pages(t *testing.T) {
	h, b := setupRouter(t)
	tok := token(t, "root@example.com", domain.RoleSuperAdmin)

	rec := do(t, h, http.MethodGet, "/api/console/pages/evaluated", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "Select a participation category to view teams", env.Message)
	assert.Contains(t, string(env.Data), `"stage":"idle_no_discriminator"`)

	rec = do(t, h, http.MethodPut, "/api/console/pages/evaluated/filters", tok, map[string]string{"bogus": "1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Unknown filter: bogus", decodeError(t, rec).Error.Message)

	rec = do(t, h, http.MethodGet, "/api/console/pages/nowhere", tok, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodDelete, "/api/console/pages/evaluated", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"closed":true}`, string(decode(t, rec).Data))
	b.AssertNotCalled(t, "FinalResults", mock.Anything, mock.Anything, mock.Anything)
}
