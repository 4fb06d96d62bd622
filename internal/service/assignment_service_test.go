package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hackadmin/internal/backend"
	"hackadmin/internal/domain"
	"hackadmin/internal/service"
	"hackadmin/internal/service/mocks"
	"hackadmin/pkg/errors"
)

func TestAssignmentService_Teams_Cascade(t *testing.T) {
	tests := []struct {
		name    string
		query   backend.AssignmentQuery
		want    *backend.AssignmentQuery
		message string
	}{
		{
			name:    "nothing selected",
			query:   backend.AssignmentQuery{},
			message: "Select a participation category to view teams",
		},
		{
			name:    "college without category",
			query:   backend.AssignmentQuery{ParticipationCategory: "college"},
			message: "Select an innovation category to view college teams",
		},
		{
			name:  "college with category defaults status",
			query: backend.AssignmentQuery{ParticipationCategory: "college", CategoryID: "3"},
			want:  &backend.AssignmentQuery{ParticipationCategory: "college", CategoryID: "3", Status: "unassign"},
		},
		{
			name:  "school drops a stale category",
			query: backend.AssignmentQuery{ParticipationCategory: "school", CategoryID: "3", Status: "assign"},
			want:  &backend.AssignmentQuery{ParticipationCategory: "school", Status: "assign"},
		},
		{
			name:    "department without category",
			query:   backend.AssignmentQuery{Department: "CSE"},
			message: "Select a category to view teams of the department",
		},
		{
			name:  "department with category",
			query: backend.AssignmentQuery{Department: "CSE,CSE_Cyber_Security", CategoryID: "1"},
			want:  &backend.AssignmentQuery{Department: "CSE,CSE_Cyber_Security", CategoryID: "1", Status: "unassign"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := new(mocks.Backend)
			if tt.want != nil {
				b.On("TeamsByDepartmentAndCategory", mock.Anything, superAdmin, *tt.want).Return([]domain.Team{{ID: 1}}, nil).Once()
			}
			svc := service.NewAssignmentService(b, nil, nil, nil)

			teams, err := svc.Teams(context.Background(), superAdmin, tt.query)
			if tt.want == nil {
				require.Error(t, err)
				assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
				assert.Equal(t, tt.message, errors.MessageOf(err, ""))
				b.AssertNotCalled(t, "TeamsByDepartmentAndCategory", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Len(t, teams, 1)
			b.AssertExpectations(t)
		})
	}
}

func TestValidateAssignment(t *testing.T) {
	tests := []struct {
		name    string
		in      domain.JudgeAssignment
		message string
	}{
		{name: "two judges", in: domain.JudgeAssignment{JudgeID1: 1, JudgeID2: 2, TeamIDs: []int{9}, PanelName: " P1 "}},
		{name: "three judges", in: domain.JudgeAssignment{JudgeID1: 1, JudgeID2: 2, JudgeID3: intp(3), TeamIDs: []int{9}, PanelName: "P1"}},
		{name: "missing second judge", in: domain.JudgeAssignment{JudgeID1: 1, TeamIDs: []int{9}, PanelName: "P1"}, message: "Please select at least 2 judges"},
		{name: "duplicate judge", in: domain.JudgeAssignment{JudgeID1: 1, JudgeID2: 2, JudgeID3: intp(1), TeamIDs: []int{9}, PanelName: "P1"}, message: "The same judge cannot be selected twice"},
		{name: "no teams", in: domain.JudgeAssignment{JudgeID1: 1, JudgeID2: 2, PanelName: "P1"}, message: "Please select at least one team"},
		{name: "blank panel", in: domain.JudgeAssignment{JudgeID1: 1, JudgeID2: 2, TeamIDs: []int{9}, PanelName: "  "}, message: "Panel name is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := service.ValidateAssignment(tt.in)
			if tt.message != "" {
				assert.Equal(t, tt.message, errors.MessageOf(err, ""))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, strings.TrimSpace(tt.in.PanelName), out.PanelName)
		})
	}
}

func TestAssignmentService_Assign(t *testing.T) {
	b := new(mocks.Backend)
	q := backend.AssignmentQuery{ParticipationCategory: "school", Status: "unassign"}
	a := domain.JudgeAssignment{JudgeID1: 4, JudgeID2: 5, TeamIDs: []int{10, 11}, PanelName: "Panel A"}
	b.On("AssignJudges", mock.Anything, superAdmin, q, a).Return("", nil).Once()

	audit := service.NewAuditService(nil, nil)
	svc := service.NewAssignmentService(b, nil, audit, nil)

	msg, err := svc.Assign(context.Background(), superAdmin, backend.AssignmentQuery{ParticipationCategory: "school"}, a)
	require.NoError(t, err)
	assert.Equal(t, "Judges assigned successfully", msg)

	entries, err := audit.List(context.Background(), superAdmin, domain.AuditFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.ActionAssignJudges, entries[0].Action)
	assert.Equal(t, "4,5", entries[0].Detail["judges"])
	assert.Equal(t, "2", entries[0].Detail["teams"])
	b.AssertExpectations(t)
}

func TestAssignmentService_Export(t *testing.T) {
	b := new(mocks.Backend)
	teams := []domain.Team{{
		ID:                 7,
		TeamCode:           "C-07",
		TeamName:           `He said "hi", ok`,
		Department:         "CSE",
		CategoryID:         intp(2),
		ProblemStatementID: intp(12),
		LeaderUser:         &domain.User{Name: "Lee", Email: "lee@example.com"},
	}}
	b.On("TeamsByDepartmentAndCategory", mock.Anything, superAdmin, mock.Anything).Return(teams, nil).Once()

	svc := service.NewAssignmentService(b, nil, nil, nil)
	exp, err := svc.Export(context.Background(), superAdmin, backend.AssignmentQuery{Department: "CSE", CategoryID: "2"})
	require.NoError(t, err)

	assert.Equal(t, 1, exp.Rows)
	assert.True(t, strings.HasPrefix(exp.Filename, "assignment-export-"))
	assert.Equal(t,
		"Team ID,Team Code,Team Name,Department,Category,Problem Statement ID,Leader Name,Leader Email\n"+
			`7,C-07,"He said ""hi"", ok",CSE,AI solutions for automation,12,Lee,lee@example.com`,
		exp.Body)
}
