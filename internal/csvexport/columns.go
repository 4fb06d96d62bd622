package csvexport

import (
	"cmp"
	"slices"

	"hackadmin/internal/domain"
)

func leader(t domain.Team) *domain.User { return t.LeaderUser }

func leaderField(get func(*domain.User) any) func(domain.Team) any {
	return func(t domain.Team) any {
		if u := leader(t); u != nil {
			return get(u)
		}
		return nil
	}
}

func categoryName(t domain.Team) any {
	if t.Category != nil && t.Category.Name != "" {
		return t.Category.Name
	}
	if t.CategoryID != nil {
		if name, ok := domain.CategoryName(*t.CategoryID); ok {
			return name
		}
		return *t.CategoryID
	}
	return nil
}

// TeamColumns is the team export layout
var TeamColumns = []Column[domain.Team]{
	{Header: "Team ID", Value: func(t domain.Team) any { return t.ID }},
	{Header: "Team Code", Value: func(t domain.Team) any { return t.TeamCode }},
	{Header: "Team Name", Value: func(t domain.Team) any { return t.TeamName }},
	{Header: "Participation Category", Value: func(t domain.Team) any { return t.ParticipationCategory }},
	{Header: "Department", Value: func(t domain.Team) any { return t.Department }},
	{Header: "Category", Value: categoryName},
	{Header: "Problem Statement", Value: func(t domain.Team) any {
		if t.ProblemStatement != nil {
			return t.ProblemStatement.Title
		}
		return t.ProblemStatementID
	}},
	{Header: "Innovation Idea", Value: func(t domain.Team) any { return t.InnovationIdeaName }},
	{Header: "Leader Name", Value: leaderField(func(u *domain.User) any { return u.Name })},
	{Header: "Leader Email", Value: leaderField(func(u *domain.User) any { return u.Email })},
	{Header: "Leader Phone", Value: leaderField(func(u *domain.User) any { return u.Phonenumber })},
	{Header: "Leader Branch", Value: leaderField(func(u *domain.User) any {
		if u.CollegeStudent != nil {
			return u.CollegeStudent.Branch
		}
		return nil
	})},
	{Header: "Team Size", Value: func(t domain.Team) any { return t.TeamSize }},
	{Header: "Members", Value: func(t domain.Team) any {
		names := []string{}
		for _, m := range t.Members() {
			names = append(names, m.Name)
		}
		return names
	}},
	{Header: "Completed", Value: func(t domain.Team) any { return t.IsCompleted }},
	{Header: "Department Qualified", Value: func(t domain.Team) any { return t.IsDepartmentQualified }},
	{Header: "Assigned Judges", Value: func(t domain.Team) any { return len(t.AssignedJudgeIDs) }},
	{Header: "Average Score", Value: func(t domain.Team) any { return t.AverageScore }},
	{Header: "Created At", Value: func(t domain.Team) any { return t.CreatedAt }},
}

// UserColumns is the user export layout
var UserColumns = []Column[domain.User]{
	{Header: "ID", Value: func(u domain.User) any { return u.ID }},
	{Header: "User ID", Value: func(u domain.User) any { return u.UserID }},
	{Header: "Name", Value: func(u domain.User) any { return u.Name }},
	{Header: "Email", Value: func(u domain.User) any { return u.Email }},
	{Header: "Phone Number", Value: func(u domain.User) any { return u.Phonenumber }},
	{Header: "Participation Category", Value: func(u domain.User) any { return u.ParticipationCategory }},
	{Header: "Profile Type", Value: func(u domain.User) any { return u.ProfileType() }},
	{Header: "Kietian", Value: func(u domain.User) any { return u.IsKietian }},
	{Header: "College", Value: func(u domain.User) any {
		if u.CollegeStudent != nil {
			return u.CollegeStudent.College
		}
		return nil
	}},
	{Header: "Branch", Value: func(u domain.User) any {
		if u.CollegeStudent != nil {
			return u.CollegeStudent.Branch
		}
		return nil
	}},
	{Header: "Year", Value: func(u domain.User) any {
		if u.CollegeStudent != nil && u.CollegeStudent.Year > 0 {
			return u.CollegeStudent.Year
		}
		return nil
	}},
	{Header: "School", Value: func(u domain.User) any {
		if u.SchoolStudent != nil {
			return u.SchoolStudent.School
		}
		return nil
	}},
	{Header: "Class", Value: func(u domain.User) any {
		if u.SchoolStudent != nil {
			return u.SchoolStudent.Class
		}
		return nil
	}},
	{Header: "Institution", Value: func(u domain.User) any {
		if u.Researcher != nil {
			return u.Researcher.Institution
		}
		return nil
	}},
	{Header: "Startup", Value: func(u domain.User) any {
		if u.Startup != nil {
			return u.Startup.StartupName
		}
		return nil
	}},
	{Header: "Created At", Value: func(u domain.User) any { return u.CreatedAt }},
}

// AssignmentColumns is the judge-assignment export layout
var AssignmentColumns = []Column[domain.Team]{
	{Header: "Team ID", Value: func(t domain.Team) any { return t.ID }},
	{Header: "Team Code", Value: func(t domain.Team) any { return t.TeamCode }},
	{Header: "Team Name", Value: func(t domain.Team) any { return t.TeamName }},
	{Header: "Department", Value: func(t domain.Team) any { return t.Department }},
	{Header: "Category", Value: func(t domain.Team) any {
		if t.CategoryID == nil {
			return categoryName(t)
		}
		if name, ok := domain.CategoryName(*t.CategoryID); ok {
			return name
		}
		return *t.CategoryID
	}},
	{Header: "Problem Statement ID", Value: func(t domain.Team) any { return t.ProblemStatementID }},
	{Header: "Leader Name", Value: leaderField(func(u *domain.User) any { return u.Name })},
	{Header: "Leader Email", Value: leaderField(func(u *domain.User) any { return u.Email })},
}

// PanelRow flattens one team of a panel together with the panel's judges
type PanelRow struct {
	Panel  domain.Panel
	Team   domain.Team
	Judges []domain.Judge
}

// PanelRows expands panel details into one row per team
func PanelRows(d domain.PanelDetails) []PanelRow {
	rows := make([]PanelRow, 0, len(d.Teams))
	for _, t := range d.Teams {
		rows = append(rows, PanelRow{Panel: d.Panel, Team: t, Judges: d.Judges})
	}
	return rows
}

func judgeField(get func(domain.Judge) string) func(PanelRow) any {
	return func(r PanelRow) any {
		out := make([]string, 0, len(r.Judges))
		for _, j := range r.Judges {
			out = append(out, get(j))
		}
		return out
	}
}

// PanelColumns is the panel export layout
var PanelColumns = []Column[PanelRow]{
	{Header: "Panel Name", Value: func(r PanelRow) any { return r.Panel.PanelName }},
	{Header: "Panel Department", Value: func(r PanelRow) any { return r.Panel.Department }},
	{Header: "Panel Category", Value: func(r PanelRow) any {
		if r.Panel.Category != nil {
			return r.Panel.Category.Name
		}
		return nil
	}},
	{Header: "Team ID", Value: func(r PanelRow) any { return r.Team.ID }},
	{Header: "Team Code", Value: func(r PanelRow) any { return r.Team.TeamCode }},
	{Header: "Team Name", Value: func(r PanelRow) any { return r.Team.TeamName }},
	{Header: "Department", Value: func(r PanelRow) any { return r.Team.Department }},
	{Header: "Leader Name", Value: func(r PanelRow) any { return leaderField(func(u *domain.User) any { return u.Name })(r.Team) }},
	{Header: "Leader Email", Value: func(r PanelRow) any { return leaderField(func(u *domain.User) any { return u.Email })(r.Team) }},
	{Header: "Category Name", Value: func(r PanelRow) any { return categoryName(r.Team) }},
	{Header: "Judges", Value: judgeField(func(j domain.Judge) string { return j.Name })},
	{Header: "Judge Emails", Value: judgeField(func(j domain.Judge) string { return j.Email })},
	{Header: "Judge Phone Numbers", Value: judgeField(func(j domain.Judge) string { return j.Phonenumber })},
}

// SortTeamsByCategoryThenCode orders teams by category id, then team code
func SortTeamsByCategoryThenCode(teams []domain.Team) {
	slices.SortStableFunc(teams, func(a, b domain.Team) int {
		if c := cmp.Compare(a.EffectiveCategoryID(), b.EffectiveCategoryID()); c != 0 {
			return c
		}
		return cmp.Compare(a.TeamCode, b.TeamCode)
	})
}

// SortUsersByYear orders users by college year; users without a year go last
func SortUsersByYear(users []domain.User) {
	year := func(u domain.User) int {
		if u.CollegeStudent == nil || u.CollegeStudent.Year <= 0 {
			return int(^uint(0) >> 1)
		}
		return u.CollegeStudent.Year
	}
	slices.SortStableFunc(users, func(a, b domain.User) int {
		return cmp.Compare(year(a), year(b))
	})
}
