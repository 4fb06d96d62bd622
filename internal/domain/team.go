package domain

import "time"

// Team is a registered team as returned by the admin backend
type Team struct {
	ID                    int               `json:"id"`
	TeamCode              string            `json:"teamCode"`
	TeamName              string            `json:"teamName"`
	Department            string            `json:"department"`
	ParticipationCategory string            `json:"participationCategory"`
	CategoryID            *int              `json:"categoryId,omitempty"`
	Category              *Category         `json:"category,omitempty"`
	ProblemStatementID    *int              `json:"problemStatementId,omitempty"`
	ProblemStatement      *ProblemStatement `json:"problemStatement,omitempty"`
	InnovationIdeaName    string            `json:"inovationIdeaName,omitempty"`
	InnovationIdeaDesc    string            `json:"inovationIdeaDesc,omitempty"`
	TeamSize              int               `json:"teamSize,omitempty"`
	IsCompleted           bool              `json:"isCompleted"`
	IsDepartmentQualified bool              `json:"isDepartmentQualified"`
	LeaderUser            *User             `json:"leaderUser,omitempty"`
	Member1               *User             `json:"member1,omitempty"`
	Member2               *User             `json:"member2,omitempty"`
	Member3               *User             `json:"member3,omitempty"`
	Member4               *User             `json:"member4,omitempty"`
	AssignedJudgeIDs      []int             `json:"assignedJudgeIds,omitempty"`
	NotEvaluatedJudges    []Judge           `json:"notEvaluatedJudges,omitempty"`
	Evaluations           []Evaluation      `json:"evaluations,omitempty"`
	AverageScore          *float64          `json:"averageScore,omitempty"`
	AssignedJudgeCount    int               `json:"numberofassignedJudges,omitempty"`
	EvaluatedJudgeCount   int               `json:"numberofevaluatedJudges,omitempty"`
	CreatedAt             *time.Time        `json:"createdAt,omitempty"`
	UpdatedAt             *time.Time        `json:"updatedAt,omitempty"`
}

// Members returns the non-empty member slots in order
func (t *Team) Members() []*User {
	members := make([]*User, 0, 4)
	for _, m := range []*User{t.Member1, t.Member2, t.Member3, t.Member4} {
		if m != nil {
			members = append(members, m)
		}
	}
	return members
}

// EffectiveCategoryID prefers the flat categoryId and falls back to the
// embedded category relation. Zero means uncategorised.
func (t *Team) EffectiveCategoryID() int {
	if t.CategoryID != nil {
		return *t.CategoryID
	}
	if t.Category != nil {
		return t.Category.ID
	}
	return 0
}

// Category is an innovation category (theme) for college teams
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ProblemStatement belongs to a category
type ProblemStatement struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// TeamSegment selects one of the team listing endpoints
type TeamSegment string

const (
	SegmentCollegeInside  TeamSegment = "college/inside"
	SegmentCollegeOutside TeamSegment = "college/outside"
	SegmentSchool         TeamSegment = "school"
	SegmentResearcher     TeamSegment = "researcher"
	SegmentStartup        TeamSegment = "startup"
)

// TeamSegments lists segments in the order the console shows them
var TeamSegments = []TeamSegment{
	SegmentCollegeInside,
	SegmentCollegeOutside,
	SegmentSchool,
	SegmentResearcher,
	SegmentStartup,
}

// ParseTeamSegment accepts both the path form ("college/inside") and the
// dashed page id ("college-inside").
func ParseTeamSegment(s string) (TeamSegment, bool) {
	for _, seg := range TeamSegments {
		if string(seg) == s || segmentSlug(seg) == s {
			return seg, true
		}
	}
	return "", false
}

// Slug returns the dashed form used in file names and URLs
func (s TeamSegment) Slug() string {
	return segmentSlug(s)
}

// IsCollege reports whether department filters apply to the segment
func (s TeamSegment) IsCollege() bool {
	return s == SegmentCollegeInside || s == SegmentCollegeOutside
}

func segmentSlug(s TeamSegment) string {
	out := []byte(s)
	for i, c := range out {
		if c == '/' {
			out[i] = '-'
		}
	}
	return string(out)
}
