package domain

import "time"

// Evaluation is one judge's score sheet for a team
type Evaluation struct {
	ID                  int        `json:"id"`
	TotalScore          float64    `json:"totalScore"`
	Category1TotalScore float64    `json:"category1TotalScore,omitempty"`
	Category2TotalScore float64    `json:"category2TotalScore,omitempty"`
	Category3TotalScore float64    `json:"category3TotalScore,omitempty"`
	Category4TotalScore float64    `json:"category4TotalScore,omitempty"`
	Category5TotalScore float64    `json:"category5TotalScore,omitempty"`
	Evaluator           *Judge     `json:"evaluator,omitempty"`
	CreatedAt           *time.Time `json:"createdAt,omitempty"`
}

// Panel groups judges with the teams they evaluate
type Panel struct {
	ID         int       `json:"id"`
	PanelName  string    `json:"panelName"`
	Department []string  `json:"department"`
	Category   *Category `json:"category,omitempty"`
}

// PanelDetails is the expanded view of a panel
type PanelDetails struct {
	Panel  Panel   `json:"panel"`
	Teams  []Team  `json:"teams"`
	Judges []Judge `json:"judges"`
}

// JudgeAssignment is the body of the assign-judges request
type JudgeAssignment struct {
	JudgeID1  int    `json:"judgeId1"`
	JudgeID2  int    `json:"judgeId2"`
	JudgeID3  *int   `json:"judgeId3,omitempty"`
	TeamIDs   []int  `json:"teamIds"`
	PanelName string `json:"panelName"`
}

// JudgeIDs lists the assigned judge ids in order
func (a JudgeAssignment) JudgeIDs() []int {
	ids := []int{a.JudgeID1, a.JudgeID2}
	if a.JudgeID3 != nil {
		ids = append(ids, *a.JudgeID3)
	}
	return ids
}

// CategoryGroup is a final-results bucket
type CategoryGroup struct {
	CategoryID     int    `json:"categoryId"`
	Category       string `json:"category"`
	Teams          []Team `json:"teams"`
	QualifiedCount int    `json:"qualifiedCount"`
}
