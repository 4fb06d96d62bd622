package domain

import (
	"fmt"
	"strings"
)

// Participation categories
const (
	ParticipationCollege    = "college"
	ParticipationSchool     = "school"
	ParticipationResearcher = "researcher"
	ParticipationStartup    = "startup"
)

// ParticipationCategories is the full enum in display order
var ParticipationCategories = []string{
	ParticipationCollege,
	ParticipationSchool,
	ParticipationResearcher,
	ParticipationStartup,
}

// IsParticipationCategory validates a participation category value
func IsParticipationCategory(s string) bool {
	for _, pc := range ParticipationCategories {
		if pc == s {
			return true
		}
	}
	return false
}

// Categories is the innovation category catalogue
var Categories = []Category{
	{ID: 1, Name: "Smart Solutions, Smarter Society"},
	{ID: 2, Name: "AI solutions for automation"},
	{ID: 3, Name: "Automation and Robotics"},
	{ID: 4, Name: "From Concept to Reality"},
	{ID: 5, Name: "Start Small, Scale Big, Sustain Always"},
	{ID: 6, Name: "Gen Z to Budding Engineers"},
	{ID: 7, Name: "Creative Visions for a Sustainable Future"},
}

// CategoryName looks up a category by id
func CategoryName(id int) (string, bool) {
	for _, c := range Categories {
		if c.ID == id {
			return c.Name, true
		}
	}
	return "", false
}

// UncategorizedLabel names the results bucket of teams without a category
const UncategorizedLabel = "Uncategorized"

// CategoryLabel returns the catalogue name or "Unknown Category {id}"
func CategoryLabel(id int) string {
	if name, ok := CategoryName(id); ok {
		return name
	}
	return fmt.Sprintf("Unknown Category %d", id)
}

// Departments are the academic branches a college team can belong to
var Departments = []string{
	"CSE", "IT", "CSIT", "CS", "CSE_AI", "CSE_AIML", "ECE", "ELCE", "EEE", "ME",
	"CSE_Cyber_Security", "CSE_Data_Science", "ECE_VLSI", "AMIA", "MCA", "MBA",
	"B_PHARMA", "M_PHARMA", "D_PHARMA", "Other",
}

// DepartmentGroup is a selectable option that may cover several departments.
// Value is the comma-joined list sent to the backend.
type DepartmentGroup struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// DepartmentGroups are the options offered when assigning judges
var DepartmentGroups = []DepartmentGroup{
	{Value: "CSE,CSE_Cyber_Security", Label: "CSE and CSE Cyber Security"},
	{Value: "IT", Label: "IT"},
	{Value: "CSIT", Label: "CSIT"},
	{Value: "CS,CSE_Data_Science", Label: "CS and CSE Data Science"},
	{Value: "CSE_AI", Label: "CSE AI"},
	{Value: "CSE_AIML", Label: "CSE AIML"},
	{Value: "ECE,ECE_VLSI", Label: "ECE and ECE VLSI"},
	{Value: "ELCE", Label: "ELCE"},
	{Value: "EEE", Label: "EEE or EN"},
	{Value: "ME", Label: "ME and AMIA"},
	{Value: "MCA", Label: "MCA"},
	{Value: "MBA", Label: "MBA"},
	{Value: "B_PHARMA,M_PHARMA,D_PHARMA", Label: "B PHARMA and M PHARMA and D PHARMA (KSOP)"},
	{Value: "Other", Label: "Other"},
}

// IsDepartmentList validates a single department or a comma-joined list
func IsDepartmentList(s string) bool {
	if s == "" {
		return false
	}
	for _, part := range strings.Split(s, ",") {
		if !isDepartment(strings.TrimSpace(part)) {
			return false
		}
	}
	return true
}

// DepartmentLabel renders a department code for display
func DepartmentLabel(code string) string {
	return strings.ReplaceAll(code, "_", " ")
}

func isDepartment(s string) bool {
	for _, d := range Departments {
		if d == s {
			return true
		}
	}
	return false
}
