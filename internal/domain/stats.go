package domain

// DashboardStats is returned by the dashboard endpoint. The per-segment
// totals are only present for super admins.
type DashboardStats struct {
	TotalUsers              int  `json:"totalUsers"`
	TotalTeams              int  `json:"totalTeams"`
	TotalCompletedTeams     int  `json:"totalCompletedTeams"`
	TotalPendingTeams       int  `json:"totalPendingTeams"`
	TotalCollegeInsideTeams *int `json:"totalCollegeInsideTeams,omitempty"`
	TotalSchoolInsideTeams  *int `json:"totalSchoolInsideTeams,omitempty"`
	TotalResearcherTeams    *int `json:"totalResearcherTeams,omitempty"`
	TotalStartupTeams       *int `json:"totalStartupTeams,omitempty"`
}

// RegistrationStatus reports whether registration is open
type RegistrationStatus struct {
	IsOpen bool `json:"isOpen"`
}

// Setting holds the public stats visibility configuration
type Setting struct {
	VisibleStats bool   `json:"visibleStats"`
	TotalUsers   string `json:"totalUsers,omitempty"`
	TotalTeams   string `json:"totalTeams,omitempty"`
}

// Stats types reported by the participants stats endpoint
const (
	StatsTypeCustom   = "s1"
	StatsTypeRealtime = "s2"
)

// ParticipantStats is the public stats configuration as currently displayed
type ParticipantStats struct {
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data,omitempty"`
}

// IsCustom reports whether custom totals are displayed
func (p ParticipantStats) IsCustom() bool {
	return p.Type == StatsTypeCustom
}

// Roles carried in the admin token
const (
	RoleSuperAdmin      = "superadmin"
	RoleDepartmentAdmin = "departmentAdmin"
)
