package domain

import "time"

// Audited console actions
const (
	ActionAssignJudges       = "assign_judges"
	ActionCreateJudge        = "create_judge"
	ActionMarkQualified      = "mark_qualified"
	ActionDeleteEvaluation   = "delete_evaluation"
	ActionUpdateSetting      = "update_setting"
	ActionRegistrationStatus = "registration_status"
	ActionExport             = "export"
)

// AuditEntry records one mutating admin action
type AuditEntry struct {
	ID        string            `json:"id"`
	Actor     string            `json:"actor"`
	Role      string            `json:"role"`
	Action    string            `json:"action"`
	Target    string            `json:"target"`
	Detail    map[string]string `json:"detail,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

// AuditFilter narrows an audit listing. Zero values match everything.
type AuditFilter struct {
	Actor  string
	Action string
	Limit  int
}
