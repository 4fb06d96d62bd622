package filter

import "hackadmin/internal/domain"

var collegeSegments = []string{string(domain.SegmentCollegeInside), string(domain.SegmentCollegeOutside)}

// EvaluatedSchema drives the evaluated-teams and final-results pages.
// College teams are listed per innovation category.
var EvaluatedSchema = Schema{
	Name:                "evaluated",
	Discriminator:       KeyParticipationCategory,
	DiscriminatorPrompt: "Select a participation category to view teams",
	Branches: []Branch{
		{When: domain.ParticipationCollege, Requires: []string{KeyCategory}, Prompt: "Select an innovation category to view college teams"},
	},
	Dependents: []string{KeyCategory},
	Scoped:     map[string][]string{KeyCategory: {domain.ParticipationCollege}},
	Defaults:   map[string]string{KeyStatus: "all"},
}

// AssignmentSchema is the department-scoped judge assignment page. Both the
// department and the category must be chosen before teams are listed.
var AssignmentSchema = Schema{
	Name:                "assignment",
	Discriminator:       KeyDepartment,
	DiscriminatorPrompt: "Select a department to view teams",
	Branches: []Branch{
		{Requires: []string{KeyCategory}, Prompt: "Select a category to view teams of the department"},
	},
	Defaults: map[string]string{KeyStatus: "unassign"},
}

// ParticipationAssignmentSchema is the assignment page keyed by
// participation category instead of department.
var ParticipationAssignmentSchema = Schema{
	Name:                "assignment-participation",
	Discriminator:       KeyParticipationCategory,
	DiscriminatorPrompt: "Select a participation category to view teams",
	Branches: []Branch{
		{When: domain.ParticipationCollege, Requires: []string{KeyCategory}, Prompt: "Select an innovation category to view college teams"},
	},
	Dependents: []string{KeyCategory},
	Scoped:     map[string][]string{KeyCategory: {domain.ParticipationCollege}},
	Defaults:   map[string]string{KeyStatus: "unassign"},
}

// TeamsSchema drives the paginated team roster. The segment selects the
// listing endpoint; department filters only exist for college segments.
var TeamsSchema = Schema{
	Name:                "teams",
	Discriminator:       KeySegment,
	DiscriminatorPrompt: "Select a team type",
	Dependents:          []string{KeyDepartment, KeyIsCompleted, KeyIsKietian, KeyCategory, KeyQualifiedStatus, KeyStatus},
	Scoped: map[string][]string{
		KeyDepartment: collegeSegments,
		KeyIsKietian:  collegeSegments,
	},
	Defaults: map[string]string{KeyStatus: "all", KeyPage: "1", KeyLimit: "20"},
	Paged:    true,
}

// UsersSchema drives the paginated user roster. Nothing is required.
var UsersSchema = Schema{
	Name:     "users",
	Defaults: map[string]string{KeyPage: "1", KeyLimit: "10"},
	Paged:    true,
}

var schemas = map[string]Schema{
	EvaluatedSchema.Name:               EvaluatedSchema,
	AssignmentSchema.Name:              AssignmentSchema,
	ParticipationAssignmentSchema.Name: ParticipationAssignmentSchema,
	TeamsSchema.Name:                   TeamsSchema,
	UsersSchema.Name:                   UsersSchema,
}

// SchemaFor looks up a built-in schema by page name
func SchemaFor(page string) (Schema, bool) {
	s, ok := schemas[page]
	return s, ok
}

// Pages lists the page names with a built-in schema
func Pages() []string {
	return []string{
		EvaluatedSchema.Name,
		AssignmentSchema.Name,
		ParticipationAssignmentSchema.Name,
		TeamsSchema.Name,
		UsersSchema.Name,
	}
}
