package domain

import "time"

// User is a registered participant
type User struct {
	ID                    int             `json:"id"`
	UserID                string          `json:"userId,omitempty"`
	Name                  string          `json:"name"`
	Email                 string          `json:"email"`
	Phonenumber           string          `json:"phonenumber,omitempty"`
	ProfileImage          string          `json:"profileImage,omitempty"`
	ParticipationCategory string          `json:"participationCategory,omitempty"`
	IsKietian             bool            `json:"isKietian"`
	CollegeStudent        *CollegeStudent `json:"collegeStudent,omitempty"`
	SchoolStudent         *SchoolStudent  `json:"schoolStudent,omitempty"`
	Researcher            *Researcher     `json:"researcher,omitempty"`
	Startup               *Startup        `json:"startup,omitempty"`
	CreatedAt             *time.Time      `json:"createdAt,omitempty"`
}

// CollegeStudent profile
type CollegeStudent struct {
	College string `json:"college"`
	Branch  string `json:"branch"`
	Year    int    `json:"year"`
}

// SchoolStudent profile
type SchoolStudent struct {
	School string `json:"school"`
	Class  string `json:"class"`
}

// Researcher profile
type Researcher struct {
	Institution string `json:"institution"`
	Designation string `json:"designation"`
}

// Startup profile
type Startup struct {
	StartupName string `json:"startupName"`
	Stage       string `json:"stage"`
}

// ProfileType names the populated profile relation
func (u *User) ProfileType() string {
	switch {
	case u.CollegeStudent != nil:
		return "collegeStudent"
	case u.SchoolStudent != nil:
		return "schoolStudent"
	case u.Researcher != nil:
		return "researcher"
	case u.Startup != nil:
		return "startup"
	default:
		return ""
	}
}

// Judge evaluates teams within a panel
type Judge struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phonenumber string     `json:"phonenumber,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

// NewJudge is the create-judge form
type NewJudge struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Phonenumber string `json:"phonenumber"`
}
