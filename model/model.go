package model

// UserState is the activation flag of a user account. Only the two values
// below are legal; anything else is rejected at the store boundary.
type UserState string

const (
	UserActive   UserState = "A"
	UserInactive UserState = "I"
)

func (s UserState) Valid() bool {
	return s == UserActive || s == UserInactive
}

// User type ids. Roles 4 and 5 are the ones allowed to answer forms.
const (
	RoleAdmin            = 1
	RoleTI               = 2
	RoleAuditor          = 3
	RoleRespondent       = 4
	RoleBackupRespondent = 5
)

type User struct {
	ID             int       `json:"usu_id"`
	Name           string    `json:"usu_name"`
	Lastname       string    `json:"usu_lastname"`
	SecondLastname string    `json:"usu_slastname"`
	Email          string    `json:"usu_email"`
	State          UserState `json:"usu_state"`
	ToRespond      string    `json:"usu_torespond"`
	UserTypeID     int       `json:"userType_usut_id"`
	DepartmentID   *int      `json:"department_dep_id"`
}

// IsRespondent reports whether the user may fetch and answer the form of
// their department: assigned to a department, flagged to respond, account
// active, and holding one of the respondent roles.
func (u User) IsRespondent() bool {
	return u.DepartmentID != nil &&
		u.ToRespond == "y" &&
		u.State == UserActive &&
		(u.UserTypeID == RoleRespondent || u.UserTypeID == RoleBackupRespondent)
}

type Department struct {
	ID       int    `json:"dep_id"`
	Name     string `json:"dep_name"`
	Initials string `json:"dep_initials"`
	Forms    []Form `json:"axisform"`
}

// Form lifecycle: draft forms accept structural edits, active forms are the
// ones respondents see as current.
const (
	FormStatusDraft  = "d"
	FormStatusActive = "a"
)

type Form struct {
	ID           int       `json:"form_id"`
	Name         string    `json:"form_name"`
	Status       string    `json:"form_status"`
	DepartmentID int       `json:"DEPARTMENT_dep_id"`
	Sections     []Section `json:"section"`
}

func (f Form) Editable() bool {
	return f.Status == FormStatusDraft
}

type Section struct {
	ID        int        `json:"sect_id"`
	Name      string     `json:"sect_name"`
	FormID    int        `json:"FORM_form_id"`
	Questions []Question `json:"question"`
}

type Question struct {
	ID        int      `json:"quest_id"`
	Order     int      `json:"quest_ordern"`
	Text      string   `json:"quest_question"`
	SectionID int      `json:"SECTION_sect_id"`
	Answers   []Answer `json:"answer"`
}

// Answer returns the canonical answer of the question, if any. The wire
// format allows a list, but there is at most one per respondent.
func (q Question) Answer() *Answer {
	if len(q.Answers) == 0 {
		return nil
	}
	return &q.Answers[0]
}

func (q Question) Answered() bool {
	a := q.Answer()
	return a != nil && a.Value != ""
}

type Answer struct {
	ID         int     `json:"answ_id"`
	Value      string  `json:"answ_answer"`
	Evidence   *string `json:"answ_evidence"`
	QuestionID int     `json:"QUESTION_quest_id"`
	UserID     int     `json:"USER_usu_id"`
}
