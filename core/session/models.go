package session

// Roles known to the portal. The backend may mint others (plain "staff"
// accounts predate the role split); anything unrecognized is treated as staff
// when picking a dashboard.
const (
	RoleStudent          = "student"
	RoleCourseLead       = "course_lead"
	RoleWellbeingOfficer = "wellbeing_officer"
	RoleStaff            = "staff"
)

type Role struct {
	Name        string `json:"name"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

// PublicRoles are the roles selectable at registration.
var PublicRoles = []Role{
	{Name: "Student", Value: RoleStudent, Description: "Track your wellbeing and attendance"},
	{Name: "Course Lead", Value: RoleCourseLead, Description: "Manage course and monitor students"},
	{Name: "Wellbeing Officer", Value: RoleWellbeingOfficer, Description: "Support student wellbeing"},
}

// Session is the client-held proof of authentication plus identity metadata.
// The zero value is the anonymous session. Token presence implies UserID and
// Role are present: the four fields are set together and cleared together.
type Session struct {
	Token    string
	UserID   string
	Role     string
	Username string
}

func (s Session) IsAnonymous() bool {
	return s.Token == ""
}
