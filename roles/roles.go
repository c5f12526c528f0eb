package roles

import "strings"

// Role is the kind of account on the roster.
type Role string

// Roles known to the department.
const (
	Officer   Role = "officer"
	Command   Role = "command"
	Attorney  Role = "attorney"
	Developer Role = "developer"
)

// Operation is something an account may be allowed to do.
type Operation string

// Operations gated by role.
const (
	SubmitArrest   Operation = "submit_arrest"
	ViewReports    Operation = "view_reports"
	ManageOfficers Operation = "manage_officers"
	ManageStatutes Operation = "manage_statutes"
	WipeData       Operation = "wipe_data"
	EditProfile    Operation = "edit_profile"
)

var capabilities = map[Role][]Operation{
	Officer:   {SubmitArrest, EditProfile},
	Command:   {SubmitArrest, ViewReports, ManageOfficers, ManageStatutes, EditProfile},
	Attorney:  {ViewReports, EditProfile},
	Developer: {SubmitArrest, ViewReports, ManageOfficers, ManageStatutes, WipeData, EditProfile},
}

var aliases = map[string]Role{
	"officer":   Officer,
	"policial":  Officer,
	"command":   Command,
	"comando":   Command,
	"attorney":  Attorney,
	"advogado":  Attorney,
	"developer": Developer,
	"dev":       Developer,
}

// Parse maps a stored or submitted role name to a Role. Portuguese names from
// older backups are accepted.
func Parse(s string) (Role, bool) {
	r, ok := aliases[strings.ToLower(strings.TrimSpace(s))]
	return r, ok
}

// IsValid returns true if the role is a recognized value.
func (r Role) IsValid() bool {
	_, ok := capabilities[r]
	return ok
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// Capabilities returns the operations a role may perform. Unknown roles get none.
func Capabilities(r Role) []Operation {
	ops := capabilities[r]
	out := make([]Operation, len(ops))
	copy(out, ops)
	return out
}

// Can reports whether the role may perform op.
func Can(r Role, op Operation) bool {
	for _, o := range capabilities[r] {
		if o == op {
			return true
		}
	}
	return false
}
