package models

type Role string

const (
	RoleStudent Role = "student"
	RoleAlumni  Role = "alumni"
	RoleAdmin   Role = "admin"
)

// QARecord is one entry of the assistant knowledge base.
type QARecord struct {
	Category string   `yaml:"-" json:"category"`
	Question string   `yaml:"question" json:"question"`
	Answer   string   `yaml:"answer" json:"answer"`
	Keywords []string `yaml:"keywords" json:"keywords"`
	Roles    []Role   `yaml:"roles" json:"roles"`
}

// VisibleTo reports whether the record may be returned to the given role.
func (r *QARecord) VisibleTo(role Role) bool {
	for _, allowed := range r.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}
