package validation

// Kind tells the engine how to read a field's raw value.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindDateTime
	KindEmail
)

// SchemaName names one input shape.
type SchemaName string

const (
	SchemaAssignment SchemaName = "assignment"
	SchemaSubmission SchemaName = "submission"
	SchemaGrade      SchemaName = "grade"
	SchemaLogin      SchemaName = "login"
	SchemaSignup     SchemaName = "signup"
)

// Rule is one row of a schema table.
// Min and Max bound the length of strings, zero meaning unbounded.
// For KindInt they bound the value: Min is always enforced, a zero Max means unbounded.
type Rule struct {
	Field    string
	Kind     Kind
	Required bool
	Min      int
	Max      int
	OneOf    []string
	EqField  string // the value must equal this (already normalized) field
	Default  string
	Lower    bool   // lower-case before checking
	Raw      bool   // keep surrounding whitespace (passwords)
	Message  string // replaces the translated message of a failed EqField check
}

// Schema is an ordered table of rules.
type Schema []Rule

var (
	Priorities = []string{"low", "medium", "high"}
	Roles      = []string{"student", "teacher"}
)

var schemas = map[SchemaName]Schema{
	SchemaAssignment: {
		{Field: "title", Required: true, Max: 100},
		{Field: "course", Required: true},
		{Field: "dueDate", Kind: KindDateTime, Required: true},
		{Field: "description", Required: true, Min: 10, Max: 500},
		{Field: "priority", OneOf: Priorities, Default: "medium", Lower: true},
	},
	SchemaSubmission: {
		{Field: "assignmentId", Kind: KindInt, Required: true, Min: 1},
		{Field: "comments", Max: 300},
	},
	SchemaGrade: {
		{Field: "score", Kind: KindInt, Required: true, Min: 0, Max: 100},
		{Field: "feedback", Max: 500},
	},
	SchemaLogin: {
		{Field: "email", Kind: KindEmail, Required: true, Lower: true},
		{Field: "password", Required: true, Min: 6, Raw: true},
	},
	SchemaSignup: {
		{Field: "firstName", Required: true},
		{Field: "lastName", Required: true},
		{Field: "email", Kind: KindEmail, Required: true, Lower: true},
		{Field: "password", Required: true, Min: 6, Raw: true},
		{Field: "confirmPassword", Required: true, Raw: true, EqField: "password", Message: "passwords do not match"},
		{Field: "role", Required: true, OneOf: Roles, Lower: true},
	},
}

// Lookup returns the named schema.
func Lookup(name SchemaName) (Schema, bool) {
	s, ok := schemas[name]
	return s, ok
}

// Names returns every registered schema name.
func Names() []SchemaName {
	return []SchemaName{SchemaAssignment, SchemaSubmission, SchemaGrade, SchemaLogin, SchemaSignup}
}
