// Package policy centralizes the role- and ownership-based access rules.
// Every state-changing or resource-scoped handler asks Allowed before touching
// the database, so the rules live in one table instead of being repeated per
// handler. Query-level visibility scoping (who sees which rows in a list) is
// still done in the handlers; a row hidden by scoping reads as not found.
package policy

import "learnhub/models"

// Action is the operation a principal attempts on a resource.
type Action string

const (
	ActionList        Action = "list"
	ActionRetrieve    Action = "retrieve"
	ActionCreate      Action = "create"
	ActionUpdate      Action = "update"
	ActionDelete      Action = "delete"
	ActionRestore     Action = "restore"
	ActionListDeleted Action = "list_deleted"
)

// Entity names the resource type a rule applies to.
type Entity string

const (
	EntityCourse     Entity = "course"
	EntityEnrollment Entity = "enrollment"
	EntityQuiz       Entity = "quiz"
	EntitySubmission Entity = "submission"
)

// Principal is the authenticated actor, resolved from the JWT plus a fresh
// profile lookup.
type Principal struct {
	UserID  uint
	Role    string
	IsStaff bool
}

// Resource carries the ownership facts a rule may consult. OwnerID is the
// course instructor for courses and quizzes, the student for enrollments and
// submissions. InstructorID is the parent course's instructor for quiz-scoped
// resources (quizzes, submissions); zero when not applicable.
type Resource struct {
	Entity       Entity
	OwnerID      uint
	InstructorID uint
}

type rule func(p Principal, r Resource) bool

func anyone(Principal, Resource) bool { return true }

func owner(p Principal, r Resource) bool { return p.UserID == r.OwnerID && r.OwnerID != 0 }

func instructorRole(p Principal, _ Resource) bool { return p.Role == models.RoleInstructor }

func studentRole(p Principal, _ Resource) bool { return p.Role == models.RoleStudent }

func courseInstructor(p Principal, r Resource) bool {
	return p.UserID == r.InstructorID && r.InstructorID != 0
}

func nobody(Principal, Resource) bool { return false }

func ownerOrCourseInstructor(p Principal, r Resource) bool {
	return owner(p, r) || courseInstructor(p, r)
}

// rules is keyed by (entity, action). Absent entries deny. Admin short-circuits
// before the table is consulted, so rules only describe non-staff access.
var rules = map[Entity]map[Action]rule{
	EntityCourse: {
		ActionList:     anyone,
		ActionRetrieve: anyone,
		ActionCreate:   instructorRole,
		ActionUpdate:   owner,
		ActionDelete:   owner,
		// restore and list_deleted are admin-only: no non-staff rule.
	},
	EntityEnrollment: {
		ActionList:     anyone, // handlers scope the query to the principal's own rows
		ActionRetrieve: owner,
		ActionCreate:   studentRole,
		ActionDelete:   owner,
	},
	EntityQuiz: {
		ActionList:     anyone,
		ActionRetrieve: anyone,
		ActionCreate:   courseInstructor,
		ActionUpdate:   courseInstructor,
		ActionDelete:   courseInstructor,
	},
	EntitySubmission: {
		ActionList:     anyone, // scoped per role in the handler
		ActionRetrieve: ownerOrCourseInstructor,
		ActionCreate:   nobody, // created only through the start-submission flow
		ActionUpdate:   owner,  // submit-answer / finalize only
		ActionDelete:   nobody,
	},
}

// Allowed decides whether the principal may perform action on the resource.
// Staff always wins. For list/create there is no concrete resource yet; pass a
// Resource with only Entity set.
func Allowed(p Principal, action Action, r Resource) bool {
	if p.IsStaff {
		return true
	}
	actions, ok := rules[r.Entity]
	if !ok {
		return false
	}
	check, ok := actions[action]
	if !ok {
		return false
	}
	return check(p, r)
}
