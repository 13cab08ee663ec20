package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vibhu2208/hrms-backend-sub007/internal/models"
)

const (
	FindingUnlinkedEmployee       = "unlinked-employee"
	FindingDanglingUserLink       = "dangling-user-link"
	FindingMissingUserBacklink    = "missing-user-backlink"
	FindingEmployeeWithoutAccount = "employee-without-account"
	FindingOrphanUser             = "orphan-user"
	FindingOffboardingUserRef     = "offboarding-user-ref"
	FindingOrphanOffboarding      = "orphan-offboarding"
	FindingOffboardedStillActive  = "offboarded-still-active"
	FindingDuplicateEmployeeCode  = "duplicate-employee-code"
	FindingDuplicateEmail         = "duplicate-email"
	FindingConflictingUserLink    = "conflicting-user-link"
)

type FixKind string

const (
	FixLinkUser           FixKind = "link-user"
	FixClearUser          FixKind = "clear-user"
	FixRepointOffboarding FixKind = "repoint-offboarding"
	FixDeactivate         FixKind = "deactivate"
)

type Fix struct {
	Kind          FixKind        `json:"kind"`
	EmployeeID    bson.ObjectID  `json:"employeeId"`
	UserID        *bson.ObjectID `json:"userId,omitempty"`
	OffboardingID *bson.ObjectID `json:"offboardingId,omitempty"`
}

type Finding struct {
	Kind    string `json:"kind"`
	Subject string `json:"subject"`
	Detail  string `json:"detail"`
	Fix     *Fix   `json:"fix,omitempty"`
}

type ReconcilePlan struct {
	Findings []Finding `json:"findings"`
}

func (p ReconcilePlan) Fixes() []Fix {
	var out []Fix
	for _, f := range p.Findings {
		if f.Fix != nil {
			out = append(out, *f.Fix)
		}
	}
	return out
}

func (p ReconcilePlan) Count(kind string) int {
	n := 0
	for _, f := range p.Findings {
		if f.Kind == kind {
			n++
		}
	}
	return n
}

// identity indexes the three collections so an employee can be found from
// any of the references the application has historically stored.
type identity struct {
	usersByID       map[bson.ObjectID]models.User
	usersByEmail    map[string]models.User
	employeesByID   map[bson.ObjectID]models.Employee
	employeesByMail map[string]models.Employee
	mailCount       map[string]int
	// linkedFrom lists the employees whose userId names an existing user.
	linkedFrom map[bson.ObjectID][]bson.ObjectID
	// resolved is the account each employee ends up with once the plan is
	// applied; employeeOfUser is its inverse.
	resolved       map[bson.ObjectID]bson.ObjectID
	employeeOfUser map[bson.ObjectID]bson.ObjectID
}

func newIdentity(users []models.User, employees []models.Employee) *identity {
	id := &identity{
		usersByID:       make(map[bson.ObjectID]models.User, len(users)),
		usersByEmail:    make(map[string]models.User, len(users)),
		employeesByID:   make(map[bson.ObjectID]models.Employee, len(employees)),
		employeesByMail: make(map[string]models.Employee, len(employees)),
		mailCount:       make(map[string]int, len(employees)),
		linkedFrom:      make(map[bson.ObjectID][]bson.ObjectID),
		resolved:        make(map[bson.ObjectID]bson.ObjectID),
		employeeOfUser:  make(map[bson.ObjectID]bson.ObjectID),
	}
	for _, u := range users {
		id.usersByID[u.ID] = u
		if key := models.NormalizeEmail(u.Email); key != "" {
			if _, dup := id.usersByEmail[key]; !dup {
				id.usersByEmail[key] = u
			}
		}
	}
	for _, e := range employees {
		id.employeesByID[e.ID] = e
		if key := models.NormalizeEmail(e.Email); key != "" {
			id.mailCount[key]++
			if _, dup := id.employeesByMail[key]; !dup {
				id.employeesByMail[key] = e
			}
		}
		if e.UserID != nil {
			if _, ok := id.usersByID[*e.UserID]; ok {
				id.linkedFrom[*e.UserID] = append(id.linkedFrom[*e.UserID], e.ID)
			}
		}
	}
	return id
}

func (id *identity) resolve(employeeID, userID bson.ObjectID) {
	id.resolved[employeeID] = userID
	if _, taken := id.employeeOfUser[userID]; !taken {
		id.employeeOfUser[userID] = employeeID
	}
}

// storedUser returns the user an employee's userId names, if it exists.
func (id *identity) storedUser(e models.Employee) (models.User, bool) {
	if e.UserID == nil {
		return models.User{}, false
	}
	u, ok := id.usersByID[*e.UserID]
	return u, ok
}

// backlinkOwner reports the other existing employee a user's employeeId
// names, if any.
func (id *identity) backlinkOwner(u models.User, e models.Employee) (models.Employee, bool) {
	if u.EmployeeID == nil || *u.EmployeeID == e.ID {
		return models.Employee{}, false
	}
	other, ok := id.employeesByID[*u.EmployeeID]
	return other, ok
}

// emailLinkBlocker explains why e must not be linked to u by email, or
// returns "" when the link is safe.
func (id *identity) emailLinkBlocker(e models.Employee, u models.User) string {
	if n := id.mailCount[models.NormalizeEmail(e.Email)]; n > 1 {
		return fmt.Sprintf("email %s is shared by %d employees", models.NormalizeEmail(e.Email), n)
	}
	if others := id.linkedFrom[u.ID]; len(others) > 0 {
		return fmt.Sprintf("user %s is already linked from employee %s", u.Email, others[0].Hex())
	}
	if other, ok := id.backlinkOwner(u, e); ok {
		return fmt.Sprintf("user %s has employeeId of %s", u.Email, employeeLabel(other))
	}
	return ""
}

// employeeFor resolves an offboarding reference. direct is false when the
// reference had to go through a user or an email.
func (id *identity) employeeFor(o models.OffboardingRequest) (e models.Employee, direct bool, ok bool) {
	if e, ok := id.employeesByID[o.Employee]; ok {
		return e, true, true
	}
	if u, ok := id.usersByID[o.Employee]; ok {
		if eid, ok := id.employeeOfUser[u.ID]; ok {
			return id.employeesByID[eid], false, true
		}
		if u.EmployeeID != nil {
			if e, ok := id.employeesByID[*u.EmployeeID]; ok {
				return e, false, true
			}
		}
		if e, ok := id.employeesByMail[models.NormalizeEmail(u.Email)]; ok {
			return e, false, true
		}
	}
	if key := models.NormalizeEmail(o.EmployeeEmail); key != "" {
		if e, ok := id.employeesByMail[key]; ok {
			return e, false, true
		}
	}
	return models.Employee{}, false, false
}

func employeeLabel(e models.Employee) string {
	if e.EmployeeCode != "" {
		return fmt.Sprintf("employee %s (%s)", e.EmployeeCode, e.ID.Hex())
	}
	return "employee " + e.ID.Hex()
}

// PlanReconcile cross-checks users, employees and offboarding requests and
// proposes the fixes that can be made without operator judgement.
func PlanReconcile(users []models.User, employees []models.Employee, offboardings []models.OffboardingRequest) ReconcilePlan {
	id := newIdentity(users, employees)
	plan := ReconcilePlan{Findings: []Finding{}}
	add := func(f Finding) { plan.Findings = append(plan.Findings, f) }

	codes := map[string][]string{}
	mails := map[string][]string{}
	var codeOrder, mailOrder []string
	for _, e := range employees {
		if e.EmployeeCode != "" {
			if _, seen := codes[e.EmployeeCode]; !seen {
				codeOrder = append(codeOrder, e.EmployeeCode)
			}
			codes[e.EmployeeCode] = append(codes[e.EmployeeCode], e.ID.Hex())
		}
		if key := models.NormalizeEmail(e.Email); key != "" {
			if _, seen := mails[key]; !seen {
				mailOrder = append(mailOrder, key)
			}
			mails[key] = append(mails[key], e.ID.Hex())
		}
	}
	for _, code := range codeOrder {
		if ids := codes[code]; len(ids) > 1 {
			add(Finding{Kind: FindingDuplicateEmployeeCode, Subject: "employeeCode " + code, Detail: fmt.Sprintf("shared by %v", ids)})
		}
	}
	for _, m := range mailOrder {
		if ids := mails[m]; len(ids) > 1 {
			add(Finding{Kind: FindingDuplicateEmail, Subject: "email " + m, Detail: fmt.Sprintf("shared by %v", ids)})
		}
	}

	for _, e := range employees {
		if u, ok := id.storedUser(e); ok {
			planStoredLink(id, e, u, add)
			continue
		}
		u, found := id.usersByEmail[models.NormalizeEmail(e.Email)]
		found = found && models.NormalizeEmail(e.Email) != ""
		blocker := ""
		if found {
			blocker = id.emailLinkBlocker(e, u)
		}
		uid := u.ID
		switch {
		case e.UserID != nil && found && blocker == "":
			id.resolve(e.ID, u.ID)
			add(Finding{
				Kind: FindingDanglingUserLink, Subject: employeeLabel(e),
				Detail: fmt.Sprintf("userId %s does not exist; relinking to %s by email", e.UserID.Hex(), u.Email),
				Fix:    &Fix{Kind: FixLinkUser, EmployeeID: e.ID, UserID: &uid},
			})
		case e.UserID != nil && found:
			add(Finding{
				Kind: FindingDanglingUserLink, Subject: employeeLabel(e),
				Detail: fmt.Sprintf("userId %s does not exist and %s; clearing", e.UserID.Hex(), blocker),
				Fix:    &Fix{Kind: FixClearUser, EmployeeID: e.ID},
			})
		case e.UserID != nil:
			add(Finding{
				Kind: FindingDanglingUserLink, Subject: employeeLabel(e),
				Detail: fmt.Sprintf("userId %s does not exist and no user has email %q", e.UserID.Hex(), e.Email),
				Fix:    &Fix{Kind: FixClearUser, EmployeeID: e.ID},
			})
		case found && blocker == "":
			id.resolve(e.ID, u.ID)
			add(Finding{
				Kind: FindingUnlinkedEmployee, Subject: employeeLabel(e),
				Detail: fmt.Sprintf("matches user %s by email", u.Email),
				Fix:    &Fix{Kind: FixLinkUser, EmployeeID: e.ID, UserID: &uid},
			})
		case found:
			add(Finding{Kind: FindingConflictingUserLink, Subject: employeeLabel(e), Detail: "not linked: " + blocker})
		default:
			add(Finding{Kind: FindingEmployeeWithoutAccount, Subject: employeeLabel(e), Detail: "no user account resolvable"})
		}
	}

	for _, u := range users {
		if u.IsPrivileged() || u.Role == models.RoleCandidate {
			continue
		}
		if _, claimed := id.employeeOfUser[u.ID]; claimed {
			continue
		}
		if u.EmployeeID != nil {
			if _, ok := id.employeesByID[*u.EmployeeID]; ok {
				continue
			}
		}
		add(Finding{Kind: FindingOrphanUser, Subject: "user " + u.Email, Detail: fmt.Sprintf("role %q has no employee record", u.Role)})
	}

	deactivated := map[bson.ObjectID]bool{}
	for _, o := range offboardings {
		oid := o.ID
		e, direct, ok := id.employeeFor(o)
		if !ok {
			add(Finding{
				Kind: FindingOrphanOffboarding, Subject: "offboarding " + o.ID.Hex(),
				Detail: fmt.Sprintf("employee reference %s resolves to nothing", o.Employee.Hex()),
			})
			continue
		}
		if !direct {
			add(Finding{
				Kind: FindingOffboardingUserRef, Subject: "offboarding " + o.ID.Hex(),
				Detail: fmt.Sprintf("references %s instead of %s", o.Employee.Hex(), employeeLabel(e)),
				Fix:    &Fix{Kind: FixRepointOffboarding, EmployeeID: e.ID, OffboardingID: &oid},
			})
		}
		if o.Status == models.OffboardingCompleted && e.Active() && !deactivated[e.ID] {
			deactivated[e.ID] = true
			fix := &Fix{Kind: FixDeactivate, EmployeeID: e.ID}
			if u, found := id.userFor(e); found {
				uid := u.ID
				fix.UserID = &uid
			}
			add(Finding{
				Kind: FindingOffboardedStillActive, Subject: employeeLabel(e),
				Detail: fmt.Sprintf("offboarding %s completed but status is %q", o.ID.Hex(), e.Status),
				Fix:    fix,
			})
		}
	}
	return plan
}

// planStoredLink checks an employee whose userId names an existing user. The
// backlink is only written when no other employee claims the user.
func planStoredLink(id *identity, e models.Employee, u models.User, add func(Finding)) {
	uid := u.ID
	if others := id.linkedFrom[u.ID]; len(others) > 1 {
		if others[0] == e.ID {
			id.resolve(e.ID, u.ID)
		}
		add(Finding{
			Kind: FindingConflictingUserLink, Subject: employeeLabel(e),
			Detail: fmt.Sprintf("user %s is linked from %d employees", u.Email, len(others)),
		})
		return
	}
	id.resolve(e.ID, u.ID)
	if other, ok := id.backlinkOwner(u, e); ok {
		add(Finding{
			Kind: FindingConflictingUserLink, Subject: employeeLabel(e),
			Detail: fmt.Sprintf("user %s has employeeId of %s", u.Email, employeeLabel(other)),
		})
		return
	}
	if u.EmployeeID == nil || *u.EmployeeID != e.ID {
		add(Finding{
			Kind: FindingMissingUserBacklink, Subject: employeeLabel(e),
			Detail: fmt.Sprintf("user %s has no valid employeeId", u.Email),
			Fix:    &Fix{Kind: FixLinkUser, EmployeeID: e.ID, UserID: &uid},
		})
	}
}

// ReconcileWriter applies individual fixes.
type ReconcileWriter interface {
	LinkEmployeeUser(ctx context.Context, employeeID, userID bson.ObjectID) error
	ClearEmployeeUser(ctx context.Context, employeeID bson.ObjectID) error
	RepointOffboarding(ctx context.Context, offboardingID, employeeID bson.ObjectID) error
	DeactivateEmployee(ctx context.Context, employeeID bson.ObjectID, userID *bson.ObjectID) error
}

// ApplyReconcile runs the plan's fixes in order and stops at the first
// failure, returning how many were applied.
func ApplyReconcile(ctx context.Context, plan ReconcilePlan, w ReconcileWriter) (int, error) {
	applied := 0
	for _, fix := range plan.Fixes() {
		var err error
		switch fix.Kind {
		case FixLinkUser:
			err = w.LinkEmployeeUser(ctx, fix.EmployeeID, *fix.UserID)
		case FixClearUser:
			err = w.ClearEmployeeUser(ctx, fix.EmployeeID)
		case FixRepointOffboarding:
			err = w.RepointOffboarding(ctx, *fix.OffboardingID, fix.EmployeeID)
		case FixDeactivate:
			err = w.DeactivateEmployee(ctx, fix.EmployeeID, fix.UserID)
		default:
			err = fmt.Errorf("unknown fix kind %q", fix.Kind)
		}
		if err != nil {
			return applied, fmt.Errorf("%s on employee %s: %w", fix.Kind, fix.EmployeeID.Hex(), err)
		}
		applied++
	}
	return applied, nil
}

func RunReconcilePlan(ctx context.Context, users UserLister, employees EmployeeLister, offboardings OffboardingLister) (ReconcilePlan, error) {
	us, err := users.FindAll(ctx)
	if err != nil {
		return ReconcilePlan{}, err
	}
	emps, err := employees.FindAll(ctx)
	if err != nil {
		return ReconcilePlan{}, err
	}
	offs, err := offboardings.FindAll(ctx)
	if err != nil {
		return ReconcilePlan{}, err
	}
	return PlanReconcile(us, emps, offs), nil
}
