package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vibhu2208/hrms-backend-sub007/internal/models"
)

func findingsOf(plan ReconcilePlan, kind string) []Finding {
	var out []Finding
	for _, f := range plan.Findings {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

func TestPlanReconcile_Links(t *testing.T) {
	linkedUser := models.User{ID: bson.NewObjectID(), Email: "linked@acme.in", Role: models.RoleEmployee}
	linked := models.Employee{ID: bson.NewObjectID(), EmployeeCode: "E1", Email: "linked@acme.in", UserID: &linkedUser.ID}
	linkedUser.EmployeeID = &linked.ID

	looseUser := models.User{ID: bson.NewObjectID(), Email: "loose@acme.in", Role: models.RoleEmployee}
	loose := models.Employee{ID: bson.NewObjectID(), EmployeeCode: "E2", Email: "Loose@ACME.in"}

	movedUser := models.User{ID: bson.NewObjectID(), Email: "moved@acme.in", Role: models.RoleManager}
	moved := models.Employee{ID: bson.NewObjectID(), EmployeeCode: "E3", Email: "moved@acme.in", UserID: oidPtr(bson.NewObjectID())}

	gone := models.Employee{ID: bson.NewObjectID(), EmployeeCode: "E4", Email: "gone@acme.in", UserID: oidPtr(bson.NewObjectID())}
	noAccount := models.Employee{ID: bson.NewObjectID(), EmployeeCode: "E5", Email: "new@acme.in"}

	backlinkUser := models.User{ID: bson.NewObjectID(), Email: "half@acme.in", Role: models.RoleEmployee}
	halfLinked := models.Employee{ID: bson.NewObjectID(), EmployeeCode: "E6", Email: "half@acme.in", UserID: &backlinkUser.ID}

	orphan := models.User{ID: bson.NewObjectID(), Email: "orphan@acme.in", Role: models.RoleEmployee}
	admin := models.User{ID: bson.NewObjectID(), Email: "admin@acme.in", Role: models.RoleAdmin}
	candidate := models.User{ID: bson.NewObjectID(), Email: "cand@mail.com", Role: models.RoleCandidate}

	plan := PlanReconcile(
		[]models.User{linkedUser, looseUser, movedUser, orphan, admin, candidate, backlinkUser},
		[]models.Employee{linked, loose, moved, gone, noAccount, halfLinked},
		nil,
	)

	unlinked := findingsOf(plan, FindingUnlinkedEmployee)
	require.Len(t, unlinked, 1)
	assert.Equal(t, &Fix{Kind: FixLinkUser, EmployeeID: loose.ID, UserID: &looseUser.ID}, unlinked[0].Fix)

	dangling := findingsOf(plan, FindingDanglingUserLink)
	require.Len(t, dangling, 2)
	assert.Equal(t, &Fix{Kind: FixLinkUser, EmployeeID: moved.ID, UserID: &movedUser.ID}, dangling[0].Fix)
	assert.Equal(t, &Fix{Kind: FixClearUser, EmployeeID: gone.ID}, dangling[1].Fix)

	backlink := findingsOf(plan, FindingMissingUserBacklink)
	require.Len(t, backlink, 1)
	assert.Equal(t, halfLinked.ID, backlink[0].Fix.EmployeeID)

	assert.Len(t, findingsOf(plan, FindingEmployeeWithoutAccount), 1)

	orphans := findingsOf(plan, FindingOrphanUser)
	require.Len(t, orphans, 1)
	assert.Equal(t, "user orphan@acme.in", orphans[0].Subject)

	assert.Len(t, plan.Fixes(), 4)
}

func TestPlanReconcile_EmployeeWithoutAccountCount(t *testing.T) {
	gone := models.Employee{ID: bson.NewObjectID(), Email: "gone@acme.in", UserID: oidPtr(bson.NewObjectID())}
	plan := PlanReconcile(nil, []models.Employee{gone}, nil)
	assert.Equal(t, 1, plan.Count(FindingDanglingUserLink))
	assert.Zero(t, plan.Count(FindingEmployeeWithoutAccount))
}

func TestPlanReconcile_Offboardings(t *testing.T) {
	user := models.User{ID: bson.NewObjectID(), Email: "leaver@acme.in", Role: models.RoleEmployee}
	leaver := models.Employee{
		ID: bson.NewObjectID(), EmployeeCode: "E9", Email: "leaver@acme.in",
		UserID: &user.ID, Status: models.EmployeeActive,
	}
	user.EmployeeID = &leaver.ID

	byEmployee := models.OffboardingRequest{ID: bson.NewObjectID(), Employee: leaver.ID, Status: models.OffboardingCompleted}
	byUser := models.OffboardingRequest{ID: bson.NewObjectID(), Employee: user.ID, Status: models.OffboardingCompleted}
	byEmail := models.OffboardingRequest{ID: bson.NewObjectID(), EmployeeEmail: "LEAVER@acme.in", Status: models.OffboardingPending}
	lost := models.OffboardingRequest{ID: bson.NewObjectID(), Employee: bson.NewObjectID(), Status: models.OffboardingApproved}

	plan := PlanReconcile([]models.User{user}, []models.Employee{leaver},
		[]models.OffboardingRequest{byEmployee, byUser, byEmail, lost})

	refs := findingsOf(plan, FindingOffboardingUserRef)
	require.Len(t, refs, 2)
	assert.Equal(t, byUser.ID, *refs[0].Fix.OffboardingID)
	assert.Equal(t, leaver.ID, refs[0].Fix.EmployeeID)
	assert.Equal(t, byEmail.ID, *refs[1].Fix.OffboardingID)

	active := findingsOf(plan, FindingOffboardedStillActive)
	require.Len(t, active, 1, "one deactivation per employee")
	assert.Equal(t, &Fix{Kind: FixDeactivate, EmployeeID: leaver.ID, UserID: &user.ID}, active[0].Fix)

	orphans := findingsOf(plan, FindingOrphanOffboarding)
	require.Len(t, orphans, 1)
	assert.Contains(t, orphans[0].Subject, lost.ID.Hex())
}

func TestPlanReconcile_InactiveEmployeeNotFlagged(t *testing.T) {
	e := models.Employee{ID: bson.NewObjectID(), Status: models.EmployeeInactive}
	plan := PlanReconcile(nil, []models.Employee{e},
		[]models.OffboardingRequest{{ID: bson.NewObjectID(), Employee: e.ID, Status: models.OffboardingCompleted}})
	assert.Zero(t, plan.Count(FindingOffboardedStillActive))
}

func TestPlanReconcile_Duplicates(t *testing.T) {
	a := models.Employee{ID: bson.NewObjectID(), EmployeeCode: "E1", Email: "dup@acme.in"}
	b := models.Employee{ID: bson.NewObjectID(), EmployeeCode: "E1", Email: "DUP@acme.in"}
	c := models.Employee{ID: bson.NewObjectID(), EmployeeCode: "E2", Email: "solo@acme.in"}

	plan := PlanReconcile(nil, []models.Employee{a, b, c}, nil)
	assert.Equal(t, 1, plan.Count(FindingDuplicateEmployeeCode))
	assert.Equal(t, 1, plan.Count(FindingDuplicateEmail))
}

func linkedUsers(plan ReconcilePlan) map[bson.ObjectID][]bson.ObjectID {
	out := map[bson.ObjectID][]bson.ObjectID{}
	for _, fix := range plan.Fixes() {
		if fix.Kind == FixLinkUser {
			out[*fix.UserID] = append(out[*fix.UserID], fix.EmployeeID)
		}
	}
	return out
}

func TestPlanReconcile_SharedEmailIsNotLinked(t *testing.T) {
	u := models.User{ID: bson.NewObjectID(), Email: "a@acme.in", Role: models.RoleEmployee}
	e1 := models.Employee{ID: bson.NewObjectID(), EmployeeCode: "E1", Email: "a@acme.in"}
	e2 := models.Employee{ID: bson.NewObjectID(), EmployeeCode: "E2", Email: "A@acme.in"}

	plan := PlanReconcile([]models.User{u}, []models.Employee{e1, e2}, nil)

	assert.Empty(t, plan.Fixes())
	assert.Equal(t, 1, plan.Count(FindingDuplicateEmail))
	assert.Equal(t, 2, plan.Count(FindingConflictingUserLink))
	assert.Zero(t, plan.Count(FindingUnlinkedEmployee))
}

func TestPlanReconcile_ClaimedUserIsNotRelinked(t *testing.T) {
	u := models.User{ID: bson.NewObjectID(), Email: "a@acme.in", Role: models.RoleEmployee}
	owner := models.Employee{ID: bson.NewObjectID(), EmployeeCode: "E1", Email: "old@acme.in", UserID: &u.ID}
	u.EmployeeID = &owner.ID

	t.Run("email match", func(t *testing.T) {
		other := models.Employee{ID: bson.NewObjectID(), EmployeeCode: "E2", Email: "a@acme.in"}
		plan := PlanReconcile([]models.User{u}, []models.Employee{owner, other}, nil)
		assert.Empty(t, plan.Fixes())
		conflicts := findingsOf(plan, FindingConflictingUserLink)
		require.Len(t, conflicts, 1)
		assert.Contains(t, conflicts[0].Subject, other.ID.Hex())
	})

	t.Run("dangling link is cleared instead", func(t *testing.T) {
		other := models.Employee{ID: bson.NewObjectID(), EmployeeCode: "E2", Email: "a@acme.in", UserID: oidPtr(bson.NewObjectID())}
		plan := PlanReconcile([]models.User{u}, []models.Employee{owner, other}, nil)
		require.Len(t, plan.Fixes(), 1)
		assert.Equal(t, Fix{Kind: FixClearUser, EmployeeID: other.ID}, plan.Fixes()[0])
	})

	t.Run("backlink names another employee", func(t *testing.T) {
		taken := models.User{ID: bson.NewObjectID(), Email: "b@acme.in", Role: models.RoleEmployee, EmployeeID: &owner.ID}
		second := models.Employee{ID: bson.NewObjectID(), EmployeeCode: "E3", Email: "b@acme.in", UserID: &taken.ID}
		plan := PlanReconcile([]models.User{u, taken}, []models.Employee{owner, second}, nil)
		assert.Empty(t, plan.Fixes())
		assert.Equal(t, 1, plan.Count(FindingConflictingUserLink))
	})

	t.Run("two employees linked to one user", func(t *testing.T) {
		shared := models.User{ID: bson.NewObjectID(), Email: "c@acme.in", Role: models.RoleEmployee}
		x := models.Employee{ID: bson.NewObjectID(), Email: "x@acme.in", UserID: &shared.ID}
		y := models.Employee{ID: bson.NewObjectID(), Email: "y@acme.in", UserID: &shared.ID}
		plan := PlanReconcile([]models.User{shared}, []models.Employee{x, y}, nil)
		assert.Empty(t, plan.Fixes())
		assert.Equal(t, 2, plan.Count(FindingConflictingUserLink))
		assert.Zero(t, plan.Count(FindingOrphanUser))
	})
}

func TestPlanReconcile_NeverLinksOneUserTwice(t *testing.T) {
	users := []models.User{
		{ID: bson.NewObjectID(), Email: "a@acme.in", Role: models.RoleEmployee},
		{ID: bson.NewObjectID(), Email: "b@acme.in", Role: models.RoleEmployee},
	}
	employees := []models.Employee{
		{ID: bson.NewObjectID(), Email: "a@acme.in"},
		{ID: bson.NewObjectID(), Email: "A@ACME.in", UserID: oidPtr(bson.NewObjectID())},
		{ID: bson.NewObjectID(), Email: "b@acme.in", UserID: &users[1].ID},
		{ID: bson.NewObjectID(), Email: "B@acme.in"},
	}
	plan := PlanReconcile(users, employees, nil)
	for uid, emps := range linkedUsers(plan) {
		assert.Len(t, emps, 1, "user %s", uid.Hex())
	}
	assert.NotContains(t, linkedUsers(plan), users[0].ID)
}

type fakeWriter struct {
	calls []string
	fail  FixKind
}

func (w *fakeWriter) record(kind FixKind, id bson.ObjectID) error {
	if kind == w.fail {
		return errors.New("write conflict")
	}
	w.calls = append(w.calls, string(kind)+":"+id.Hex())
	return nil
}

func (w *fakeWriter) LinkEmployeeUser(_ context.Context, e, _ bson.ObjectID) error {
	return w.record(FixLinkUser, e)
}

func (w *fakeWriter) ClearEmployeeUser(_ context.Context, e bson.ObjectID) error {
	return w.record(FixClearUser, e)
}

func (w *fakeWriter) RepointOffboarding(_ context.Context, _, e bson.ObjectID) error {
	return w.record(FixRepointOffboarding, e)
}

func (w *fakeWriter) DeactivateEmployee(_ context.Context, e bson.ObjectID, _ *bson.ObjectID) error {
	return w.record(FixDeactivate, e)
}

func TestApplyReconcile(t *testing.T) {
	e1, e2, u, o := bson.NewObjectID(), bson.NewObjectID(), bson.NewObjectID(), bson.NewObjectID()
	plan := ReconcilePlan{Findings: []Finding{
		{Kind: FindingUnlinkedEmployee, Fix: &Fix{Kind: FixLinkUser, EmployeeID: e1, UserID: &u}},
		{Kind: FindingOrphanUser},
		{Kind: FindingOffboardingUserRef, Fix: &Fix{Kind: FixRepointOffboarding, EmployeeID: e2, OffboardingID: &o}},
		{Kind: FindingOffboardedStillActive, Fix: &Fix{Kind: FixDeactivate, EmployeeID: e2}},
	}}

	w := &fakeWriter{}
	n, err := ApplyReconcile(context.Background(), plan, w)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{
		"link-user:" + e1.Hex(),
		"repoint-offboarding:" + e2.Hex(),
		"deactivate:" + e2.Hex(),
	}, w.calls)

	t.Run("stops at first failure", func(t *testing.T) {
		w := &fakeWriter{fail: FixRepointOffboarding}
		n, err := ApplyReconcile(context.Background(), plan, w)
		assert.ErrorContains(t, err, "write conflict")
		assert.Equal(t, 1, n)
	})
}

func TestRunReconcilePlan(t *testing.T) {
	e := models.Employee{ID: bson.NewObjectID(), Email: "x@acme.in"}
	plan, err := RunReconcilePlan(context.Background(), &fakeUsers{}, &fakeEmployees{employees: []models.Employee{e}}, &fakeOffboardings{})
	require.NoError(t, err)
	assert.Equal(t, 1, plan.Count(FindingEmployeeWithoutAccount))
}
