package services

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vibhu2208/hrms-backend-sub007/internal/models"
)

const DefaultTestUserPattern = `(?i)(^test|\+test@|@test\.|@example\.(com|org)$)`

type TestUserPlan struct {
	Users     []models.User     `json:"users"`
	Employees []models.Employee `json:"employees"`
	// Protected matched the pattern but are admin accounts.
	Protected []models.User `json:"protected"`
}

// PlanTestUserCleanup selects users whose email matches pattern together
// with the employees linked to them by userId or email.
func PlanTestUserCleanup(users []models.User, employees []models.Employee, pattern *regexp.Regexp) TestUserPlan {
	plan := TestUserPlan{Users: []models.User{}, Employees: []models.Employee{}, Protected: []models.User{}}
	ids := map[bson.ObjectID]bool{}
	mails := map[string]bool{}
	for _, u := range users {
		if !pattern.MatchString(u.Email) {
			continue
		}
		if u.IsPrivileged() {
			plan.Protected = append(plan.Protected, u)
			continue
		}
		plan.Users = append(plan.Users, u)
		ids[u.ID] = true
		mails[models.NormalizeEmail(u.Email)] = true
	}
	for _, e := range employees {
		if (e.UserID != nil && ids[*e.UserID]) || mails[models.NormalizeEmail(e.Email)] {
			plan.Employees = append(plan.Employees, e)
		}
	}
	return plan
}

func ApplyTestUserCleanup(ctx context.Context, plan TestUserPlan, users, employees IDDeleter) (deletedUsers, deletedEmployees int64, err error) {
	empIDs := make([]bson.ObjectID, 0, len(plan.Employees))
	for _, e := range plan.Employees {
		empIDs = append(empIDs, e.ID)
	}
	if deletedEmployees, err = employees.DeleteIDs(ctx, empIDs); err != nil {
		return 0, 0, fmt.Errorf("delete test employees: %w", err)
	}

	userIDs := make([]bson.ObjectID, 0, len(plan.Users))
	for _, u := range plan.Users {
		userIDs = append(userIDs, u.ID)
	}
	if deletedUsers, err = users.DeleteIDs(ctx, userIDs); err != nil {
		return 0, deletedEmployees, fmt.Errorf("delete test users: %w", err)
	}
	return deletedUsers, deletedEmployees, nil
}

type CandidatePlan struct {
	Onboardings []models.Onboarding `json:"onboardings"`
	Requests    []models.Onboarding `json:"requests"`
	Users       []models.User       `json:"users"`
}

func (p CandidatePlan) Empty() bool {
	return len(p.Onboardings) == 0 && len(p.Requests) == 0 && len(p.Users) == 0
}

// PlanCandidateCleanup selects onboarding records that are closed (or, when
// email is set, every record of that candidate) and candidate accounts that
// are left without any onboarding record afterwards.
func PlanCandidateCleanup(onboardings, requests []models.Onboarding, users []models.User, email string) CandidatePlan {
	email = models.NormalizeEmail(email)
	plan := CandidatePlan{Onboardings: []models.Onboarding{}, Requests: []models.Onboarding{}, Users: []models.User{}}
	remaining := map[string]bool{}

	pick := func(records []models.Onboarding) []models.Onboarding {
		var out []models.Onboarding
		for _, o := range records {
			key := models.NormalizeEmail(o.CandidateEmail)
			selected := o.Closed()
			if email != "" {
				selected = key == email
			}
			if selected {
				out = append(out, o)
			} else if key != "" {
				remaining[key] = true
			}
		}
		return out
	}
	plan.Onboardings = append(plan.Onboardings, pick(onboardings)...)
	plan.Requests = append(plan.Requests, pick(requests)...)

	for _, u := range users {
		if u.Role != models.RoleCandidate {
			continue
		}
		key := models.NormalizeEmail(u.Email)
		if email != "" && key != email {
			continue
		}
		if !remaining[key] {
			plan.Users = append(plan.Users, u)
		}
	}
	return plan
}

type CandidateCleanupResult struct {
	Onboardings int64
	Requests    int64
	Users       int64
}

func ApplyCandidateCleanup(ctx context.Context, plan CandidatePlan, onboardings, requests, users IDDeleter) (CandidateCleanupResult, error) {
	var res CandidateCleanupResult
	var err error
	if res.Onboardings, err = onboardings.DeleteIDs(ctx, onboardingIDs(plan.Onboardings)); err != nil {
		return res, fmt.Errorf("delete onboardings: %w", err)
	}
	if res.Requests, err = requests.DeleteIDs(ctx, onboardingIDs(plan.Requests)); err != nil {
		return res, fmt.Errorf("delete onboarding requests: %w", err)
	}
	ids := make([]bson.ObjectID, 0, len(plan.Users))
	for _, u := range plan.Users {
		ids = append(ids, u.ID)
	}
	if res.Users, err = users.DeleteIDs(ctx, ids); err != nil {
		return res, fmt.Errorf("delete candidate users: %w", err)
	}
	return res, nil
}

func onboardingIDs(records []models.Onboarding) []bson.ObjectID {
	ids := make([]bson.ObjectID, 0, len(records))
	for _, o := range records {
		ids = append(ids, o.ID)
	}
	return ids
}
