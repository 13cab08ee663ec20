package services

import (
	"context"
	"fmt"
	"net/mail"
	"slices"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vibhu2208/hrms-backend-sub007/internal/models"
)

type QualityIssue struct {
	Field   string `json:"field"`
	Problem string `json:"problem"`
}

type EmployeeQuality struct {
	EmployeeID   string         `json:"employeeId"`
	EmployeeCode string         `json:"employeeCode"`
	Name         string         `json:"name"`
	Issues       []QualityIssue `json:"issues"`
}

type QualityReport struct {
	Total       int               `json:"total"`
	Clean       int               `json:"clean"`
	Employees   []EmployeeQuality `json:"employees"`
	FieldCounts map[string]int    `json:"fieldCounts"`
}

// CheckEmployeeQuality lists, per employee, the fields that are missing or
// malformed. Employees without issues are only counted.
func CheckEmployeeQuality(employees []models.Employee, users []models.User) QualityReport {
	userIDs := make(map[bson.ObjectID]bool, len(users))
	for _, u := range users {
		userIDs[u.ID] = true
	}

	report := QualityReport{
		Total:       len(employees),
		Employees:   []EmployeeQuality{},
		FieldCounts: map[string]int{},
	}
	for _, e := range employees {
		var issues []QualityIssue
		add := func(field, problem string) {
			issues = append(issues, QualityIssue{Field: field, Problem: problem})
			report.FieldCounts[field]++
		}

		required := []struct{ field, value string }{
			{"employeeCode", e.EmployeeCode},
			{"firstName", e.FirstName},
			{"lastName", e.LastName},
			{"email", e.Email},
			{"department", e.Department},
			{"designation", e.Designation},
		}
		for _, r := range required {
			if r.value == "" {
				add(r.field, "missing")
			}
		}
		if e.Email != "" {
			if _, err := mail.ParseAddress(e.Email); err != nil {
				add("email", "malformed")
			}
		}
		if e.DateOfJoining == nil || e.DateOfJoining.IsZero() {
			add("dateOfJoining", "missing")
		}
		if e.Status != "" && !slices.Contains(models.EmployeeStatuses, e.Status) {
			add("status", fmt.Sprintf("unknown status %q", e.Status))
		}
		switch {
		case e.UserID == nil:
			add("userId", "missing")
		case !userIDs[*e.UserID]:
			add("userId", "points at no user")
		}

		if len(issues) == 0 {
			report.Clean++
			continue
		}
		report.Employees = append(report.Employees, EmployeeQuality{
			EmployeeID:   e.ID.Hex(),
			EmployeeCode: e.EmployeeCode,
			Name:         e.FullName(),
			Issues:       issues,
		})
	}
	return report
}

func RunQualityCheck(ctx context.Context, employees EmployeeLister, users UserLister) (QualityReport, error) {
	emps, err := employees.FindAll(ctx)
	if err != nil {
		return QualityReport{}, err
	}
	us, err := users.FindAll(ctx)
	if err != nil {
		return QualityReport{}, err
	}
	return CheckEmployeeQuality(emps, us), nil
}
