package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/vibhu2208/hrms-backend-sub007/internal/apiclient"
	"github.com/vibhu2208/hrms-backend-sub007/internal/models"
	"github.com/vibhu2208/hrms-backend-sub007/internal/services"
)

const dateLayout = "2006-01-02"

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// render writes v as indented JSON when asJSON is set, otherwise as table.
func render(w io.Writer, asJSON bool, v any, table func(io.Writer) error) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	return table(w)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func day(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(dateLayout)
}

func dayPtr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return day(*t)
}

func printQuality(w io.Writer, r services.QualityReport) error {
	fmt.Fprintf(w, "employees: %d  clean: %d  with issues: %d\n", r.Total, r.Clean, len(r.Employees))
	if len(r.Employees) == 0 {
		return nil
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "\nCODE\tNAME\tFIELD\tPROBLEM")
	for _, e := range r.Employees {
		for _, is := range e.Issues {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", orDash(e.EmployeeCode), orDash(e.Name), is.Field, is.Problem)
		}
	}
	fmt.Fprintln(tw, "\nFIELD\tEMPLOYEES")
	for _, f := range sortedKeys(r.FieldCounts) {
		fmt.Fprintf(tw, "%s\t%d\n", f, r.FieldCounts[f])
	}
	return tw.Flush()
}

func printStructure(w io.Writer, st services.TenantStructure) error {
	fmt.Fprintf(w, "database: %s (%d collections)\n", st.Database, len(st.Collections))
	for _, col := range st.Collections {
		fmt.Fprintf(w, "\n%s  documents=%d  newest=%s\n", col.Name, col.Count, dayPtr(col.NewestCreatedAt))
		for _, f := range col.Fields {
			fmt.Fprintf(w, "  %-28s %s\n", f.Name, strings.Join(f.Types, "|"))
		}
	}
	return nil
}

func printUsers(w io.Writer, users []models.User) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "EMAIL\tROLE\tACTIVE\tEMPLOYEE\tLAST LOGIN")
	for _, u := range users {
		emp := "-"
		if u.EmployeeID != nil {
			emp = u.EmployeeID.Hex()
		}
		fmt.Fprintf(tw, "%s\t%s\t%t\t%s\t%s\n", u.Email, orDash(u.Role), u.IsActive, emp, dayPtr(u.LastLogin))
	}
	fmt.Fprintf(tw, "\n%d users\n", len(users))
	return tw.Flush()
}

func printTenants(w io.Writer, tenants []services.TenantInfo) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "TENANT\tCOMPANY\tSTATUS\tDATABASE\tNOTE")
	for _, t := range tenants {
		var notes []string
		if t.Legacy {
			notes = append(notes, "legacy naming")
		}
		if !t.Registered {
			notes = append(notes, "not registered")
		}
		if t.Database == "" {
			notes = append(notes, "no database")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t.TenantID, orDash(t.CompanyName), orDash(t.Status), orDash(t.Database), orDash(strings.Join(notes, ", ")))
	}
	return tw.Flush()
}

func printJobs(w io.Writer, tenantID string, page services.JobPage) error {
	fmt.Fprintf(w, "tenant %s: %d job postings\n", tenantID, len(page.Jobs))
	if len(page.Jobs) == 0 {
		return nil
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "TITLE\tDEPARTMENT\tSTATUS\tOPENINGS\tCREATED")
	for _, j := range page.Jobs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", j.Title, orDash(j.Department), orDash(j.Status), j.Openings, day(j.CreatedAt))
	}
	if page.Next != "" {
		fmt.Fprintf(tw, "\nmore: --cursor %s\n", page.Next)
	}
	return tw.Flush()
}

func printReconcile(w io.Writer, p services.ReconcilePlan) error {
	if len(p.Findings) == 0 {
		fmt.Fprintln(w, "no findings")
		return nil
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "KIND\tSUBJECT\tDETAIL\tFIX")
	for _, f := range p.Findings {
		fix := "-"
		if f.Fix != nil {
			fix = string(f.Fix.Kind)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.Kind, f.Subject, f.Detail, fix)
	}
	fmt.Fprintf(tw, "\n%d findings, %d fixable\n", len(p.Findings), len(p.Fixes()))
	return tw.Flush()
}

func printTestUserPlan(w io.Writer, p services.TestUserPlan) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ACTION\tKIND\tEMAIL\tID")
	for _, u := range p.Users {
		fmt.Fprintf(tw, "delete\tuser\t%s\t%s\n", u.Email, u.ID.Hex())
	}
	for _, e := range p.Employees {
		fmt.Fprintf(tw, "delete\temployee\t%s\t%s\n", orDash(e.Email), e.ID.Hex())
	}
	for _, u := range p.Protected {
		fmt.Fprintf(tw, "keep\t%s\t%s\t%s\n", u.Role, u.Email, u.ID.Hex())
	}
	fmt.Fprintf(tw, "\n%d users, %d employees to delete; %d protected\n", len(p.Users), len(p.Employees), len(p.Protected))
	return tw.Flush()
}

func printCandidatePlan(w io.Writer, p services.CandidatePlan) error {
	if p.Empty() {
		fmt.Fprintln(w, "nothing to clean up")
		return nil
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "COLLECTION\tCANDIDATE\tSTATUS\tID")
	for _, o := range p.Onboardings {
		fmt.Fprintf(tw, "onboardings\t%s\t%s\t%s\n", orDash(o.CandidateEmail), orDash(o.Status), o.ID.Hex())
	}
	for _, o := range p.Requests {
		fmt.Fprintf(tw, "onboardingrequests\t%s\t%s\t%s\n", orDash(o.CandidateEmail), orDash(o.Status), o.ID.Hex())
	}
	for _, u := range p.Users {
		fmt.Fprintf(tw, "users\t%s\t%s\t%s\n", u.Email, u.Role, u.ID.Hex())
	}
	return tw.Flush()
}

// printOutcomes writes one line per check and returns how many failed.
func printOutcomes(w io.Writer, out []apiclient.Outcome) (int, error) {
	failed := 0
	tw := newTable(w)
	fmt.Fprintln(tw, "RESULT\tMETHOD\tPATH\tSTATUS\tWANT\tTIME\tBODY")
	for _, o := range out {
		mark := "PASS"
		if !o.Passed() {
			mark = "FAIL"
			failed++
		}
		body := o.Result.Excerpt
		if o.Err != nil {
			body = o.Err.Error()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n", mark, o.Check.Method, o.Check.Path,
			o.Result.Status, o.Check.Expect, o.Result.Duration.Round(time.Millisecond), orDash(body))
	}
	fmt.Fprintf(tw, "\n%d/%d passed\n", len(out)-failed, len(out))
	return failed, tw.Flush()
}

func printToken(w io.Writer, info apiclient.TokenInfo) {
	exp := "-"
	if info.ExpiresAt != nil {
		exp = info.ExpiresAt.Format(time.RFC3339)
	}
	fmt.Fprintf(w, "logged in as %s (user %s, role %s, tenant %s, expires %s)\n",
		orDash(info.Email), orDash(info.UserID), orDash(info.Role), orDash(info.TenantID), exp)
}

func printRoles(w io.Writer, roles []models.Role) error {
	slugs := make(map[string]string, len(roles))
	for _, r := range roles {
		slugs[r.ID.Hex()] = r.Slug
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "SLUG\tNAME\tSCOPE\tPARENT\tPERMISSIONS\tACTIVE\tSYSTEM")
	for _, r := range roles {
		parent := "-"
		if r.ParentRole != nil {
			parent = orDash(slugs[r.ParentRole.Hex()])
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%t\t%t\n", r.Slug, r.Name, r.Scope, parent, permissionList(r.Permissions), r.IsActive, r.IsSystem)
	}
	return tw.Flush()
}

func permissionList(perms []models.Permission) string {
	parts := make([]string, 0, len(perms))
	for _, p := range perms {
		parts = append(parts, p.Module+":"+strings.Join(p.Actions, ","))
	}
	return orDash(strings.Join(parts, " "))
}

func printClients(w io.Writer, clients []models.Client) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "CODE\tNAME\tSTATUS\tCONTACT\tCURRENCY\tTERMS")
	for _, c := range clients {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%dd\n", c.Code, c.Name, c.Status, orDash(c.Contact.Email), c.Billing.Currency, c.Billing.PaymentTermsDays)
	}
	return tw.Flush()
}

func printRequests(w io.Writer, reqs []models.EmployeeRequest) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "NUMBER\tTYPE\tPRIORITY\tSTATUS\tSUBJECT\tCOMMENTS\tCREATED")
	for _, r := range reqs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n", r.RequestNumber, r.RequestType, r.Priority, r.Status, r.Subject, len(r.Comments), day(r.CreatedAt))
	}
	return tw.Flush()
}

func printMeetings(w io.Writer, meetings []models.TeamMeeting) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTITLE\tSTART\tEND\tSTATUS\tATTENDEES")
	for _, m := range meetings {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n", m.ID.Hex(), m.Title,
			m.ScheduledAt.Format("2006-01-02 15:04"), m.EndsAt().Format("15:04"), m.Status, len(m.Attendees))
	}
	return tw.Flush()
}
