package commands

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibhu2208/hrms-backend-sub007/database"
	"github.com/vibhu2208/hrms-backend-sub007/internal/apiclient"
	"github.com/vibhu2208/hrms-backend-sub007/internal/models"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("LOG_LEVEL", "error")

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestArgumentValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"jobs needs a tenant", []string{"jobs"}, "accepts 1 arg"},
		{"jobs rejects bad tenant", []string{"jobs", "../etc"}, "invalid tenant id"},
		{"reconcile needs tenant", []string{"repair", "reconcile"}, "--tenant is required"},
		{"employees needs tenant", []string{"inspect", "employees"}, "--tenant is required"},
		{"sample must be positive", []string{"inspect", "tenant", "-t", "acme", "--sample", "0"}, "--sample"},
		{"reset needs email", []string{"repair", "reset-password", "--global", "--password", "longenough"}, `required flag(s) "email"`},
		{"reset checks length", []string{"repair", "reset-password", "--global", "--email", "a@b.co", "--password", "short"}, "at least 8"},
		{"bad pattern", []string{"repair", "cleanup-test-users", "-t", "acme", "--pattern", "("}, "invalid --pattern"},
		{"meeting organizer", []string{"records", "meetings", "create", "-t", "acme", "--title", "Sync", "--organizer", "nope", "--at", "2025-03-01 10:00"}, "invalid object id"},
		{"meeting time", []string{"records", "meetings", "create", "-t", "acme", "--title", "Sync", "--organizer", "65f000000000000000000001", "--at", "tomorrow"}, "want RFC 3339"},
		{"request number", []string{"records", "requests", "status", "-t", "acme", "REQ-1", "closed"}, "REQ-1"},
		{"client status", []string{"records", "clients", "status", "-t", "acme", "ACME", "gone"}, "client status"},
		{"role permission", []string{"records", "roles", "create", "-t", "acme", "--name", "Lead", "--permission", "employees"}, "module:action"},
		{"show needs an id", []string{"records", "roles", "show", "-t", "acme"}, "accepts 1 arg"},
		{"show checks the id", []string{"records", "clients", "show", "-t", "acme", "ACME"}, "invalid object id"},
		{"delete checks the id", []string{"records", "meetings", "delete", "-t", "acme", "nope", "--apply"}, "invalid object id"},
		{"delete needs tenant", []string{"records", "requests", "delete", "65f000000000000000000001"}, "--tenant is required"},
		{"send-offer checks the id", []string{"smoke", "send-offer", "--email", "a@b.co", "--password", "x", "../auth/login"}, "invalid object id"},
		{"unknown suite", []string{"smoke", "run", "--email", "a@b.co", "--password", "x", "--suite", "payroll"}, "unknown suite"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestTenantErrorsAreSentinels(t *testing.T) {
	_, err := run(t, "repair", "reconcile")
	assert.ErrorIs(t, err, errTenantRequired)

	_, err = run(t, "indexes", "--tenant", "a b")
	assert.ErrorIs(t, err, database.ErrInvalidTenantID)
}

func TestMissingEnvFile(t *testing.T) {
	_, err := run(t, "--env-file", filepath.Join(t.TempDir(), "nope.env"), "inspect", "tenants")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load env file")
}

func TestServeToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "ops-secret")
	out, err := run(t, "serve", "token", "--uid", "oncall")
	require.NoError(t, err)

	info, err := apiclient.DecodeToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "oncall", info.UserID)
	assert.NotNil(t, info.ExpiresAt)
}

func TestServeNeedsSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := run(t, "serve")
	assert.ErrorIs(t, err, errNoSecret)
	_, err = run(t, "serve", "token", "--uid", "oncall")
	assert.ErrorIs(t, err, errNoSecret)
}

func smokeServer(t *testing.T) *httptest.Server {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id": "u-7", "role": "manager", "tenantId": "acme",
	}).SignedString([]byte("app-secret"))
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":{"token":"` + token + `"}}`))
	})
	mux.HandleFunc("GET /api/spc/dashboard", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	mux.HandleFunc("GET /api/manager/team-stats", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSmokeRun(t *testing.T) {
	srv := smokeServer(t)

	out, err := run(t, "smoke", "run", "--base-url", srv.URL, "--email", "m@acme.com", "--password", "pw", "--suite", "spc")
	require.NoError(t, err)
	assert.Contains(t, out, "logged in as m@acme.com (user u-7, role manager, tenant acme")
	assert.Contains(t, out, "1/1 passed")

	out, err = run(t, "smoke", "run", "--base-url", srv.URL, "--email", "m@acme.com", "--password", "pw", "--suite", "manager")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 2 checks failed")
	assert.Contains(t, out, "FAIL")
}

func TestSmokeRunPlanFile(t *testing.T) {
	srv := smokeServer(t)
	plan := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(plan, []byte(`checks:
  - name: managers only
    path: /api/manager/team-stats
    expect: 403
  - path: /api/spc/dashboard
`), 0o600))

	out, err := run(t, "smoke", "run", "--base-url", srv.URL, "--email", "e@acme.com", "--password", "pw", "--plan", plan)
	require.NoError(t, err)
	assert.Contains(t, out, "2/2 passed")
}

func TestParsePermissions(t *testing.T) {
	got, err := parsePermissions([]string{"employees:read,update", "projects: read ", "employees:read,delete"})
	require.NoError(t, err)
	assert.Equal(t, []models.Permission{
		{Module: "employees", Actions: []string{"read", "update", "delete"}},
		{Module: "projects", Actions: []string{"read"}},
	}, got)

	_, err = parsePermissions([]string{":read"})
	assert.Error(t, err)
	_, err = parsePermissions([]string{"employees:, ,"})
	assert.Error(t, err)
}

func TestParseWhen(t *testing.T) {
	got, err := parseWhen("2025-03-01T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 10, got.UTC().Hour())

	got, err = parseWhen("2025-03-01 09:30")
	require.NoError(t, err)
	assert.Equal(t, 30, got.Minute())

	_, err = parseWhen("next week")
	assert.Error(t, err)
}
