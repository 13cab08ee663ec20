package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestFormatRequestNumber(t *testing.T) {
	n, err := FormatRequestNumber(2025, 42)
	require.NoError(t, err)
	assert.Equal(t, "REQ2025000042", n)

	n, err = FormatRequestNumber(2024, 999999)
	require.NoError(t, err)
	assert.Equal(t, "REQ2024999999", n)

	_, err = FormatRequestNumber(2025, 0)
	assert.Error(t, err)
	_, err = FormatRequestNumber(2025, 1000000)
	assert.Error(t, err)
}

func TestParseRequestNumber(t *testing.T) {
	year, seq, err := ParseRequestNumber("REQ2025000042")
	require.NoError(t, err)
	assert.Equal(t, 2025, year)
	assert.Equal(t, 42, seq)

	for _, bad := range []string{"", "REQ", "REQ202500042", "TKT2025000042", "REQ2025ABCDEF", "REQ2025000000"} {
		_, _, err := ParseRequestNumber(bad)
		assert.Error(t, err, bad)
	}
}

func newRequest(t *testing.T) EmployeeRequest {
	t.Helper()
	r := EmployeeRequest{Employee: bson.NewObjectID(), Subject: "Laptop replacement", RequestType: "asset"}
	r.ApplyDefaults(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, r.Validate())
	return r
}

func TestEmployeeRequest_Defaults(t *testing.T) {
	r := EmployeeRequest{Employee: bson.NewObjectID(), Subject: " Payslip "}
	r.ApplyDefaults(time.Now())
	assert.Equal(t, "Payslip", r.Subject)
	assert.Equal(t, "other", r.RequestType)
	assert.Equal(t, PriorityMedium, r.Priority)
	assert.Equal(t, RequestOpen, r.Status)
	assert.Empty(t, r.Comments)
	assert.NoError(t, r.Validate())
}

func TestEmployeeRequest_Validate(t *testing.T) {
	r := newRequest(t)
	r.Priority = "critical"
	assert.ErrorContains(t, r.Validate(), "priority")

	r = newRequest(t)
	r.RequestNumber = "REQ-1"
	assert.ErrorIs(t, r.Validate(), ErrValidation)

	r = newRequest(t)
	r.Employee = bson.NilObjectID
	assert.ErrorContains(t, r.Validate(), "employee")
}

func TestEmployeeRequest_Lifecycle(t *testing.T) {
	r := newRequest(t)
	agent := bson.NewObjectID()
	t1 := time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC)

	require.NoError(t, r.Assign(agent, t1))
	assert.Equal(t, RequestInProgress, r.Status)
	assert.Equal(t, agent, *r.AssignedTo)

	require.NoError(t, r.AddComment(agent, "  ordered a new one ", t1))
	require.Len(t, r.Comments, 1)
	assert.Equal(t, "ordered a new one", r.Comments[0].Message)
	assert.Error(t, r.AddComment(agent, "   ", t1))

	t2 := t1.Add(48 * time.Hour)
	require.NoError(t, r.SetStatus(RequestResolved, t2))
	require.NotNil(t, r.ResolvedAt)
	assert.Equal(t, t2, *r.ResolvedAt)

	require.NoError(t, r.SetStatus(RequestClosed, t2.Add(time.Hour)))
	assert.Equal(t, t2, *r.ResolvedAt, "closing keeps the first resolution time")
	assert.Error(t, r.Assign(agent, t2), "closed requests cannot be reassigned")

	require.NoError(t, r.SetStatus(RequestOpen, t2))
	assert.Nil(t, r.ResolvedAt)

	assert.Error(t, r.SetStatus("done", t2))
}

func TestEmployeeRequest_AssignKeepsOnHold(t *testing.T) {
	r := newRequest(t)
	require.NoError(t, r.SetStatus(RequestOnHold, time.Now()))
	require.NoError(t, r.Assign(bson.NewObjectID(), time.Now()))
	assert.Equal(t, RequestOnHold, r.Status)
}
