package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	RequestOpen       = "open"
	RequestInProgress = "in_progress"
	RequestOnHold     = "on_hold"
	RequestResolved   = "resolved"
	RequestClosed     = "closed"
	RequestRejected   = "rejected"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"

	requestNumberPrefix = "REQ"
	requestCounterWidth = 6
	maxRequestCounter   = 999999
)

var (
	RequestStatuses   = []string{RequestOpen, RequestInProgress, RequestOnHold, RequestResolved, RequestClosed, RequestRejected}
	RequestPriorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
	RequestTypes      = []string{"leave", "document", "it_support", "hr_query", "asset", "reimbursement", "other"}
)

type RequestComment struct {
	Author    bson.ObjectID `bson:"author" json:"author"`
	Message   string        `bson:"message" json:"message"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
}

// EmployeeRequest is a ticket raised by an employee.
type EmployeeRequest struct {
	ID            bson.ObjectID    `bson:"_id,omitempty" json:"_id,omitempty"`
	RequestNumber string           `bson:"requestNumber" json:"requestNumber"`
	Employee      bson.ObjectID    `bson:"employee" json:"employee"`
	RequestType   string           `bson:"requestType" json:"requestType"`
	Subject       string           `bson:"subject" json:"subject"`
	Description   string           `bson:"description,omitempty" json:"description,omitempty"`
	Priority      string           `bson:"priority" json:"priority"`
	Status        string           `bson:"status" json:"status"`
	AssignedTo    *bson.ObjectID   `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	Comments      []RequestComment `bson:"comments" json:"comments"`
	ResolvedAt    *time.Time       `bson:"resolvedAt,omitempty" json:"resolvedAt,omitempty"`
	CreatedAt     time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time        `bson:"updatedAt" json:"updatedAt"`
}

// FormatRequestNumber renders REQ<year><6-digit counter>, e.g. REQ2025000042.
func FormatRequestNumber(year, seq int) (string, error) {
	if seq < 1 || seq > maxRequestCounter {
		return "", fmt.Errorf("request counter %d out of range for year %d", seq, year)
	}
	return fmt.Sprintf("%s%04d%0*d", requestNumberPrefix, year, requestCounterWidth, seq), nil
}

// ParseRequestNumber is the inverse of FormatRequestNumber.
func ParseRequestNumber(s string) (year, seq int, err error) {
	rest, ok := strings.CutPrefix(s, requestNumberPrefix)
	if !ok || len(rest) != 4+requestCounterWidth {
		return 0, 0, fmt.Errorf("malformed request number %q", s)
	}
	if year, err = strconv.Atoi(rest[:4]); err != nil {
		return 0, 0, fmt.Errorf("malformed request number %q: %w", s, err)
	}
	if seq, err = strconv.Atoi(rest[4:]); err != nil || seq < 1 {
		return 0, 0, fmt.Errorf("malformed request number %q", s)
	}
	return year, seq, nil
}

func (r *EmployeeRequest) ApplyDefaults(now time.Time) {
	r.Subject = strings.TrimSpace(r.Subject)
	if r.RequestType == "" {
		r.RequestType = "other"
	}
	if r.Priority == "" {
		r.Priority = PriorityMedium
	}
	if r.Status == "" {
		r.Status = RequestOpen
	}
	if r.Comments == nil {
		r.Comments = []RequestComment{}
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now
}

func (r EmployeeRequest) Validate() error {
	if r.Employee.IsZero() {
		return invalid("request employee is required")
	}
	if r.Subject == "" {
		return invalid("request subject is required")
	}
	if err := oneOf("request type", r.RequestType, RequestTypes); err != nil {
		return err
	}
	if err := oneOf("request priority", r.Priority, RequestPriorities); err != nil {
		return err
	}
	if err := oneOf("request status", r.Status, RequestStatuses); err != nil {
		return err
	}
	if r.RequestNumber != "" {
		if _, _, err := ParseRequestNumber(r.RequestNumber); err != nil {
			return invalid("%v", err)
		}
	}
	return nil
}

func (r *EmployeeRequest) AddComment(author bson.ObjectID, message string, now time.Time) error {
	message = strings.TrimSpace(message)
	if author.IsZero() || message == "" {
		return invalid("comment needs an author and a message")
	}
	r.Comments = append(r.Comments, RequestComment{Author: author, Message: message, CreatedAt: now})
	r.UpdatedAt = now
	return nil
}

// Assign sets the assignee; an open request moves to in_progress.
func (r *EmployeeRequest) Assign(assignee bson.ObjectID, now time.Time) error {
	if assignee.IsZero() {
		return invalid("assignee is required")
	}
	if r.Terminal() {
		return invalid("request %s is already %s", r.RequestNumber, r.Status)
	}
	r.AssignedTo = &assignee
	if r.Status == RequestOpen {
		r.Status = RequestInProgress
	}
	r.UpdatedAt = now
	return nil
}

// SetStatus moves the request to status. Resolving or closing stamps
// resolvedAt; reopening clears it.
func (r *EmployeeRequest) SetStatus(status string, now time.Time) error {
	if err := oneOf("request status", status, RequestStatuses); err != nil {
		return err
	}
	r.Status = status
	switch status {
	case RequestResolved, RequestClosed:
		if r.ResolvedAt == nil {
			r.ResolvedAt = &now
		}
	case RequestOpen, RequestInProgress, RequestOnHold:
		r.ResolvedAt = nil
	}
	r.UpdatedAt = now
	return nil
}

func (r EmployeeRequest) Terminal() bool {
	return r.Status == RequestClosed || r.Status == RequestRejected
}
