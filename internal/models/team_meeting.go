package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	MeetingScheduled  = "scheduled"
	MeetingInProgress = "in_progress"
	MeetingCompleted  = "completed"
	MeetingCancelled  = "cancelled"

	DefaultMeetingMinutes = 30
)

var MeetingStatuses = []string{MeetingScheduled, MeetingInProgress, MeetingCompleted, MeetingCancelled}

type TeamMeeting struct {
	ID              bson.ObjectID   `bson:"_id,omitempty" json:"_id,omitempty"`
	Title           string          `bson:"title" json:"title"`
	Description     string          `bson:"description,omitempty" json:"description,omitempty"`
	Organizer       bson.ObjectID   `bson:"organizer" json:"organizer"`
	Attendees       []bson.ObjectID `bson:"attendees" json:"attendees"`
	Project         *bson.ObjectID  `bson:"project,omitempty" json:"project,omitempty"`
	ScheduledAt     time.Time       `bson:"scheduledAt" json:"scheduledAt"`
	DurationMinutes int             `bson:"durationMinutes" json:"durationMinutes"`
	Location        string          `bson:"location,omitempty" json:"location,omitempty"`
	MeetingLink     string          `bson:"meetingLink,omitempty" json:"meetingLink,omitempty"`
	Agenda          []string        `bson:"agenda,omitempty" json:"agenda,omitempty"`
	Status          string          `bson:"status" json:"status"`
	Notes           string          `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time       `bson:"updatedAt" json:"updatedAt"`
}

func (m *TeamMeeting) ApplyDefaults(now time.Time) {
	m.Title = strings.TrimSpace(m.Title)
	if m.DurationMinutes == 0 {
		m.DurationMinutes = DefaultMeetingMinutes
	}
	if m.Status == "" {
		m.Status = MeetingScheduled
	}

	seen := make(map[bson.ObjectID]bool, len(m.Attendees))
	attendees := make([]bson.ObjectID, 0, len(m.Attendees))
	for _, a := range m.Attendees {
		if a.IsZero() || seen[a] {
			continue
		}
		seen[a] = true
		attendees = append(attendees, a)
	}
	m.Attendees = attendees

	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
}

func (m TeamMeeting) Validate() error {
	if m.Title == "" {
		return invalid("meeting title is required")
	}
	if m.Organizer.IsZero() {
		return invalid("meeting organizer is required")
	}
	if m.ScheduledAt.IsZero() {
		return invalid("meeting scheduledAt is required")
	}
	if m.DurationMinutes <= 0 {
		return invalid("meeting duration must be positive, got %d", m.DurationMinutes)
	}
	return oneOf("meeting status", m.Status, MeetingStatuses)
}

func (m TeamMeeting) EndsAt() time.Time {
	return m.ScheduledAt.Add(time.Duration(m.DurationMinutes) * time.Minute)
}

func ValidMeetingStatus(status string) error {
	return oneOf("meeting status", status, MeetingStatuses)
}
