package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	OnboardingPending   = "pending"
	OnboardingOfferSent = "offer-sent"
	OnboardingAccepted  = "offer-accepted"
	OnboardingCompleted = "completed"
	OnboardingRejected  = "rejected"
	OnboardingCancelled = "cancelled"
)

// Onboarding tracks a candidate from offer to first day. The same shape is
// stored in both the onboardings and onboardingrequests collections.
type Onboarding struct {
	ID             bson.ObjectID  `bson:"_id,omitempty" json:"_id,omitempty"`
	CandidateName  string         `bson:"candidateName,omitempty" json:"candidateName,omitempty"`
	CandidateEmail string         `bson:"candidateEmail,omitempty" json:"candidateEmail,omitempty"`
	Position       string         `bson:"position,omitempty" json:"position,omitempty"`
	Department     string         `bson:"department,omitempty" json:"department,omitempty"`
	Status         string         `bson:"status,omitempty" json:"status,omitempty"`
	EmployeeID     *bson.ObjectID `bson:"employeeId,omitempty" json:"employeeId,omitempty"`
	JoiningDate    *time.Time     `bson:"joiningDate,omitempty" json:"joiningDate,omitempty"`
	CreatedAt      time.Time      `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// Closed reports whether the record can no longer lead to a hire.
func (o Onboarding) Closed() bool {
	return o.Status == OnboardingRejected || o.Status == OnboardingCancelled
}
