package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type JobPosting struct {
	ID             bson.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title          string        `bson:"title" json:"title"`
	Department     string        `bson:"department,omitempty" json:"department,omitempty"`
	Location       string        `bson:"location,omitempty" json:"location,omitempty"`
	EmploymentType string        `bson:"employmentType,omitempty" json:"employmentType,omitempty"`
	Status         string        `bson:"status,omitempty" json:"status,omitempty"`
	Openings       int           `bson:"openings,omitempty" json:"openings,omitempty"`
	CreatedAt      time.Time     `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}
