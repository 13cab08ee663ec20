package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Project struct {
	ID        bson.ObjectID  `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string         `bson:"name" json:"name"`
	Code      string         `bson:"code,omitempty" json:"code,omitempty"`
	Status    string         `bson:"status,omitempty" json:"status,omitempty"`
	Manager   *bson.ObjectID `bson:"manager,omitempty" json:"manager,omitempty"`
	Client    *bson.ObjectID `bson:"client,omitempty" json:"client,omitempty"`
	CreatedAt time.Time      `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

type ProjectAssignment struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Project    bson.ObjectID `bson:"project" json:"project"`
	Employee   bson.ObjectID `bson:"employee" json:"employee"`
	Role       string        `bson:"role,omitempty" json:"role,omitempty"`
	Allocation int           `bson:"allocation,omitempty" json:"allocation,omitempty"`
	IsActive   bool          `bson:"isActive" json:"isActive"`
}
