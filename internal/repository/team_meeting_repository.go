package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vibhu2208/hrms-backend-sub007/internal/models"
)

type TeamMeetingRepository struct {
	col *mongo.Collection
}

func NewTeamMeetingRepository(db *mongo.Database) *TeamMeetingRepository {
	return &TeamMeetingRepository{col: db.Collection(TeamMeetingsCollection)}
}

func (r *TeamMeetingRepository) Insert(ctx context.Context, m *models.TeamMeeting) error {
	m.ID = bson.NewObjectID()
	if _, err := r.col.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("insert meeting: %w", err)
	}
	return nil
}

// FindUpcoming lists meetings scheduled at or after from, soonest first.
func (r *TeamMeetingRepository) FindUpcoming(ctx context.Context, from time.Time) ([]models.TeamMeeting, error) {
	return findAll[models.TeamMeeting](ctx, r.col,
		bson.M{"scheduledAt": bson.M{"$gte": from}},
		options.Find().SetSort(bson.D{{Key: "scheduledAt", Value: 1}}))
}

func (r *TeamMeetingRepository) SetStatus(ctx context.Context, id bson.ObjectID, status string) error {
	if err := models.ValidMeetingStatus(status); err != nil {
		return err
	}
	return updateByID(ctx, r.col, id, bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}})
}

func (r *TeamMeetingRepository) FindByID(ctx context.Context, id bson.ObjectID) (models.TeamMeeting, error) {
	return findOne[models.TeamMeeting](ctx, r.col, bson.M{"_id": id})
}

func (r *TeamMeetingRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	return deleteByID(ctx, r.col, id)
}
