package repository

import (
	"context"
	"fmt"
	"strconv"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vibhu2208/hrms-backend-sub007/internal/models"
)

type EmployeeRequestRepository struct {
	col      *mongo.Collection
	counters *mongo.Collection
}

func NewEmployeeRequestRepository(db *mongo.Database) *EmployeeRequestRepository {
	return &EmployeeRequestRepository{
		col:      db.Collection(EmployeeRequestsCollection),
		counters: db.Collection(CountersCollection),
	}
}

type counter struct {
	ID  string `bson:"_id"`
	Seq int    `bson:"seq"`
}

// NextSequence atomically increments the request counter of year.
func (r *EmployeeRequestRepository) NextSequence(ctx context.Context, year int) (int, error) {
	var c counter
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": "employeerequest-" + strconv.Itoa(year)},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&c)
	if err != nil {
		return 0, fmt.Errorf("next request sequence: %w", err)
	}
	return c.Seq, nil
}

// Insert numbers the request from its creation year and stores it.
func (r *EmployeeRequestRepository) Insert(ctx context.Context, req *models.EmployeeRequest) error {
	seq, err := r.NextSequence(ctx, req.CreatedAt.Year())
	if err != nil {
		return err
	}
	if req.RequestNumber, err = models.FormatRequestNumber(req.CreatedAt.Year(), seq); err != nil {
		return err
	}
	req.ID = bson.NewObjectID()
	if _, err := r.col.InsertOne(ctx, req); err != nil {
		return fmt.Errorf("insert request %s: %w", req.RequestNumber, err)
	}
	return nil
}

func (r *EmployeeRequestRepository) FindAll(ctx context.Context, status string) ([]models.EmployeeRequest, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return findAll[models.EmployeeRequest](ctx, r.col, filter, options.Find().SetSort(bson.D{{Key: "requestNumber", Value: -1}}))
}

func (r *EmployeeRequestRepository) FindByNumber(ctx context.Context, number string) (models.EmployeeRequest, error) {
	return findOne[models.EmployeeRequest](ctx, r.col, bson.M{"requestNumber": number})
}

// Replace writes back a request loaded with FindByNumber.
func (r *EmployeeRequestRepository) Replace(ctx context.Context, req models.EmployeeRequest) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": req.ID}, req)
	if err != nil {
		return fmt.Errorf("replace request %s: %w", req.RequestNumber, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("request %s: %w", req.RequestNumber, ErrNotFound)
	}
	return nil
}

func (r *EmployeeRequestRepository) FindByID(ctx context.Context, id bson.ObjectID) (models.EmployeeRequest, error) {
	return findOne[models.EmployeeRequest](ctx, r.col, bson.M{"_id": id})
}

func (r *EmployeeRequestRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	return deleteByID(ctx, r.col, id)
}
