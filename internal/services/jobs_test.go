package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vibhu2208/hrms-backend-sub007/internal/cursor"
	"github.com/vibhu2208/hrms-backend-sub007/internal/models"
)

func jobsAt(n int) []models.JobPosting {
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	out := make([]models.JobPosting, n)
	for i := range out {
		out[i] = models.JobPosting{ID: bson.NewObjectID(), Title: "job", CreatedAt: base.Add(-time.Duration(i) * time.Hour)}
	}
	return out
}

func TestNewJobPage(t *testing.T) {
	t.Run("unpaged", func(t *testing.T) {
		page := NewJobPage(jobsAt(5), 0)
		assert.Len(t, page.Jobs, 5)
		assert.Empty(t, page.Next)
	})

	t.Run("last page", func(t *testing.T) {
		page := NewJobPage(jobsAt(3), 3)
		assert.Len(t, page.Jobs, 3)
		assert.Empty(t, page.Next)
	})

	t.Run("more to come", func(t *testing.T) {
		jobs := jobsAt(4)
		page := NewJobPage(jobs, 3)
		require.Len(t, page.Jobs, 3)
		pos, err := cursor.Decode(page.Next)
		require.NoError(t, err)
		assert.Equal(t, jobs[2].ID, pos.ID)
		assert.True(t, jobs[2].CreatedAt.Equal(pos.CreatedAt))
	})

	t.Run("page ends on undated posting", func(t *testing.T) {
		jobs := append(jobsAt(1), models.JobPosting{ID: bson.NewObjectID()}, models.JobPosting{ID: bson.NewObjectID()})
		page := NewJobPage(jobs, 2)
		pos, err := cursor.Decode(page.Next)
		require.NoError(t, err)
		assert.True(t, pos.Undated())
		assert.Equal(t, bson.M{"createdAt": nil, "_id": bson.M{"$lt": jobs[1].ID}}, pos.After())
	})

	t.Run("nil", func(t *testing.T) {
		assert.NotNil(t, NewJobPage(nil, 10).Jobs)
	})
}
