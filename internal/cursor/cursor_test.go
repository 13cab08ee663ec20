package cursor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestRoundTrip(t *testing.T) {
	p := Position{CreatedAt: time.Date(2025, 6, 1, 8, 30, 0, 123e6, time.UTC), ID: bson.NewObjectID()}
	s := Encode(p)
	assert.NotContains(t, s, "=")

	got, err := Decode(s)
	require.NoError(t, err)
	assert.True(t, p.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, p.ID, got.ID)
}

func TestDecodeInvalid(t *testing.T) {
	for _, s := range []string{"%%%", "bm90IGpzb24", "eyJjcmVhdGVkQXQiOjEsImlkIjoieCJ9"} {
		_, err := Decode(s)
		assert.ErrorIs(t, err, ErrInvalid, s)
	}
}

func TestAfter(t *testing.T) {
	p := Position{CreatedAt: time.Unix(100, 0).UTC(), ID: bson.NewObjectID()}
	or := p.After()["$or"].(bson.A)
	require.Len(t, or, 3)
	assert.Equal(t, bson.M{"createdAt": bson.M{"$lt": p.CreatedAt}}, or[0])
	assert.Equal(t, bson.M{"createdAt": p.CreatedAt, "_id": bson.M{"$lt": p.ID}}, or[1])
	assert.Equal(t, bson.M{"createdAt": nil}, or[2], "undated postings still follow")
}

func TestUndatedBoundary(t *testing.T) {
	p := Position{ID: bson.NewObjectID()}
	require.True(t, p.Undated())

	got, err := Decode(Encode(p))
	require.NoError(t, err)
	assert.True(t, got.Undated())
	assert.Equal(t, p.ID, got.ID)

	assert.Equal(t, bson.M{"createdAt": nil, "_id": bson.M{"$lt": p.ID}}, got.After())
}

func TestDecodeEpochIsDated(t *testing.T) {
	got, err := Decode(Encode(Position{CreatedAt: time.UnixMilli(1).UTC(), ID: bson.NewObjectID()}))
	require.NoError(t, err)
	assert.False(t, got.Undated())
}
