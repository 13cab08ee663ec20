package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestOid(t *testing.T) {
	want := bson.NewObjectID()
	got, err := Oid(want.Hex())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = Oid("not-an-id")
	assert.ErrorContains(t, err, "not-an-id")
}

func TestOptionalOid(t *testing.T) {
	id, err := OptionalOid("")
	require.NoError(t, err)
	assert.Nil(t, id)

	want := bson.NewObjectID()
	id, err = OptionalOid(want.Hex())
	require.NoError(t, err)
	assert.Equal(t, want, *id)
}

func TestOids(t *testing.T) {
	a, b := bson.NewObjectID(), bson.NewObjectID()
	ids, err := Oids([]string{a.Hex(), b.Hex()})
	require.NoError(t, err)
	assert.Equal(t, []bson.ObjectID{a, b}, ids)

	_, err = Oids([]string{a.Hex(), "zz"})
	assert.Error(t, err)
}
