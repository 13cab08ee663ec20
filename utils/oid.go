package utils

import (
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func Oid(hex string) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(hex)
	if err != nil {
		return bson.NilObjectID, fmt.Errorf("invalid object id %q", hex)
	}
	return id, nil
}

// OptionalOid parses hex, treating an empty string as absent.
func OptionalOid(hex string) (*bson.ObjectID, error) {
	if hex == "" {
		return nil, nil
	}
	id, err := Oid(hex)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func Oids(hexes []string) ([]bson.ObjectID, error) {
	out := make([]bson.ObjectID, 0, len(hexes))
	for _, h := range hexes {
		id, err := Oid(h)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
