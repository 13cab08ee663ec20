package cursor

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

var ErrInvalid = errors.New("invalid cursor")

// Position is a keyset position in a createdAt desc, _id desc listing. A zero
// CreatedAt marks a document without createdAt; those sort last.
type Position struct {
	CreatedAt time.Time
	ID        bson.ObjectID
}

type wire struct {
	CreatedAt *int64 `json:"createdAt"`
	ID        string `json:"id"`
}

func (p Position) Undated() bool {
	return p.CreatedAt.IsZero()
}

func Encode(p Position) string {
	w := wire{ID: p.ID.Hex()}
	if !p.Undated() {
		ms := p.CreatedAt.UnixMilli()
		w.CreatedAt = &ms
	}
	b, _ := json.Marshal(w)
	return base64.RawURLEncoding.EncodeToString(b)
}

func Decode(s string) (Position, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return Position{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	var w wire
	if err := json.Unmarshal(raw, &w); err != nil {
		return Position{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	id, err := bson.ObjectIDFromHex(w.ID)
	if err != nil {
		return Position{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	p := Position{ID: id}
	if w.CreatedAt != nil {
		p.CreatedAt = time.UnixMilli(*w.CreatedAt).UTC()
	}
	return p, nil
}

// After builds the filter selecting documents that sort after p. A createdAt
// of null also matches a missing field.
func (p Position) After() bson.M {
	if p.Undated() {
		return bson.M{"createdAt": nil, "_id": bson.M{"$lt": p.ID}}
	}
	return bson.M{"$or": bson.A{
		bson.M{"createdAt": bson.M{"$lt": p.CreatedAt}},
		bson.M{"createdAt": p.CreatedAt, "_id": bson.M{"$lt": p.ID}},
		bson.M{"createdAt": nil},
	}}
}
