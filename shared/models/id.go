package models

import (
	"database/sql/driver"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ID is a document identifier. On the wire and in SQL it is a plain string.
// In MongoDB a 24 character hex ID is stored as an ObjectID so documents
// seeded by other tools keep matching; anything else is stored as a string.
type ID string

func (id ID) String() string { return string(id) }

func (id ID) IsZero() bool { return id == "" }

func (id ID) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if oid, err := primitive.ObjectIDFromHex(string(id)); err == nil {
		return bson.MarshalValue(oid)
	}
	return bson.MarshalValue(string(id))
}

func (id *ID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.ObjectID:
		*id = ID(raw.ObjectID().Hex())
	case bsontype.String:
		*id = ID(raw.StringValue())
	case bsontype.Null, bsontype.Undefined:
		*id = ""
	default:
		return fmt.Errorf("cannot decode BSON %s into ID", t)
	}
	return nil
}

// IDFromValue converts a driver-generated identifier (insertedId, upsertedId)
// into an ID.
func IDFromValue(v interface{}) ID {
	switch x := v.(type) {
	case nil:
		return ""
	case primitive.ObjectID:
		return ID(x.Hex())
	case string:
		return ID(x)
	case ID:
		return x
	default:
		return ID(fmt.Sprint(x))
	}
}

func (id ID) Value() (driver.Value, error) {
	return string(id), nil
}

func (id *ID) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*id = ""
	case string:
		*id = ID(v)
	case []byte:
		*id = ID(v)
	default:
		return fmt.Errorf("cannot scan %T into ID", src)
	}
	return nil
}
