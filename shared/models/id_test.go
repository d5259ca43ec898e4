package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestHexIDIsStoredAsObjectID(t *testing.T) {
	oid := primitive.NewObjectID()

	typ, _, err := ID(oid.Hex()).MarshalBSONValue()
	require.NoError(t, err)
	assert.Equal(t, bsontype.ObjectID, typ)

	typ, _, err = ID("6f1c-not-hex").MarshalBSONValue()
	require.NoError(t, err)
	assert.Equal(t, bsontype.String, typ)
}

func TestSeededObjectIDDecodesToHex(t *testing.T) {
	oid := primitive.NewObjectID()
	raw, err := bson.Marshal(bson.M{"_id": oid, "name": "Laptop"})
	require.NoError(t, err)

	var c Category
	require.NoError(t, bson.Unmarshal(raw, &c))
	assert.Equal(t, ID(oid.Hex()), c.ID)
	assert.Equal(t, "Laptop", c.Name)
}

func TestEmptyIDIsOmitted(t *testing.T) {
	raw, err := bson.Marshal(Order{Email: "b@x.io", ProductName: "Desk"})
	require.NoError(t, err)

	_, err = bson.Raw(raw).LookupErr("_id")
	assert.Error(t, err)
}

func TestIDFromValue(t *testing.T) {
	oid := primitive.NewObjectID()
	assert.Equal(t, ID(oid.Hex()), IDFromValue(oid))
	assert.Equal(t, ID("abc"), IDFromValue("abc"))
	assert.Equal(t, ID(""), IDFromValue(nil))
}
