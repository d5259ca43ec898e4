package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestProductKeepsUnknownFields(t *testing.T) {
	body := `{"email":"s@example.com","productName":"Desk","categoryId":"c1","resalePrice":"1200","originalPrice":2500,"brand":"IKEA"}`

	var p Product
	require.NoError(t, json.Unmarshal([]byte(body), &p))
	assert.Equal(t, "Desk", p.ProductName)
	assert.Equal(t, "c1", p.CategoryID)
	assert.Equal(t, "1200", p.Extra["resalePrice"])
	assert.Equal(t, json.Number("2500"), p.Extra["originalPrice"])
	assert.Equal(t, "IKEA", p.Extra["brand"])
	assert.NotContains(t, p.Extra, "email")

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"s@example.com","productName":"Desk","categoryId":"c1","resalePrice":"1200",
		"originalPrice":2500,"brand":"IKEA","advertise":false,"report":false,"verified":false}`, string(data))
}

func TestTypedFieldsStillValidated(t *testing.T) {
	var o Order
	assert.Error(t, json.Unmarshal([]byte(`{"email":42,"productName":"Desk"}`), &o))
}

func TestTypedFieldWinsOverExtra(t *testing.T) {
	o := Order{Email: "b@example.com", ProductName: "Desk", Extra: Fields{"email": "spoofed@example.com"}}

	data, err := json.Marshal(o)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "b@example.com", got["email"])
}

func TestExtraFieldsRoundTripBSON(t *testing.T) {
	var in Order
	require.NoError(t, json.Unmarshal([]byte(`{"email":"b@example.com","productName":"Desk","price":"300","meeting":{"place":"Dhaka"}}`), &in))

	raw, err := bson.Marshal(in)
	require.NoError(t, err)

	var out Order
	require.NoError(t, bson.Unmarshal(raw, &out))
	assert.Equal(t, "b@example.com", out.Email)
	assert.Equal(t, "300", out.Extra["price"])

	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"b@example.com","productName":"Desk","price":"300","meeting":{"place":"Dhaka"}}`, string(data))
}

func TestPlainValueConvertsBSONTypes(t *testing.T) {
	oid := primitive.NewObjectID()
	got := plainValue(primitive.D{
		{Key: "ref", Value: oid},
		{Key: "tags", Value: primitive.A{"a", primitive.D{{Key: "n", Value: int32(1)}}}},
	})

	assert.Equal(t, map[string]interface{}{
		"ref":  oid.Hex(),
		"tags": []interface{}{"a", map[string]interface{}{"n": int32(1)}},
	}, got)
}
