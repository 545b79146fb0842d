package docstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type spotDoc struct {
	Name     string  `json:"name"`
	Province string  `json:"province_id"`
	Rating   float64 `json:"rating"`
	Price    float64 `json:"price"`
}

func TestMemoryCollectionFindFilterSortLimit(t *testing.T) {
	store := NewMemoryStore()
	store.Seed("spots",
		spotDoc{Name: "Ba Na Hills", Province: "danang", Rating: 8.9, Price: 800000},
		spotDoc{Name: "Marble Mountains", Province: "danang", Rating: 7.5, Price: 0},
		spotDoc{Name: "Hoi An Ancient Town", Province: "hoian", Rating: 9.1, Price: 0},
	)

	ctx := context.Background()
	coll := store.Collection("spots")

	cur, err := coll.Find(ctx, bson.M{"province_id": "danang"}, WithSort(bson.D{{Key: "rating", Value: -1}}), WithLimit(1))
	require.NoError(t, err)
	defer cur.Close(ctx)

	require.True(t, cur.Next(ctx))
	var got spotDoc
	require.NoError(t, cur.Decode(&got))
	require.Equal(t, "Ba Na Hills", got.Name)
	require.False(t, cur.Next(ctx))
}

func TestMemoryCollectionFindOneNoMatchReturnsNil(t *testing.T) {
	store := NewMemoryStore()
	store.Seed("spots", spotDoc{Name: "Ba Na Hills", Province: "danang"})

	doc, err := store.Collection("spots").FindOne(context.Background(), bson.M{"province_id": "hanoi"})
	require.NoError(t, err)
	require.Nil(t, doc)
}

func TestMatchFilterRegexAndRange(t *testing.T) {
	doc := bson.M{"name": "Ba Na Hills", "price": 800000.0}
	require.True(t, matchFilter(doc, bson.M{"name": bson.M{"$regex": "ba na"}}))
	require.True(t, matchFilter(doc, bson.M{"price": bson.M{"$gte": 500000.0, "$lte": 1000000.0}}))
	require.False(t, matchFilter(doc, bson.M{"price": bson.M{"$gte": 900000.0}}))
}

func TestMatchFilterOrAnd(t *testing.T) {
	doc := bson.M{"province_id": "danang", "category": "nature"}
	require.True(t, matchFilter(doc, bson.M{"$or": []bson.M{
		{"province_id": "hanoi"},
		{"province_id": "danang"},
	}}))
	require.True(t, matchFilter(doc, bson.M{"$and": []bson.M{
		{"province_id": "danang"},
		{"category": "nature"},
	}}))
	require.False(t, matchFilter(doc, bson.M{"$and": []bson.M{
		{"province_id": "danang"},
		{"category": "food"},
	}}))
}
