package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type indexedModel struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Code      string             `bson:"code,omitempty" index:"unique,sparse"`
	Name      string             `bson:"name" index:"single,order:-1"`
	ExpiresAt int64              `bson:"expiresAt" index:"ttl:3600"`
	Ignored   string             `bson:"-" index:"single"`
	Plain     string             `bson:"plain"`
}

func TestParseIndexTag(t *testing.T) {
	cfgs := parseIndexTag("unique,sparse;single,order:-1")
	require.Len(t, cfgs, 2)

	_, unique := cfgs[0]["unique"]
	_, sparse := cfgs[0]["sparse"]
	assert.True(t, unique)
	assert.True(t, sparse)
	assert.Equal(t, -1, parseOrder(cfgs[1]))
	assert.Equal(t, 1, parseOrder(cfgs[0]))
}

func TestIndexSpecsFor(t *testing.T) {
	specs, err := indexSpecsFor(&indexedModel{})
	require.NoError(t, err)
	require.Len(t, specs, 3)

	byName := map[string]indexSpec{}
	for _, s := range specs {
		byName[s.Name] = s
	}

	code := byName["code_unique"]
	assert.Equal(t, bson.D{{Key: "code", Value: 1}}, code.Keys, "tên field phải bỏ ,omitempty")
	assert.True(t, *code.Options.Unique)
	assert.True(t, *code.Options.Sparse)

	name := byName["name_single"]
	assert.Equal(t, bson.D{{Key: "name", Value: -1}}, name.Keys)

	ttl := byName["expiresAt_ttl"]
	assert.Equal(t, int32(3600), *ttl.Options.ExpireAfterSeconds)

	_, err = indexSpecsFor("không phải struct")
	assert.Error(t, err)
}

func TestIndexSpecsFor_InvalidTTL(t *testing.T) {
	type badTTL struct {
		At int64 `bson:"at" index:"ttl:abc"`
	}
	_, err := indexSpecsFor(badTTL{})
	assert.Error(t, err)
}

func TestCompareIndex(t *testing.T) {
	specs, err := indexSpecsFor(indexedModel{})
	require.NoError(t, err)
	var code indexSpec
	for _, s := range specs {
		if s.Name == "code_unique" {
			code = s
		}
	}

	same := bson.M{"name": "code_unique", "key": bson.M{"code": int32(1)}, "unique": true, "sparse": true}
	assert.True(t, compareIndex(same, code))

	notSparse := bson.M{"name": "code_unique", "key": bson.M{"code": int32(1)}, "unique": true}
	assert.False(t, compareIndex(notSparse, code))

	otherOrder := bson.M{"name": "code_unique", "key": bson.M{"code": int32(-1)}, "unique": true, "sparse": true}
	assert.False(t, compareIndex(otherOrder, code))
}
