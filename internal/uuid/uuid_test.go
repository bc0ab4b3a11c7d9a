package uuid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveEmpty(t *testing.T) {
	id, version := Derive("")
	assert.Equal(t, 4, version)
	assert.Len(t, id, Length)
	assert.True(t, IsValid(id))
}

func TestDeriveStable(t *testing.T) {
	id1, v1 := Derive("http://www.sintef.no/calm/0.1/Chemistry")
	id2, v2 := Derive("http://www.sintef.no/calm/0.1/Chemistry")

	assert.Equal(t, 5, v1)
	assert.Equal(t, 5, v2)
	assert.Equal(t, id1, id2)
}

func TestDeriveFixedPoint(t *testing.T) {
	id, _ := Derive("http://www.sintef.no/calm/0.1/Chemistry")
	again, version := Derive(id)
	assert.Equal(t, 0, version)
	assert.Equal(t, id, again)
}

func TestDeriveWellFormedUUID(t *testing.T) {
	id, version := Derive("550E8400-E29B-41D4-A716-446655440000")
	assert.Equal(t, 0, version)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", id)
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("550e8400-e29b-41d4-a716-446655440000"))
	assert.False(t, IsValid("not-a-uuid"))
	assert.False(t, IsValid(""))
}
