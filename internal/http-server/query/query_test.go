package query

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInt(t *testing.T) {
	r := httptest.NewRequest("GET", "/?a=42&bad=x", nil)

	v, present, err := Int(r, "a")
	require.NoError(t, err)
	assert.True(t, present)
	assert.Equal(t, 42, v)

	_, present, err = Int(r, "missing")
	require.NoError(t, err)
	assert.False(t, present)

	_, present, err = Int(r, "bad")
	require.Error(t, err)
	assert.True(t, present)
}

func TestIntAny(t *testing.T) {
	r := httptest.NewRequest("GET", "/?storeid=7", nil)

	v, present, err := IntAny(r, "storeID", "storeid")
	require.NoError(t, err)
	assert.True(t, present)
	assert.Equal(t, 7, v)
}

func TestStr(t *testing.T) {
	r := httptest.NewRequest("GET", "/?name=+padded+&empty=++", nil)

	v, present := Str(r, "name")
	assert.True(t, present)
	assert.Equal(t, "padded", v)

	_, present = Str(r, "empty")
	assert.False(t, present, "whitespace-only counts as absent")

	_, present = Str(r, "missing")
	assert.False(t, present)
}

func TestStrAny(t *testing.T) {
	r := httptest.NewRequest("GET", "/?type=Delivery", nil)

	v, present := StrAny(r, "pickup", "type")
	assert.True(t, present)
	assert.Equal(t, "Delivery", v)
}
