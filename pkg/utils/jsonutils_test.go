package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetNestedString(t *testing.T) {
	data, err := ParseJSON(`{"product": {"attributes": {"usagetype": "USE1-TimedStorage-ByteHrs", "count": 3}}}`)
	require.NoError(t, err)

	v, err := GetNestedString(data, "product", "attributes", "usagetype")
	require.NoError(t, err)
	assert.Equal(t, "USE1-TimedStorage-ByteHrs", v)

	_, err = GetNestedString(data, "product", "attributes", "count")
	assert.Error(t, err)

	_, err = GetNestedString(data, "product", "missing", "usagetype")
	assert.Error(t, err)

	_, err = GetNestedString(data)
	assert.Error(t, err)
}

func TestParseJSONInvalid(t *testing.T) {
	_, err := ParseJSON("{")
	assert.Error(t, err)
}
