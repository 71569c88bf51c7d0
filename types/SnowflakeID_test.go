package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnowflakeIDUnmarshalAcceptsStringAndNumber(t *testing.T) {
	var fromString, fromNumber SnowflakeID
	require.NoError(t, json.Unmarshal([]byte(`"1790000000000000001"`), &fromString))
	require.NoError(t, json.Unmarshal([]byte(`101`), &fromNumber))

	assert.Equal(t, SnowflakeID(1790000000000000001), fromString)
	assert.Equal(t, SnowflakeID(101), fromNumber)

	var bad SnowflakeID
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &bad))
	assert.Error(t, json.Unmarshal([]byte(`true`), &bad))
}

func TestSnowflakeIDMarshalsAsString(t *testing.T) {
	out, err := json.Marshal(struct {
		ID SnowflakeID `json:"id"`
	}{ID: 101})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"101"}`, string(out))
}

func TestSnowflakeIDScan(t *testing.T) {
	var id SnowflakeID
	require.NoError(t, id.Scan(int64(42)))
	assert.Equal(t, SnowflakeID(42), id)
	require.NoError(t, id.Scan([]byte("43")))
	assert.Equal(t, SnowflakeID(43), id)
	assert.Error(t, id.Scan(3.14))
}
