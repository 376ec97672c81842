package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexList(t *testing.T) {
	type item struct {
		Name string `json:"name"`
	}

	var one FlexList[item]
	require.NoError(t, json.Unmarshal([]byte(`{"name":"a"}`), &one))
	assert.Equal(t, []item{{Name: "a"}}, one.Slice())

	var many FlexList[item]
	require.NoError(t, json.Unmarshal([]byte(` [{"name":"a"},{"name":"b"}]`), &many))
	assert.Len(t, many, 2)

	var none FlexList[item]
	require.NoError(t, json.Unmarshal([]byte(`null`), &none))
	assert.Empty(t, none)

	assert.Error(t, json.Unmarshal([]byte(`"text"`), &none))
}

func TestFlexInt(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{`40`, 40, false},
		{`"65"`, 65, false},
		{`" 7 "`, 7, false},
		{`"half"`, 0, true},
		{`true`, 0, true},
	}

	for _, tt := range tests {
		var f FlexInt
		err := json.Unmarshal([]byte(tt.input), &f)
		if tt.wantErr {
			assert.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, f.Int())
	}

	out, err := json.Marshal(FlexInt(12))
	require.NoError(t, err)
	assert.JSONEq(t, `12`, string(out))
}

func TestBadRequest(t *testing.T) {
	err := BadRequest("importLeads", "Missing CSV file: %v", "no file")
	assert.Equal(t, 400, err.Code)
	assert.Equal(t, "Missing CSV file: no file", err.Message)
	assert.Equal(t, "400: Missing CSV file: no file [type: importLeads]", err.Error())
}

func TestUnprocessable(t *testing.T) {
	err := Unprocessable("importLeads", "Unreadable CSV")
	assert.Equal(t, 422, err.Code)
	assert.Equal(t, "importLeads", err.Type)
}
