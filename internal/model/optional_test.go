package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOption_JSON(t *testing.T) {
	tests := []struct {
		name string
		in   Option[string]
		want string
	}{
		{name: "some", in: Some("bring crayons"), want: `"bring crayons"`},
		{name: "some empty", in: Some(""), want: `""`},
		{name: "none", in: None[string](), want: `null`},
		{name: "zero value", want: `null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.in)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))

			var back Option[string]
			require.NoError(t, json.Unmarshal(got, &back))
			assert.Equal(t, tt.in.IsSome(), back.IsSome())
			assert.Equal(t, tt.in.OrElse("-"), back.OrElse("-"))
		})
	}
}

func TestOption_OmittedField(t *testing.T) {
	hw := Homework{Title: "Math HW", Subject: "Math"}
	data, err := json.Marshal(hw)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "notes")

	var decoded Homework
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Math HW","subject":"Math"}`), &decoded))
	assert.False(t, decoded.Notes.IsSome())
}

func TestOption_Scan(t *testing.T) {
	var o Option[string]
	require.NoError(t, o.Scan([]byte("room 4")))
	v, ok := o.Get()
	assert.True(t, ok)
	assert.Equal(t, "room 4", v)

	require.NoError(t, o.Scan(nil))
	assert.False(t, o.IsSome())

	assert.Error(t, o.Scan(42))
}

func TestOption_Value(t *testing.T) {
	v, err := None[string]().Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = Some("gym").Value()
	require.NoError(t, err)
	assert.Equal(t, "gym", v)
}
