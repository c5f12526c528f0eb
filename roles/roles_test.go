package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCan(t *testing.T) {
	tests := []struct {
		role Role
		op   Operation
		want bool
	}{
		{Officer, SubmitArrest, true},
		{Officer, ViewReports, false},
		{Officer, ManageStatutes, false},
		{Command, ViewReports, true},
		{Command, ManageOfficers, true},
		{Command, WipeData, false},
		{Attorney, ViewReports, true},
		{Attorney, SubmitArrest, false},
		{Developer, WipeData, true},
		{Attorney, EditProfile, true},
		{Officer, EditProfile, true},
		{Role("janitor"), SubmitArrest, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.op), func(t *testing.T) {
			assert.Equal(t, tt.want, Can(tt.role, tt.op))
		})
	}
}

func TestCapabilitiesReturnsCopy(t *testing.T) {
	ops := Capabilities(Officer)
	ops[0] = WipeData
	assert.False(t, Can(Officer, WipeData))
	assert.Empty(t, Capabilities(Role("unknown")))
}

func TestCapabilities(t *testing.T) {
	assert.Equal(t, []Operation{SubmitArrest, EditProfile}, Capabilities(Officer))
	assert.Equal(t, []Operation{ViewReports, EditProfile}, Capabilities(Attorney))
	assert.Equal(t, []Operation{SubmitArrest, ViewReports, ManageOfficers, ManageStatutes, WipeData, EditProfile}, Capabilities(Developer))
}

func TestParse(t *testing.T) {
	r, ok := Parse("Policial")
	assert.True(t, ok)
	assert.Equal(t, Officer, r)

	r, ok = Parse(" dev ")
	assert.True(t, ok)
	assert.Equal(t, Developer, r)

	_, ok = Parse("mayor")
	assert.False(t, ok)
}
