package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermissions_Has(t *testing.T) {
	t.Parallel()

	events := Permissions{"events": {"read", "create"}}

	tests := []struct {
		name        string
		permissions Permissions
		resource    string
		action      string
		want        bool
	}{
		{name: "action not granted", permissions: events, resource: "events", action: "delete", want: false},
		{name: "action granted", permissions: events, resource: "events", action: "create", want: true},
		{name: "empty permissions", permissions: Permissions{}, resource: "events", action: "read", want: false},
		{name: "nil permissions", permissions: nil, resource: "events", action: "read", want: false},
		{name: "case sensitive action", permissions: events, resource: "events", action: "Read", want: false},
		{name: "case sensitive resource", permissions: events, resource: "Events", action: "read", want: false},
		{name: "no wildcard", permissions: Permissions{"events": {"*"}}, resource: "events", action: "read", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.permissions.Has(tt.resource, tt.action))
		})
	}
}

func TestProfileUpdate_Apply(t *testing.T) {
	rank := "Sergeant"
	p := Profile{FirstName: "Jane", Rank: "Constable"}

	got := ProfileUpdate{Rank: &rank}.Apply(p)

	assert.Equal(t, "Jane", got.FirstName)
	assert.Equal(t, "Sergeant", got.Rank)
	assert.Equal(t, "Constable", p.Rank)
}
