// Package team holds the static team roster used to resolve ticket
// assignees to display names. The roster is configuration, not data: it is
// loaded once at startup and never persisted by this client.
package team

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Member struct {
	ID   uint   `yaml:"id"`
	Name string `yaml:"name"`
}

type Roster struct {
	members []Member
	byID    map[uint]string
}

func NewRoster(members []Member) *Roster {
	byID := make(map[uint]string, len(members))
	for _, m := range members {
		byID[m.ID] = m.Name
	}
	return &Roster{members: members, byID: byID}
}

// DefaultRoster returns the built-in team used when no roster file is
// configured.
func DefaultRoster() *Roster {
	return NewRoster([]Member{
		{ID: 1, Name: "Ameen"},
		{ID: 2, Name: "Hilesh"},
		{ID: 3, Name: "Sanal"},
		{ID: 4, Name: "Vivek"},
	})
}

// LoadRoster reads a roster from a yaml file of the form:
//
//	members:
//	  - id: 1
//	    name: Ameen
func LoadRoster(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster file: %w", err)
	}

	var file struct {
		Members []Member `yaml:"members"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse roster file: %w", err)
	}
	if len(file.Members) == 0 {
		return nil, fmt.Errorf("roster file %s lists no members", path)
	}

	return NewRoster(file.Members), nil
}

func (r *Roster) Members() []Member {
	membersCopy := make([]Member, len(r.members))
	copy(membersCopy, r.members)
	return membersCopy
}

// NameFor resolves an assignee reference to a display name. Nil, zero, and
// unknown ids all render as unassigned.
func (r *Roster) NameFor(id *uint) string {
	if id == nil || *id == 0 {
		return "Unassigned"
	}
	if name, ok := r.byID[*id]; ok {
		return name
	}
	return "Unassigned"
}
