// Package services loads the services.yaml catalog that maps service
// names to team metadata (owners, contact, docs, runbook).
package services

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	svcerrors "serviceowners/internal/errors"
)

// OwnerKind is the closed set of owner shapes a catalog entry may take.
type OwnerKind string

const (
	// TeamOwner is a team handle like @org/team
	TeamOwner OwnerKind = "team"
	// UserOwner is an individual handle
	UserOwner OwnerKind = "user"
	// EmailOwner is an email address
	EmailOwner OwnerKind = "email"
	// RawOwner is an unclassified plain string
	RawOwner OwnerKind = "raw"
)

// Owner is a tagged owner reference. The shape is decided once at parse
// time, never re-guessed at query time.
type Owner struct {
	Kind  OwnerKind `json:"kind"`
	Value string    `json:"value"`
}

// Display returns the user-facing owner text.
func (o Owner) Display() string {
	return o.Value
}

// UnmarshalYAML accepts either a bare string ("@org/team",
// "user@example.com", "handle") or a mapping with exactly one of the
// team/user/email keys. Field presence wins over string-shape guessing.
func (o *Owner) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*o = classifyOwnerString(s)
		return nil

	case yaml.MappingNode:
		var m struct {
			Team  string `yaml:"team"`
			User  string `yaml:"user"`
			Email string `yaml:"email"`
		}
		if err := node.Decode(&m); err != nil {
			return err
		}
		switch {
		case m.Team != "":
			*o = Owner{Kind: TeamOwner, Value: m.Team}
		case m.User != "":
			*o = Owner{Kind: UserOwner, Value: m.User}
		case m.Email != "":
			*o = Owner{Kind: EmailOwner, Value: m.Email}
		default:
			return fmt.Errorf("owner entry must include one of: team/user/email")
		}
		return nil
	}

	return fmt.Errorf("owner entry must be a string or a mapping")
}

// classifyOwnerString decides the owner kind for a bare string:
// "@..." is a team handle, something@something.tld is an email, anything
// else with no better signal is a user handle.
func classifyOwnerString(s string) Owner {
	if strings.HasPrefix(s, "@") {
		return Owner{Kind: TeamOwner, Value: s}
	}
	if strings.Contains(s, "@") && strings.Contains(s, ".") && !strings.Contains(s, " ") {
		return Owner{Kind: EmailOwner, Value: s}
	}
	if s == "" {
		return Owner{Kind: RawOwner, Value: s}
	}
	return Owner{Kind: UserOwner, Value: s}
}

// Contact holds the reachable-human channels for a service.
type Contact struct {
	Slack string `yaml:"slack" json:"slack,omitempty"`
	Email string `yaml:"email" json:"email,omitempty"`
}

// Service is one entry in the catalog.
type Service struct {
	Name        string   `yaml:"-" json:"name"`
	Description string   `yaml:"description" json:"description,omitempty"`
	Owners      []Owner  `yaml:"owners" json:"owners,omitempty"`
	Contact     Contact  `yaml:"contact" json:"contact,omitempty"`
	Docs        string   `yaml:"docs" json:"docs,omitempty"`
	Runbook     string   `yaml:"runbook" json:"runbook,omitempty"`
	Oncall      string   `yaml:"oncall" json:"oncall,omitempty"`
	Dashboards  []string `yaml:"dashboards" json:"dashboards,omitempty"`
	Tags        []string `yaml:"tags" json:"tags,omitempty"`
}

// HasContact reports whether anyone can be reached about this service.
func (s *Service) HasContact() bool {
	return len(s.Owners) > 0 || s.Contact.Slack != "" || s.Contact.Email != ""
}

// OwnersLine renders the owners as a comma-separated display string.
func (s *Service) OwnersLine() string {
	parts := make([]string, 0, len(s.Owners))
	for _, o := range s.Owners {
		if o.Display() != "" {
			parts = append(parts, o.Display())
		}
	}
	return strings.Join(parts, ", ")
}

// Catalog maps service name to metadata.
type Catalog map[string]*Service

// Parse parses a services.yaml document. Both layouts are accepted:
// a top-level "services:" mapping, or service names at the top level.
func Parse(data []byte, source string) (Catalog, error) {
	if len(data) == 0 {
		return Catalog{}, nil
	}

	var wrapped struct {
		Services map[string]*Service `yaml:"services"`
	}
	if err := yaml.Unmarshal(data, &wrapped); err == nil && len(wrapped.Services) > 0 {
		return finish(wrapped.Services), nil
	}

	var flat map[string]*Service
	if err := yaml.Unmarshal(data, &flat); err != nil {
		return nil, svcerrors.Wrap(svcerrors.ParseError, "cannot parse services file "+source, err)
	}
	return finish(flat), nil
}

func finish(m map[string]*Service) Catalog {
	out := make(Catalog, len(m))
	for name, svc := range m {
		if svc == nil {
			svc = &Service{}
		}
		svc.Name = name
		out[name] = svc
	}
	return out
}

// Load reads and parses a services.yaml file. A missing file is an empty
// catalog, not an error: the catalog is optional metadata.
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Catalog{}, nil
		}
		return nil, svcerrors.Wrap(svcerrors.ParseError, "cannot read services file "+path, err)
	}
	return Parse(data, path)
}
