package examples

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoExamples is returned for classes without canned examples.
var ErrNoExamples = errors.New("no examples available")

type noExamplesError struct {
	class     string
	available []string
}

func (e *noExamplesError) Error() string {
	return fmt.Sprintf("No examples available for event class '%s'. Available: %s",
		e.class, strings.Join(e.available, ", "))
}

func (e *noExamplesError) Is(target error) bool { return target == ErrNoExamples }

// Example is a complete sample event for one scenario of a class.
type Example struct {
	EventClass  string `json:"event_class"`
	Scenario    string `json:"scenario"`
	Description string `json:"description"`
	JSON        string `json:"json"`
}

// catalog lists examples per class in presentation order.
var catalog = map[string][]Example{
	"authentication": {
		{
			EventClass:  "authentication",
			Scenario:    "failed_login",
			Description: "Failed login attempt with invalid credentials",
			JSON: `{
  "metadata": {
    "version": "1.7.0-dev",
    "event_class": "authentication",
    "category_uid": 3,
    "class_uid": 3002,
    "uid": "223e4567-e89b-12d3-a456-426614174001"
  },
  "time": "2025-01-15T10:35:00Z",
  "user": {
    "name": "attacker",
    "uid": "unknown"
  },
  "auth_protocol": "LDAP",
  "status": "failure",
  "status_detail": "Invalid credentials",
  "activity_id": 1,
  "activity_name": "Logon",
  "severity": "medium"
}`,
		},
		{
			EventClass:  "authentication",
			Scenario:    "successful_login",
			Description: "User successfully logged in using OAuth2",
			JSON: `{
  "metadata": {
    "version": "1.7.0-dev",
    "event_class": "authentication",
    "category_uid": 3,
    "class_uid": 3002,
    "uid": "123e4567-e89b-12d3-a456-426614174000"
  },
  "time": "2025-01-15T10:30:00Z",
  "user": {
    "name": "john.doe",
    "uid": "1001"
  },
  "auth_protocol": "OAuth2",
  "status": "success",
  "activity_id": 1,
  "activity_name": "Logon"
}`,
		},
	},
	"process_activity": {
		{
			EventClass:  "process_activity",
			Scenario:    "process_start",
			Description: "Process started by systemd",
			JSON: `{
  "metadata": {
    "version": "1.7.0-dev",
    "event_class": "process_activity",
    "category_uid": 1,
    "class_uid": 1007,
    "uid": "323e4567-e89b-12d3-a456-426614174002"
  },
  "time": "2025-01-15T11:00:00Z",
  "process": {
    "name": "nginx",
    "pid": 1234,
    "uid": "501",
    "cmd_line": "/usr/sbin/nginx -c /etc/nginx/nginx.conf"
  },
  "activity_id": 1,
  "activity_name": "Launch",
  "parent_process": {
    "name": "systemd",
    "pid": 1
  }
}`,
		},
	},
}

// Classes lists the classes that have examples.
func Classes() []string {
	return []string{"authentication", "process_activity"}
}

// List returns the examples for class, keeping only those for scenario when
// it is non-empty. A known class with an unmatched scenario yields an empty
// list.
func List(class, scenario string) ([]Example, error) {
	all, ok := catalog[class]
	if !ok {
		return nil, &noExamplesError{class: class, available: Classes()}
	}
	out := []Example{}
	for _, ex := range all {
		if scenario == "" || ex.Scenario == scenario {
			out = append(out, ex)
		}
	}
	return out, nil
}
