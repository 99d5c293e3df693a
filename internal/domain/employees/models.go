package employees

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("employee not found")

// Employee is the master-data record behind every ledger entry. The
// national id number and birth date stay strings; both arrive from
// imports of varying quality and downstream consumers parse leniently.
type Employee struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	IDNumber    string    `json:"idNumber"`
	DateOfBirth string    `json:"dateOfBirth,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
