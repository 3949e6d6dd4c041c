// Package types provides shared type definitions used across docgen
// packages. This package exists to break import cycles between the store,
// the resolver, and the CLI; types here are foundational data structures
// with no complex dependencies.
package types

import (
	"fmt"
	"strings"
	"time"
)

// EntityClient is the entity_type under which client variables are stored.
const EntityClient = "client"

// Client is one row of the client roster.
type Client struct {
	ID                int64
	FirstName         string
	LastName          string
	Birthday          string
	MatterID          string
	OpposingCounselID int64 // 0 when unassigned
}

// Label builds the display label used in selection lists.
func (c Client) Label() string {
	parts := []string{fmt.Sprintf("ID %d", c.ID)}
	if c.MatterID != "" {
		parts = append(parts, "Matter: "+c.MatterID)
	}
	if name := strings.TrimSpace(c.FirstName + " " + c.LastName); name != "" {
		parts = append(parts, name)
	}
	return strings.Join(parts, " | ")
}

// VariableMeta describes one variable name: its type, grouping, and the
// optional derived expression computed at snapshot-build time.
type VariableMeta struct {
	VarName      string
	VarType      string
	Description  string
	Category     string
	DisplayOrder int
	IsDerived    bool
	// DerivedExpression is required when IsDerived is set.
	DerivedExpression string
}

// ComboVariable joins named component values with a separator.
type ComboVariable struct {
	Name        string
	Components  []string
	Separator   string
	Description string
	Category    string
}

// Compute joins the components' values from the snapshot. A missing
// component contributes an empty string at its position; it is not an
// error.
func (c ComboVariable) Compute(snapshot map[string]string) string {
	sep := c.Separator
	values := make([]string, len(c.Components))
	for i, comp := range c.Components {
		values[i] = snapshot[comp]
	}
	return strings.Join(values, sep)
}

// Attorney is one opposing-counsel record. Records are unique on
// (FirstName, LastName, FirmName).
type Attorney struct {
	ID            int64
	FirstName     string
	LastName      string
	Email         string
	ServiceEmail  string
	AddressStreet string
	AddressCity   string
	AddressState  string
	AddressZip    string
	Phone         string
	Fax           string
	FirmName      string
	BarNumber     string
	Notes         string
}

// FullName joins the attorney's first and last names.
func (a Attorney) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// Label builds the display label used in selection lists.
func (a Attorney) Label() string {
	label := a.FullName()
	if a.FirmName != "" {
		label += " (" + a.FirmName + ")"
	}
	return label
}

// PairStatus is the outcome of one (client, template) generation pair.
type PairStatus int

const (
	PairSucceeded PairStatus = iota
	PairFailed
	PairCancelled
)

func (s PairStatus) String() string {
	switch s {
	case PairSucceeded:
		return "succeeded"
	case PairFailed:
		return "failed"
	case PairCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// PairResult records the outcome of one (client, template) pair in a
// batch run.
type PairResult struct {
	ClientID   int64
	Template   string
	OutputPath string
	Status     PairStatus
	Err        error
	Elapsed    time.Duration
}

// BatchSummary aggregates a batch run. A batch always completes with a
// summary; no pair is silently dropped.
type BatchSummary struct {
	RunID   string
	Results []PairResult
}

// Counts returns the number of succeeded, failed and cancelled pairs.
func (b BatchSummary) Counts() (succeeded, failed, cancelled int) {
	for _, r := range b.Results {
		switch r.Status {
		case PairSucceeded:
			succeeded++
		case PairFailed:
			failed++
		case PairCancelled:
			cancelled++
		}
	}
	return
}
