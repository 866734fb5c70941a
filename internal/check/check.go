// Package check implements the compliance check engine: a fixed, ordered
// pipeline of checks against host state, each producing a structured
// pass/fail record for the report's test case section.
package check

import (
	"time"

	"github.com/dvmontools/dvaudit/internal/inventory"
)

// Status is the derived outcome of a check.
type Status string

const (
	StatusPass Status = "Pass"
	StatusFail Status = "Fail"
)

// Sentinel actual values substituted when a check's subject cannot be
// observed. They are plain strings so they can never equal a boolean
// expectation.
const (
	AccountNotFound  = "Account not found"
	CheckUnavailable = "Unknown"
)

// Power management states reported by the per-adapter check.
const (
	PowerEnabled  = "Enabled"
	PowerDisabled = "Disabled"
	PowerUnknown  = "Unknown"
)

// Result is one evaluated check as it appears in the report.
type Result struct {
	// TestID is sequential in execution order, formatted TC001, TC002, ...
	TestID          string
	StartTime       time.Time
	EndTime         time.Time
	RuleGroup       string
	Description     string
	Expected        Value
	Actual          Value
	PassingCriteria string
	Status          Status
}

// Observation is the raw product of a check run, before the engine assigns
// an identifier and derives the status. Checks that expand over hardware
// items produce one observation per item and may stamp their own times.
type Observation struct {
	Description     string
	Expected        Value
	Actual          Value
	PassingCriteria string
	Started         time.Time
	Finished        time.Time
}

// Provider is the subset of host inventory access the checks consume.
type Provider interface {
	LocalAccount(name string) (inventory.Account, bool, error)
	GroupMembers(group string) ([]string, error)
	NetworkAdapters() ([]inventory.Adapter, error)
	HardwareConfigKey(instanceID string) (string, bool, error)
	HardwareConfigValue(key, value string) (uint32, bool, error)
}

// Definition is a named check: a rule group label plus a procedure that
// observes host state and yields one or more observations.
type Definition struct {
	RuleGroup string
	Run       func(p Provider) []Observation
}
