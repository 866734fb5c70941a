// Package orchestrator coordinates the gather → check → render pipeline.
package orchestrator

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dvmontools/dvaudit/internal/check"
	"github.com/dvmontools/dvaudit/internal/collector"
	"github.com/dvmontools/dvaudit/internal/config"
	"github.com/dvmontools/dvaudit/internal/inventory"
	"github.com/dvmontools/dvaudit/internal/report"
)

const reportTitle = "DeltaV Workstation Audit Report"

// Options holds CLI overrides for the orchestrator.
type Options struct {
	// OutputDir overrides the configured report directory when non-empty.
	OutputDir string
	// Version is the build version stamped into the report header.
	Version string
}

// Orchestrator runs the audit pipeline: gather inventory sections, evaluate
// the compliance checks, render everything into the report file.
type Orchestrator struct {
	cfg      *config.Config
	opts     Options
	log      *logrus.Logger
	provider inventory.Provider
}

// New creates an Orchestrator backed by the live system provider.
func New(cfg *config.Config, opts Options, log *logrus.Logger) *Orchestrator {
	return &Orchestrator{
		cfg:      cfg,
		opts:     opts,
		log:      log,
		provider: inventory.NewSystemProvider(log),
	}
}

// SetProvider overrides the host inventory provider (used in tests).
func (o *Orchestrator) SetProvider(p inventory.Provider) {
	o.provider = p
}

// Run executes the full audit and writes the report. The audit itself is
// best-effort; only a failure to write the report file is fatal.
func (o *Orchestrator) Run() error {
	start := time.Now()
	hostname, _ := os.Hostname()

	o.log.WithField("host", hostname).Info("starting audit")

	sections := collector.New(o.provider, o.log).Gather()

	engine := check.NewEngine(check.Catalogue(check.Settings{
		AdminAccount:   o.cfg.Checks.AdminAccount,
		AdminGroup:     o.cfg.Checks.AdminGroup,
		RequiredMember: o.cfg.Checks.RequiredMember,
		FoldMemberCase: o.cfg.Checks.IgnoreMemberCase,
	}), o.log)
	results := engine.Run(o.provider)
	sections = append(sections, report.CheckSection(results))

	dir := o.opts.OutputDir
	if dir == "" {
		dir = o.cfg.Output.Dir
	}
	path := filepath.Join(dir, o.cfg.Output.File)

	hdr := report.Header{
		Title:       reportTitle,
		Hostname:    hostname,
		Version:     o.opts.Version,
		GeneratedAt: time.Now(),
	}
	if err := report.WriteFile(path, hdr, sections); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	passed := 0
	for _, r := range results {
		if r.Status == check.StatusPass {
			passed++
		}
	}
	o.log.WithFields(logrus.Fields{
		"report":   path,
		"checks":   len(results),
		"passed":   passed,
		"failed":   len(results) - passed,
		"duration": time.Since(start).Round(time.Millisecond),
	}).Info("audit complete")

	return nil
}
