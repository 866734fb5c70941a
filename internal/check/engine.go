package check

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Engine executes an ordered set of check definitions. The run as a whole
// never fails: a check that cannot observe its subject contributes a
// degraded record instead of aborting the remaining checks.
type Engine struct {
	defs []Definition
	log  *logrus.Logger
}

// NewEngine creates an Engine over the given definitions, executed strictly
// in slice order.
func NewEngine(defs []Definition, log *logrus.Logger) *Engine {
	return &Engine{defs: defs, log: log}
}

// Run evaluates every definition against the provider and returns the
// results in execution order. Test IDs are assigned once per produced
// record, including once per expanded sub-check, with no gaps or repeats.
func (e *Engine) Run(p Provider) []Result {
	var results []Result
	seq := 0

	for _, def := range e.defs {
		started := time.Now()
		observations := e.observe(def, p)
		finished := time.Now()

		for _, obs := range observations {
			if obs.Started.IsZero() {
				obs.Started = started
			}
			if obs.Finished.IsZero() {
				obs.Finished = finished
			}

			seq++
			status := StatusFail
			if obs.Actual.Equal(obs.Expected) {
				status = StatusPass
			}
			result := Result{
				TestID:          fmt.Sprintf("TC%03d", seq),
				StartTime:       obs.Started,
				EndTime:         obs.Finished,
				RuleGroup:       def.RuleGroup,
				Description:     obs.Description,
				Expected:        obs.Expected,
				Actual:          obs.Actual,
				PassingCriteria: obs.PassingCriteria,
				Status:          status,
			}
			results = append(results, result)

			e.log.WithFields(logrus.Fields{
				"test":   result.TestID,
				"group":  result.RuleGroup,
				"status": result.Status,
			}).Debug("check evaluated")
		}
	}
	return results
}

// observe runs one definition, converting a panic inside the check into a
// single degraded observation so one malfunctioning check never takes down
// the run.
func (e *Engine) observe(def Definition, p Provider) (obs []Observation) {
	defer func() {
		if r := recover(); r != nil {
			e.log.WithFields(logrus.Fields{
				"group": def.RuleGroup,
				"panic": r,
			}).Error("check panicked")
			obs = []Observation{{
				Description:     fmt.Sprintf("%s (check could not be evaluated)", def.RuleGroup),
				Expected:        StringValue("Evaluated"),
				Actual:          StringValue(CheckUnavailable),
				PassingCriteria: "Evaluated",
			}}
		}
	}()
	return def.Run(p)
}
