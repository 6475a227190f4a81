package time

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
)

// Duration is a json friendly duration.
// It is written as a string, and read either from a string or from nanoseconds.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		var err error
		d.Duration, err = time.ParseDuration(value)
		if err != nil {
			return err
		}
		return nil
	default:
		return errors.New("invalid duration")
	}
}

// Timer measures the stages applied to one data set.
type Timer struct {
	set    string
	stages map[string]time.Duration
	now    func() time.Time
}

// NewTimer creates a new timer for the given data set.
func NewTimer(set string) *Timer {
	return &Timer{
		set:    set,
		stages: make(map[string]time.Duration),
		now:    time.Now,
	}
}

// Start starts measuring the stage, the returned func stops it.
func (t *Timer) Start(stage string) func() time.Duration {
	t0 := t.now()
	return func() time.Duration {
		d := t.now().Sub(t0)
		t.stages[stage] += d
		log.Debug().
			Str("set", t.set).
			Str("stage", stage).
			Dur("elapsed", d).
			Msg("stage completed")
		return d
	}
}

// Elapsed returns the time spent in the stage.
func (t *Timer) Elapsed(stage string) Duration {
	return Duration{t.stages[stage]}
}

// Total returns the time spent in all stages.
func (t *Timer) Total() Duration {
	var total time.Duration
	for _, d := range t.stages {
		total += d
	}
	return Duration{total}
}
