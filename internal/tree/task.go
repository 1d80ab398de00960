package tree

import (
	"fmt"
	"time"
)

// Duration wraps time.Duration so estimates round-trip through TOML and
// JSON as strings like "30m" or "1h30m".
type Duration struct {
	time.Duration
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Negative durations are
// rejected; an estimate cannot be less than no work at all.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", text, err)
	}
	if parsed < 0 {
		return fmt.Errorf("negative duration %q", text)
	}
	d.Duration = parsed
	return nil
}

// Task is one unit of work in a taskset. The task's name is not stored on
// the task itself; it is the key under which the task lives in a Tree.
type Task struct {
	Description string `toml:"description" json:"description"`

	// EstimatedTime is how long the remaining work is expected to take.
	// Absent means zero cost for scheduling purposes.
	EstimatedTime *Duration `toml:"estimated_time,omitempty" json:"estimated_time,omitempty"`

	// DependsOn lists the names of tasks this one depends on, in the order
	// they were written. The names are not guaranteed to exist in the
	// owning Tree; the lint engine reports the ones that don't.
	DependsOn []string `toml:"depends_on" json:"depends_on"`

	// Symbolic marks a milestone with no work of its own. A symbolic task
	// is considered complete once all of its dependencies are complete;
	// Populate rewrites the Complete flag accordingly.
	Symbolic bool `toml:"symbolic" json:"symbolic"`

	Complete bool `toml:"complete" json:"complete"`

	// Due is the deadline, if any, in local time.
	Due *time.Time `toml:"due,omitempty" json:"due,omitempty"`
}

// Estimate returns the task's estimated time, or zero when absent.
func (t *Task) Estimate() time.Duration {
	if t.EstimatedTime == nil {
		return 0
	}
	return t.EstimatedTime.Duration
}
