package sim

import "fmt"

// SimulatorError reports a scheduling request against a node that no
// longer exists (spec §7: "schedule_tick for a position whose node was
// elided"). It is never fatal — callers log it via glog and move on.
type SimulatorError struct {
	Message string
}

func (e *SimulatorError) Error() string { return fmt.Sprintf("sim: %s", e.Message) }
