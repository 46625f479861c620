// FilePath: internal/twilight/engine.go

// Package twilight implements the relay decision rule for the light switch.
// The decision is a total function over any finite lux value and the most
// recently persisted event; it never fails and touches no storage.
package twilight

import "github.com/luxhub/twilight-hub/internal/models"

// Decision is the computed outcome for one incoming reading: the relay
// state plus the effective configuration that produced it. The caller
// persists these values verbatim as the next event row.
type Decision struct {
	RelayState       bool
	Mode             models.Mode
	ThresholdLow     int
	ThresholdHigh    int
	ManualRelayState bool
}

// Decide evaluates a new lux reading against the latest stored event.
// prev may be nil for the first-ever reading, in which case the system
// defaults apply (AUTO mode, threshold_low 100, threshold_high 500,
// manual relay off).
//
// In AUTO mode the relay is energized when the reading is strictly below
// threshold_low; a reading equal to the threshold counts as light and
// switches the relay off. In MANUAL mode the relay mirrors the operator's
// manual_relay_state and the reading is ignored. threshold_high is carried
// through unchanged but never inspected; it is reserved for a possible
// hysteresis band.
func Decide(lux float64, prev *models.SensorEvent) Decision {
	d := Decision{
		Mode:             models.ModeAuto,
		ThresholdLow:     models.DefaultThresholdLow,
		ThresholdHigh:    models.DefaultThresholdHigh,
		ManualRelayState: false,
	}
	if prev != nil {
		d.Mode = prev.Mode
		d.ThresholdLow = prev.ThresholdLow
		d.ThresholdHigh = prev.ThresholdHigh
		d.ManualRelayState = prev.ManualRelayState
	}

	if d.Mode == models.ModeManual {
		d.RelayState = d.ManualRelayState
	} else {
		// dark triggers ON; strictly less-than
		d.RelayState = lux < float64(d.ThresholdLow)
	}
	return d
}

// Event materializes the decision as the next event row for a reading.
func (d Decision) Event(lux float64) *models.SensorEvent {
	return &models.SensorEvent{
		Lux:              lux,
		RelayStatus:      d.RelayState,
		Mode:             d.Mode,
		ThresholdLow:     d.ThresholdLow,
		ThresholdHigh:    d.ThresholdHigh,
		ManualRelayState: d.ManualRelayState,
	}
}
