// FilePath: internal/models/models.sensor_event.go
package models

import (
	"strings"
	"time"
)

// Mode selects how the relay decision is made for incoming readings.
type Mode string

const (
	// ModeAuto computes the relay state from lux vs threshold_low.
	ModeAuto Mode = "auto"
	// ModeManual mirrors the operator-requested manual_relay_state.
	ModeManual Mode = "manual"
)

// ParseMode normalizes a mode string. The empty string is not a valid mode.
func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.ToLower(s)) {
	case ModeAuto:
		return ModeAuto, true
	case ModeManual:
		return ModeManual, true
	}
	return "", false
}

// Default configuration used when the event log is empty.
const (
	DefaultThresholdLow  = 100
	DefaultThresholdHigh = 500
)

// SensorEvent is one immutable row of the append-only event log: a lux
// reading, the configuration in effect at that moment, and the relay
// decision computed for it. The most recent row doubles as the current
// settings for the next decision.
type SensorEvent struct {
	ID               int64     `json:"id" db:"id"`
	Lux              float64   `json:"lux" db:"lux"`
	RelayStatus      bool      `json:"relay_status" db:"relay_status"`
	Mode             Mode      `json:"mode" db:"mode"`
	ThresholdLow     int       `json:"threshold_low" db:"threshold_low"`
	ThresholdHigh    int       `json:"threshold_high" db:"threshold_high"`
	ManualRelayState bool      `json:"manual_relay_state" db:"manual_relay_state"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// Settings is the effective configuration projection of the latest event.
type Settings struct {
	Mode             Mode `json:"mode"`
	LuxThreshold     int  `json:"lux_threshold"`
	ManualRelayState bool `json:"manual_relay_state"`
}

// SettingsUpdate carries a partial settings change. Nil fields are carried
// forward from the latest event (or defaulted on an empty log).
type SettingsUpdate struct {
	Mode             *string `json:"mode"`
	Threshold        *int    `json:"threshold"`
	ManualRelayState *bool   `json:"manual_relay_state"`
}

// IngestResult is returned to the sensor node after a reading is recorded.
// The firmware reads RelayState from the response body and drives the relay.
type IngestResult struct {
	RelayState       bool         `json:"relay_state"`
	Mode             Mode         `json:"mode"`
	LuxThreshold     int          `json:"lux_threshold"`
	ManualRelayState bool         `json:"manual_relay_state"`
	Event            *SensorEvent `json:"data"`
}

// SensorStats aggregates the full event log.
type SensorStats struct {
	AvgLux       float64 `json:"avgLux" db:"avg_lux"`
	MaxLux       float64 `json:"maxLux" db:"max_lux"`
	MinLux       float64 `json:"minLux" db:"min_lux"`
	TotalRecords int64   `json:"totalRecords" db:"total_records"`
}

// RelayCount is one bucket of the relay_status distribution.
type RelayCount struct {
	RelayStatus bool  `json:"relay_status" db:"relay_status"`
	Count       int64 `json:"count" db:"count"`
}

// ModeCount is one bucket of the mode distribution.
type ModeCount struct {
	Mode  Mode  `json:"mode" db:"mode"`
	Count int64 `json:"count" db:"count"`
}

// SensorStatsReport bundles the aggregate stats with both distributions.
type SensorStatsReport struct {
	Stats             *SensorStats `json:"stats"`
	RelayDistribution []RelayCount `json:"relayDistribution"`
	ModeDistribution  []ModeCount  `json:"modeDistribution"`
}
