// FilePath: internal/hubservice/hubservice.sensordata.go
package hubservice

import (
	"context"
	"time"

	"github.com/luxhub/twilight-hub/internal/errors"
	"github.com/luxhub/twilight-hub/internal/models"
	"github.com/luxhub/twilight-hub/internal/twilight"
	nuts "github.com/vaudience/go-nuts"
)

// EventRelaySwitched fires whenever a persisted decision flips the relay
// relative to the previous event.
const EventRelaySwitched = "relay.switched"

// ReceiveReading runs the twilight decision for a new lux value, appends
// the resulting event and returns the decision for the sensor node to act
// on. An empty log is a valid starting state; defaults apply.
func (s *HubService) ReceiveReading(ctx context.Context, lux float64) (*models.IngestResult, error) {
	prev, err := s.SensorEvents.Latest(ctx)
	if err != nil && !errors.IsNotFound(err) {
		return nil, err
	}

	decision := twilight.Decide(lux, prev)
	event := decision.Event(lux)
	if err := s.SensorEvents.Append(ctx, event); err != nil {
		return nil, err
	}

	if prev == nil || prev.RelayStatus != event.RelayStatus {
		s.events.Emit(EventRelaySwitched, relayStateLabel(event.RelayStatus))
	}

	nuts.L.Infof("[SensorService] %s mode: lux=%.2f threshold=%d relay=%s",
		event.Mode, lux, event.ThresholdLow, relayStateLabel(event.RelayStatus))

	return &models.IngestResult{
		RelayState:       decision.RelayState,
		Mode:             decision.Mode,
		LuxThreshold:     decision.ThresholdLow,
		ManualRelayState: decision.ManualRelayState,
		Event:            event,
	}, nil
}

// LatestEvent returns the newest event or a not-found error on an empty log.
func (s *HubService) LatestEvent(ctx context.Context) (*models.SensorEvent, error) {
	return s.SensorEvents.Latest(ctx)
}

// ListEvents returns one newest-first page of the event log.
func (s *HubService) ListEvents(ctx context.Context, page, limit int) (*models.EventPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	rows, total, err := s.SensorEvents.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &models.EventPage{
		Rows: rows,
		Pagination: models.Pagination{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages,
		},
	}, nil
}

// EventsByRange returns events with start <= created_at <= end, newest first.
func (s *HubService) EventsByRange(ctx context.Context, start, end time.Time) ([]*models.SensorEvent, error) {
	return s.SensorEvents.ByDateRange(ctx, start, end)
}

// Stats aggregates the full event log.
func (s *HubService) Stats(ctx context.Context) (*models.SensorStatsReport, error) {
	return s.SensorEvents.Stats(ctx)
}

// ClearHistory deletes every event except the latest so the current
// configuration survives the clear.
func (s *HubService) ClearHistory(ctx context.Context) (int64, error) {
	return s.Cleanup.ClearSensorHistory(ctx)
}

// CurrentSettings projects the latest event into the effective settings,
// falling back to system defaults on an empty log.
func (s *HubService) CurrentSettings(ctx context.Context) (*models.Settings, error) {
	latest, err := s.SensorEvents.Latest(ctx)
	if err != nil {
		if errors.IsNotFound(err) {
			return &models.Settings{
				Mode:             models.ModeAuto,
				LuxThreshold:     models.DefaultThresholdLow,
				ManualRelayState: false,
			}, nil
		}
		return nil, err
	}

	return &models.Settings{
		Mode:             latest.Mode,
		LuxThreshold:     latest.ThresholdLow,
		ManualRelayState: latest.ManualRelayState,
	}, nil
}

// UpdateSettings appends a new event reflecting a configuration change.
// Unset fields carry forward from the latest event, then system defaults.
// History is never mutated; the new row becomes the current configuration.
func (s *HubService) UpdateSettings(ctx context.Context, update *models.SettingsUpdate) (*models.Settings, error) {
	mode := models.Mode("")
	if update.Mode != nil {
		parsed, ok := models.ParseMode(*update.Mode)
		if !ok {
			return nil, errors.NewValidationError("mode must be auto or manual", nil)
		}
		mode = parsed
	}

	latest, err := s.SensorEvents.Latest(ctx)
	if err != nil && !errors.IsNotFound(err) {
		return nil, err
	}

	event := carriedEvent(latest)
	if mode != "" {
		event.Mode = mode
	}
	if update.Threshold != nil {
		event.ThresholdLow = *update.Threshold
	}
	if update.ManualRelayState != nil {
		event.ManualRelayState = *update.ManualRelayState
	}
	// relay state carries over except under MANUAL, where it must mirror
	// the (possibly just changed) manual state
	if event.Mode == models.ModeManual {
		event.RelayStatus = event.ManualRelayState
	}

	if err := s.SensorEvents.Append(ctx, event); err != nil {
		return nil, err
	}

	if latest != nil && latest.RelayStatus != event.RelayStatus {
		s.events.Emit(EventRelaySwitched, relayStateLabel(event.RelayStatus))
	}

	nuts.L.Infof("[SensorService] Settings updated: mode=%s threshold=%d manual=%v",
		event.Mode, event.ThresholdLow, event.ManualRelayState)

	return &models.Settings{
		Mode:             event.Mode,
		LuxThreshold:     event.ThresholdLow,
		ManualRelayState: event.ManualRelayState,
	}, nil
}

// ControlRelay forces the relay while in MANUAL mode by appending a new
// event. In AUTO mode (including an empty log, where AUTO is the default)
// the request is rejected and nothing is appended.
func (s *HubService) ControlRelay(ctx context.Context, status bool) (*models.SensorEvent, error) {
	latest, err := s.SensorEvents.Latest(ctx)
	if err != nil && !errors.IsNotFound(err) {
		return nil, err
	}

	if latest == nil || latest.Mode == models.ModeAuto {
		return nil, errors.NewConflictError("cannot control relay in AUTO mode, switch to MANUAL first", nil)
	}

	event := carriedEvent(latest)
	event.Mode = models.ModeManual
	event.ManualRelayState = status
	event.RelayStatus = status

	if err := s.SensorEvents.Append(ctx, event); err != nil {
		return nil, err
	}

	if latest.RelayStatus != status {
		s.events.Emit(EventRelaySwitched, relayStateLabel(status))
	}

	nuts.L.Infof("[SensorService] Manual relay control: %s", relayStateLabel(status))
	return event, nil
}

// carriedEvent copies the carry-forward fields of the latest event into a
// fresh unsaved row, or starts from system defaults on an empty log.
func carriedEvent(latest *models.SensorEvent) *models.SensorEvent {
	if latest == nil {
		return &models.SensorEvent{
			Mode:          models.ModeAuto,
			ThresholdLow:  models.DefaultThresholdLow,
			ThresholdHigh: models.DefaultThresholdHigh,
		}
	}
	return &models.SensorEvent{
		Lux:              latest.Lux,
		RelayStatus:      latest.RelayStatus,
		Mode:             latest.Mode,
		ThresholdLow:     latest.ThresholdLow,
		ThresholdHigh:    latest.ThresholdHigh,
		ManualRelayState: latest.ManualRelayState,
	}
}

func relayStateLabel(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}
