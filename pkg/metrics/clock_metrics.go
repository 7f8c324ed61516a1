package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ClockMetrics holds the time clock domain instruments.
type ClockMetrics struct {
	ClockInsTotal           metric.Int64Counter
	ClockOutsTotal          metric.Int64Counter
	GeofenceViolationsTotal metric.Int64Counter
	LocationFailuresTotal   metric.Int64Counter
	OpenSessions            metric.Int64UpDownCounter
	SessionDuration         metric.Float64Histogram
	TasksCompletedTotal     metric.Int64Counter
	RemindersSentTotal      metric.Int64Counter
}

var (
	clockMetrics *ClockMetrics
	meter        = otel.Meter("onshift")
)

// InitMetrics creates the domain instruments against the global meter.
func InitMetrics() error {
	var err error

	m := &ClockMetrics{}

	m.ClockInsTotal, err = meter.Int64Counter(
		"clock_ins_total",
		metric.WithDescription("Total number of successful clock-ins"),
		metric.WithUnit("{clock_in}"),
	)
	if err != nil {
		return err
	}

	m.ClockOutsTotal, err = meter.Int64Counter(
		"clock_outs_total",
		metric.WithDescription("Total number of clock-outs"),
		metric.WithUnit("{clock_out}"),
	)
	if err != nil {
		return err
	}

	m.GeofenceViolationsTotal, err = meter.Int64Counter(
		"geofence_violations_total",
		metric.WithDescription("Clock-in attempts rejected outside the geofence"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return err
	}

	m.LocationFailuresTotal, err = meter.Int64Counter(
		"location_failures_total",
		metric.WithDescription("Clock-in attempts that failed to obtain a position"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return err
	}

	m.OpenSessions, err = meter.Int64UpDownCounter(
		"open_sessions",
		metric.WithDescription("Number of currently open work sessions"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return err
	}

	m.SessionDuration, err = meter.Float64Histogram(
		"session_duration_seconds",
		metric.WithDescription("Length of banked work sessions in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	m.TasksCompletedTotal, err = meter.Int64Counter(
		"tasks_completed_total",
		metric.WithDescription("Assigned tasks marked completed"),
		metric.WithUnit("{task}"),
	)
	if err != nil {
		return err
	}

	m.RemindersSentTotal, err = meter.Int64Counter(
		"reminders_sent_total",
		metric.WithDescription("Missed clock-out reminder SMS sent"),
		metric.WithUnit("{sms}"),
	)
	if err != nil {
		return err
	}

	clockMetrics = m
	return nil
}

func GetMetrics() *ClockMetrics {
	return clockMetrics
}

// Nil-safe package-level recorders, callable before InitMetrics runs.

func RecordClockIn(ctx context.Context) {
	if m := GetMetrics(); m != nil {
		m.ClockInsTotal.Add(ctx, 1)
		m.OpenSessions.Add(ctx, 1)
	}
}

func RecordClockOut(ctx context.Context, durationSeconds float64) {
	if m := GetMetrics(); m != nil {
		m.ClockOutsTotal.Add(ctx, 1)
		m.OpenSessions.Add(ctx, -1)
		m.SessionDuration.Record(ctx, durationSeconds)
	}
}

func RecordGeofenceViolation(ctx context.Context, distanceMeters float64) {
	if m := GetMetrics(); m != nil {
		m.GeofenceViolationsTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.Float64("distance_meters", distanceMeters),
		))
	}
}

func RecordLocationFailure(ctx context.Context, reason string) {
	if m := GetMetrics(); m != nil {
		m.LocationFailuresTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String("reason", reason),
		))
	}
}

func RecordTaskCompleted(ctx context.Context) {
	if m := GetMetrics(); m != nil {
		m.TasksCompletedTotal.Add(ctx, 1)
	}
}

func RecordReminderSent(ctx context.Context, provider string) {
	if m := GetMetrics(); m != nil {
		m.RemindersSentTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String("provider", provider),
		))
	}
}
