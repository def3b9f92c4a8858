package voyage

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Field names a scheduler-managed waypoint field. The values double as
// column names in the relational store.
type Field string

const (
	FieldDistance           Field = "distance"
	FieldEngineRPM          Field = "engine_rpm"
	FieldPlannedSpeed       Field = "planned_speed"
	FieldFuelConsumption    Field = "fuel_consumption"
	FieldEstimatedArrival   Field = "estimated_arrival"
	FieldEstimatedDeparture Field = "estimated_departure"
	FieldDerived            Field = "derived_fields"
)

// derivable lists the fields the leg calculator may back-fill, in bit order
var derivable = []Field{FieldDistance, FieldEngineRPM, FieldPlannedSpeed, FieldFuelConsumption}

// FieldSet is a small bit set over the back-fillable fields
type FieldSet uint8

func fieldBit(f Field) FieldSet {
	for i, d := range derivable {
		if d == f {
			return 1 << uint(i)
		}
	}
	return 0
}

// Add returns the set with f included
func (s FieldSet) Add(f Field) FieldSet {
	return s | fieldBit(f)
}

// Has reports whether f is in the set
func (s FieldSet) Has(f Field) bool {
	bit := fieldBit(f)
	return bit != 0 && s&bit != 0
}

// Fields returns the members in a stable order
func (s FieldSet) Fields() []Field {
	var out []Field
	for _, f := range derivable {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// String renders the set as a comma separated list, e.g. "distance,planned_speed"
func (s FieldSet) String() string {
	fields := s.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return strings.Join(names, ",")
}

// ParseFieldSet is the inverse of FieldSet.String
func ParseFieldSet(value string) (FieldSet, error) {
	var s FieldSet
	if strings.TrimSpace(value) == "" {
		return s, nil
	}
	for _, part := range strings.Split(value, ",") {
		f := Field(strings.TrimSpace(part))
		if fieldBit(f) == 0 {
			return 0, fmt.Errorf("unknown derived field %q", part)
		}
		s = s.Add(f)
	}
	return s, nil
}

// WaypointChanges maps each changed field to its new value. Values are
// *float64, *int, *time.Time or FieldSet; a nil pointer clears the field.
type WaypointChanges map[Field]interface{}

// Fields returns the changed fields sorted by name
func (c WaypointChanges) Fields() []Field {
	fields := make([]Field, 0, len(c))
	for f := range c {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	return fields
}

// Apply writes the changes onto w
func (c WaypointChanges) Apply(w *Waypoint) error {
	for field, value := range c {
		switch field {
		case FieldDistance:
			w.Distance = clonePtr(value.(*float64))
		case FieldEngineRPM:
			w.EngineRPM = clonePtr(value.(*int))
		case FieldPlannedSpeed:
			w.PlannedSpeed = clonePtr(value.(*float64))
		case FieldFuelConsumption:
			w.FuelConsumption = clonePtr(value.(*float64))
		case FieldEstimatedArrival:
			w.EstimatedArrival = clonePtr(value.(*time.Time))
		case FieldEstimatedDeparture:
			w.EstimatedDeparture = clonePtr(value.(*time.Time))
		case FieldDerived:
			w.Derived = value.(FieldSet)
		default:
			return fmt.Errorf("unknown waypoint field %q", field)
		}
	}
	return nil
}

// DiffWaypoint returns the scheduler-managed fields that differ between
// before and after. Identity and coordinates are never compared.
func DiffWaypoint(before, after *Waypoint) WaypointChanges {
	changes := WaypointChanges{}

	if !equalPtr(before.Distance, after.Distance) {
		changes[FieldDistance] = clonePtr(after.Distance)
	}
	if !equalPtr(before.EngineRPM, after.EngineRPM) {
		changes[FieldEngineRPM] = clonePtr(after.EngineRPM)
	}
	if !equalPtr(before.PlannedSpeed, after.PlannedSpeed) {
		changes[FieldPlannedSpeed] = clonePtr(after.PlannedSpeed)
	}
	if !equalPtr(before.FuelConsumption, after.FuelConsumption) {
		changes[FieldFuelConsumption] = clonePtr(after.FuelConsumption)
	}
	if !equalTime(before.EstimatedArrival, after.EstimatedArrival) {
		changes[FieldEstimatedArrival] = clonePtr(after.EstimatedArrival)
	}
	if !equalTime(before.EstimatedDeparture, after.EstimatedDeparture) {
		changes[FieldEstimatedDeparture] = clonePtr(after.EstimatedDeparture)
	}
	if before.Derived != after.Derived {
		changes[FieldDerived] = after.Derived
	}

	return changes
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func equalTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
