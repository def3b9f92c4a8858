package persistence

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// VesselModel represents the vessels table
type VesselModel struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (VesselModel) TableName() string {
	return "vessels"
}

// VoyageModel represents the voyages table. Distance and fuel are the
// running totals written by the scheduler.
type VoyageModel struct {
	ID              int64           `gorm:"column:id;primaryKey;autoIncrement"`
	VesselID        int64           `gorm:"column:vessel_id;not null;index"`
	Vessel          *VesselModel    `gorm:"foreignKey:VesselID;references:ID;constraint:OnDelete:CASCADE"`
	Name            string          `gorm:"column:name"`
	StartDate       *time.Time      `gorm:"column:start_date"`
	Distance        decimal.Decimal `gorm:"column:distance;type:numeric(14,4);not null;default:0"`
	FuelConsumption decimal.Decimal `gorm:"column:fuel_consumption;type:numeric(14,4);not null;default:0"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (VoyageModel) TableName() string {
	return "voyages"
}

// WaypointModel represents the waypoints table. (voyage_id, order_index) is unique.
type WaypointModel struct {
	ID                 int64               `gorm:"column:id;primaryKey;autoIncrement"`
	VoyageID           int64               `gorm:"column:voyage_id;not null;uniqueIndex:idx_waypoints_voyage_order"`
	Voyage             *VoyageModel        `gorm:"foreignKey:VoyageID;references:ID;constraint:OnDelete:CASCADE"`
	OrderIndex         int                 `gorm:"column:order_index;not null;uniqueIndex:idx_waypoints_voyage_order"`
	Name               string              `gorm:"column:name"`
	Latitude           float64             `gorm:"column:latitude;not null"`
	Longitude          float64             `gorm:"column:longitude;not null"`
	Distance           decimal.NullDecimal `gorm:"column:distance;type:numeric(14,4)"`
	EngineRPM          *int                `gorm:"column:engine_rpm"`
	PlannedSpeed       decimal.NullDecimal `gorm:"column:planned_speed;type:numeric(10,4)"`
	FuelConsumption    decimal.NullDecimal `gorm:"column:fuel_consumption;type:numeric(14,4)"`
	EstimatedArrival   *time.Time          `gorm:"column:estimated_arrival"`
	EstimatedDeparture *time.Time          `gorm:"column:estimated_departure"`
	DerivedFields      string              `gorm:"column:derived_fields;not null;default:''"` // comma separated field names
}

func (WaypointModel) TableName() string {
	return "waypoints"
}

// CalibrationSampleModel represents the calibration_samples table; both
// curves share it, told apart by kind
type CalibrationSampleModel struct {
	ID        int64           `gorm:"column:id;primaryKey;autoIncrement"`
	VesselID  int64           `gorm:"column:vessel_id;not null;index:idx_calibration_vessel_kind"`
	Vessel    *VesselModel    `gorm:"foreignKey:VesselID;references:ID;constraint:OnDelete:CASCADE"`
	Kind      string          `gorm:"column:kind;not null;index:idx_calibration_vessel_kind"`
	EngineRPM int             `gorm:"column:engine_rpm;not null"`
	Value     decimal.Decimal `gorm:"column:value;type:numeric(12,4);not null"`
}

func (CalibrationSampleModel) TableName() string {
	return "calibration_samples"
}

// ScheduleRunModel represents the schedule_runs table
type ScheduleRunModel struct {
	ID                   string          `gorm:"column:id;primaryKey"`
	VoyageID             int64           `gorm:"column:voyage_id;not null;index"`
	Mode                 string          `gorm:"column:mode;not null"`
	StartTime            time.Time       `gorm:"column:start_time;not null"`
	TotalDistance        decimal.Decimal `gorm:"column:total_distance;type:numeric(14,4);not null"`
	TotalFuelConsumption decimal.Decimal `gorm:"column:total_fuel_consumption;type:numeric(14,4);not null"`
	TotalDurationHours   decimal.Decimal `gorm:"column:total_duration_hours;type:numeric(12,4);not null"`
	LegCount             int             `gorm:"column:leg_count;not null"`
	ChangedWaypoints     int             `gorm:"column:changed_waypoints;not null"`
	Approximate          bool            `gorm:"column:approximate;not null;default:false"`
	Warnings             datatypes.JSON  `gorm:"column:warnings"`
	CreatedAt            time.Time       `gorm:"column:created_at;not null;index"`
}

func (ScheduleRunModel) TableName() string {
	return "schedule_runs"
}
