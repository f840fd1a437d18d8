package models

import "time"

// Bleeding intensity scale, as reported by the user.
const (
	BleedingLight    = 1
	BleedingModerate = 2
	BleedingHeavy    = 3
)

// Menses pain score buckets.
var MensesScores = []int{0, 3, 6, 9}

// CycleLog is one menstrual-cycle entry plus the system-generated predictions.
type CycleLog struct {
	ID                string  `bson:"id" json:"id"`
	UserID            string  `bson:"userId" json:"userId"`
	LogDate           string  `bson:"logDate" json:"logDate"` // "2006-01-02"
	LastPeriodStart   string  `bson:"lastPeriodStart,omitempty" json:"lastPeriodStart,omitempty"`
	CycleLength       int     `bson:"cycleLength" json:"cycleLength"`
	MensesLength      int     `bson:"mensesLength" json:"mensesLength"`
	MeanMensesLength  int     `bson:"meanMensesLength" json:"meanMensesLength"`
	BleedingIntensity int     `bson:"bleedingIntensity" json:"bleedingIntensity"`
	UnusualBleeding   bool    `bson:"unusualBleeding" json:"unusualBleeding"`
	MensesScore       int     `bson:"mensesScore" json:"mensesScore"`
	HeightCm          float64 `bson:"heightCm" json:"heightCm"`
	WeightKg          float64 `bson:"weightKg" json:"weightKg"`
	BMI               float64 `bson:"bmi" json:"bmi"`

	// Predictions (system generated).
	PredictedNextPeriod   string `bson:"predictedNextPeriod,omitempty" json:"predictedNextPeriod,omitempty"`
	EstimatedOvulationDay string `bson:"estimatedOvulationDay,omitempty" json:"estimatedOvulationDay,omitempty"`
	FertileWindowStart    string `bson:"fertileWindowStart,omitempty" json:"fertileWindowStart,omitempty"`
	FertileWindowEnd      string `bson:"fertileWindowEnd,omitempty" json:"fertileWindowEnd,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// CycleLogInput is the user-supplied portion of a cycle entry.
type CycleLogInput struct {
	LastPeriodStart   string  `json:"lastPeriodStart" binding:"required"`
	CycleLength       int     `json:"cycleLength" binding:"required"`
	MensesLength      int     `json:"mensesLength" binding:"required"`
	MeanMensesLength  int     `json:"meanMensesLength" binding:"required"`
	BleedingIntensity int     `json:"bleedingIntensity" binding:"required"`
	UnusualBleeding   bool    `json:"unusualBleeding"`
	MensesScore       int     `json:"mensesScore"`
	HeightCm          float64 `json:"heightCm" binding:"required"`
	WeightKg          float64 `json:"weightKg" binding:"required"`
}

// CyclePrefill echoes the fields carried forward from the latest log so the
// client can pre-populate the entry form.
type CyclePrefill struct {
	HeightCm         float64 `json:"heightCm,omitempty"`
	WeightKg         float64 `json:"weightKg,omitempty"`
	MeanMensesLength int     `json:"meanMensesLength,omitempty"`
	CycleLength      int     `json:"cycleLength,omitempty"`
}
