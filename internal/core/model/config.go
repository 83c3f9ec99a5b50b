package model

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig indicates a TimerConfig field is outside its allowed range.
var ErrInvalidConfig = errors.New("invalid timer config")

const (
	MinRounds = 1
	MaxRounds = 20

	MinWorkSeconds = 5
	MaxWorkSeconds = 1800

	MinRestSeconds = 0
	MaxRestSeconds = 600

	// SecondsStep is the granularity of work and rest durations.
	SecondsStep = 5

	// PreRollSeconds is the preparation countdown before round one.
	PreRollSeconds = 10
)

// RoundPresets are the one-tap round counts offered on the setup screen.
var RoundPresets = []int{3, 5, 10}

// TimerConfig describes one interval session.
type TimerConfig struct {
	Rounds      int
	WorkSeconds int
	RestSeconds int
}

// DefaultTimerConfig returns the configuration shown on first launch.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		Rounds:      10,
		WorkSeconds: 60,
		RestSeconds: 30,
	}
}

// Validate reports the first field outside its range, wrapped in ErrInvalidConfig.
func (config TimerConfig) Validate() error {
	if config.Rounds < MinRounds || config.Rounds > MaxRounds {
		return fmt.Errorf("%w: rounds %d outside [%d, %d]", ErrInvalidConfig, config.Rounds, MinRounds, MaxRounds)
	}
	if err := validateSeconds("work", config.WorkSeconds, MinWorkSeconds, MaxWorkSeconds); err != nil {
		return err
	}
	return validateSeconds("rest", config.RestSeconds, MinRestSeconds, MaxRestSeconds)
}

// StepRounds moves the round count by delta, clamped to the allowed range.
func (config TimerConfig) StepRounds(delta int) TimerConfig {
	config.Rounds = clamp(config.Rounds+delta, MinRounds, MaxRounds)
	return config
}

// StepWork moves the work duration by delta steps of SecondsStep.
func (config TimerConfig) StepWork(delta int) TimerConfig {
	config.WorkSeconds = clamp(config.WorkSeconds+delta*SecondsStep, MinWorkSeconds, MaxWorkSeconds)
	return config
}

// StepRest moves the rest duration by delta steps of SecondsStep.
func (config TimerConfig) StepRest(delta int) TimerConfig {
	config.RestSeconds = clamp(config.RestSeconds+delta*SecondsStep, MinRestSeconds, MaxRestSeconds)
	return config
}

// WithRounds sets the round count, clamped to the allowed range.
func (config TimerConfig) WithRounds(rounds int) TimerConfig {
	config.Rounds = clamp(rounds, MinRounds, MaxRounds)
	return config
}

// TotalSeconds is the full session length including the pre-roll.
func (config TimerConfig) TotalSeconds() int {
	return PreRollSeconds + config.Rounds*(config.WorkSeconds+config.RestSeconds)
}

func validateSeconds(field string, value, minValue, maxValue int) error {
	if value < minValue || value > maxValue {
		return fmt.Errorf("%w: %s %ds outside [%d, %d]", ErrInvalidConfig, field, value, minValue, maxValue)
	}
	if value%SecondsStep != 0 {
		return fmt.Errorf("%w: %s %ds is not a multiple of %d", ErrInvalidConfig, field, value, SecondsStep)
	}
	return nil
}

func clamp(value, minValue, maxValue int) int {
	if value < minValue {
		return minValue
	}
	if value > maxValue {
		return maxValue
	}
	return value
}
