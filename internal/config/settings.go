// internal/config/settings.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrInvalidSettings оборачивает все ошибки валидации настроек
var ErrInvalidSettings = errors.New("invalid settings")

// Settings — параметры запуска. После сборки симуляции не меняются.
type Settings struct {
	Waypoints    [][2]float64 `json:"waypoints"`
	Trucks       int          `json:"trucks"`
	SpeedMin     float64      `json:"speed_min"`
	SpeedMax     float64      `json:"speed_max"`
	LaneOffsets  []float64    `json:"lane_offsets"`
	StartSpacing float64      `json:"start_spacing"`
	TPS          int          `json:"tps"`
	Seed         int64        `json:"seed"`
	Parallel     bool         `json:"parallel"`
}

// DefaultSettings — стандартная гонка пяти грузовиков
func DefaultSettings() *Settings {
	waypoints := make([][2]float64, len(DefaultTrackPoints))
	copy(waypoints, DefaultTrackPoints)
	return &Settings{
		Waypoints:    waypoints,
		Trucks:       DefaultTruckCount,
		SpeedMin:     DefaultSpeedMin,
		SpeedMax:     DefaultSpeedMax,
		LaneOffsets:  DefaultLaneOffsets(),
		StartSpacing: DefaultStartSpacing,
		TPS:          DefaultTPS,
	}
}

// LoadSettings накладывает JSON-файл поверх значений по умолчанию.
// Отсутствующие в файле поля сохраняют значения по умолчанию.
func LoadSettings(path string) (*Settings, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	s := DefaultSettings()
	if err := json.Unmarshal(file, s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	fmt.Printf("Loaded settings from %s: %d trucks, %d waypoints\n", path, s.Trucks, len(s.Waypoints))
	return s, nil
}

// Validate проверяет настройки; сама трасса проверяется в track.Build
func (s *Settings) Validate() error {
	switch {
	case s.Trucks < 1:
		return fmt.Errorf("%w: trucks must be positive, got %d", ErrInvalidSettings, s.Trucks)
	case s.SpeedMin > s.SpeedMax:
		return fmt.Errorf("%w: speed_min %.2f exceeds speed_max %.2f", ErrInvalidSettings, s.SpeedMin, s.SpeedMax)
	case len(s.LaneOffsets) == 0:
		return fmt.Errorf("%w: lane_offsets must not be empty", ErrInvalidSettings)
	case s.StartSpacing < 0:
		return fmt.Errorf("%w: start_spacing must not be negative", ErrInvalidSettings)
	case s.TPS < 1:
		return fmt.Errorf("%w: tps must be positive, got %d", ErrInvalidSettings, s.TPS)
	}
	return nil
}
