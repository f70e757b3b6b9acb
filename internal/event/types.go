// internal/event/types.go
package event

const (
	StopRequested     EventType = "StopRequested"     // окно закрыто или нажата клавиша выхода
	SimulationStopped EventType = "SimulationStopped" // симуляция перешла в Stopped
)
