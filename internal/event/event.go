// internal/event/event.go
package event

// EventType — тип события
type EventType string

// Event — событие цикла. Data зависит от типа: для StopRequested — источник
// сигнала ("window", "terminal"), для SimulationStopped — номер последнего кадра.
type Event struct {
	Type EventType
	Data interface{}
}

// Listener — подписчик на события
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc позволяет подписать обычную функцию
type ListenerFunc func(event Event)

func (f ListenerFunc) OnEvent(event Event) {
	f(event)
}

// Dispatcher рассылает события подписчикам синхронно, в порядке подписки.
// Subscribe и Dispatch вызываются только из горутины игрового цикла:
// терминальный ввод сначала проходит через канал и Renderer.Poll.
type Dispatcher struct {
	listeners map[EventType][]Listener
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]Listener),
	}
}

func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) {
	d.listeners[eventType] = append(d.listeners[eventType], listener)
}

// Dispatch вызывает подписчиков до возврата; подписчик может сам
// отправить следующее событие (Simulation.Stop шлёт SimulationStopped)
func (d *Dispatcher) Dispatch(event Event) {
	for _, listener := range d.listeners[event.Type] {
		listener.OnEvent(event)
	}
}
