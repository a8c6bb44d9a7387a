package viewer

// EventType identifies viewer events.
type EventType int

const (
	// EventRepaint asks the host to repaint. Data is nil.
	EventRepaint EventType = iota
	// EventCropChanged carries the new crop.Crop.
	EventCropChanged
	// EventImageChanged carries the new image size as geometry.Size.
	EventImageChanged
)

func (e EventType) String() string {
	switch e {
	case EventRepaint:
		return "Repaint"
	case EventCropChanged:
		return "CropChanged"
	case EventImageChanged:
		return "ImageChanged"
	default:
		return "Unknown"
	}
}

// Listener is called when an event occurs.
type Listener func(data interface{})

type event struct {
	typ  EventType
	data interface{}
}

// On registers a listener for the specified event type.
func (v *Viewer) On(typ EventType, listener Listener) {
	v.lmu.Lock()
	defer v.lmu.Unlock()
	v.listeners[typ] = append(v.listeners[typ], listener)
}

// emit runs listeners. It must be called without v.mu held so listeners can
// call back into the viewer.
func (v *Viewer) emit(events ...event) {
	for _, e := range events {
		v.lmu.RLock()
		listeners := v.listeners[e.typ]
		v.lmu.RUnlock()

		for _, listener := range listeners {
			listener(e.data)
		}
	}
}
