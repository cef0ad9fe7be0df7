package ws

import (
	"sync"
	"time"

	"physiohub/pkg/proximity"
)

// MapMarker is one therapist's position on the live clinic map.
type MapMarker struct {
	TherapistID uint    `json:"therapist_id"`
	Name        string  `json:"name"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	OnDuty      bool    `json:"on_duty"`
	UpdatedAt   int64   `json:"updated_at"`
}

// MapHub streams therapist positions and proximity alerts to map viewers.
// Therapists push their location over HTTP; the map handler feeds the hub.
type MapHub struct {
	*Hub
	// therapistID -> last known marker
	mu      sync.RWMutex
	markers map[uint]MapMarker
}

func NewMapHub() *MapHub {
	return &MapHub{
		Hub:     NewHub(),
		markers: make(map[uint]MapMarker),
	}
}

// UpdateLocation records a therapist's position and broadcasts the marker to
// every connected map viewer.
func (m *MapHub) UpdateLocation(therapistID uint, name string, lat, lng float64, onDuty bool) {
	marker := MapMarker{
		TherapistID: therapistID,
		Name:        name,
		Lat:         lat,
		Lng:         lng,
		OnDuty:      onDuty,
		UpdatedAt:   time.Now().Unix(),
	}
	m.mu.Lock()
	m.markers[therapistID] = marker
	m.mu.Unlock()
	m.BroadcastAll(map[string]interface{}{"type": "marker", "marker": marker})
}

// BroadcastAlerts pushes freshly computed proximity alerts to all viewers.
func (m *MapHub) BroadcastAlerts(alerts []proximity.Alert) {
	if len(alerts) == 0 {
		return
	}
	m.BroadcastAll(map[string]interface{}{"type": "alerts", "alerts": alerts})
}

// GetMarkers returns current markers for on-duty therapists (for initial map load).
func (m *MapHub) GetMarkers() []MapMarker {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := make([]MapMarker, 0, len(m.markers))
	for _, v := range m.markers {
		if v.OnDuty {
			list = append(list, v)
		}
	}
	return list
}
