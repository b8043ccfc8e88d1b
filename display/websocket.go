package pisano

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	Ps "github.com/maroda/pisano/analysis"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebsocketHandler streams the on-screen analysis to a browser
// frontend, resending on a ticker so modulus changes arrive without
// any client-side polling.
func (v *View) WebsocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			pd := v.GetPeriodDataWS()
			if pd == nil {
				continue
			}
			if err := conn.WriteJSON(pd); err != nil {
				return // Connection closed
			}
		}
	}
}

// GetPeriodDataWS converts the current analysis for the wire.
func (v *View) GetPeriodDataWS() *PeriodData {
	a := v.Analysis()
	if a == nil {
		return nil
	}

	return &PeriodData{
		Modulus:   a.Modulus,
		Length:    a.Length,
		Sections:  a.Sections,
		Mirrors:   a.Mirrors,
		Signature: Ps.TimeSignature(a.Length, Ps.MaxBeatsPerBar),
		Title:     Ps.Title(a.Modulus),
		Subtitle:  Ps.SubtitleFor(a),
		Sequence:  a.Sequence,
	}
}
