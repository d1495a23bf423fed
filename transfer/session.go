// snapcam - capture one still image and send it to a paired device
//  Copyright (C) 2026, The Veea Project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package transfer

// Without negotiation the link only guarantees the minimum payload.
const defaultMaxPayload = 20

// PeerSession is what the worker knows about the connected peer. It
// is owned by the worker goroutine; everyone else publishes Events
// instead of touching it.
type PeerSession struct {
	connected  bool
	subscribed map[Channel]bool
	maxPayload uint16
}

func newPeerSession() *PeerSession {
	return &PeerSession{
		subscribed: make(map[Channel]bool),
		maxPayload: defaultMaxPayload,
	}
}

func (s *PeerSession) apply(ev Event) {
	switch ev.Kind {
	case PeerConnected:
		s.connected = true
		if ev.MaxPayload > 0 {
			s.maxPayload = ev.MaxPayload
		}
	case PeerDisconnected:
		// Subscriptions and the negotiated payload ceiling do not
		// survive a disconnect.
		s.connected = false
		s.subscribed = make(map[Channel]bool)
		s.maxPayload = defaultMaxPayload
	case Subscribed:
		s.subscribed[ev.Channel] = true
	case Unsubscribed:
		delete(s.subscribed, ev.Channel)
	case PayloadNegotiated:
		if ev.MaxPayload > 0 {
			s.maxPayload = ev.MaxPayload
		}
	}
}

// Connected reports whether a peer is attached.
func (s *PeerSession) Connected() bool {
	return s.connected
}

// SubscribedTo reports whether the peer enabled notifications on ch.
func (s *PeerSession) SubscribedTo(ch Channel) bool {
	return s.subscribed[ch]
}

// MaxPayload returns the peer's negotiated notification payload
// ceiling in bytes.
func (s *PeerSession) MaxPayload() uint16 {
	return s.maxPayload
}
