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

// Channel identifies a logical notification channel between the
// device and the paired peer.
type Channel uint8

const (
	// MetadataChannel carries the fixed-size announcement sent before
	// the image bytes.
	MetadataChannel Channel = iota

	// DataChannel carries the image bytes themselves, in order, in
	// chunks no larger than the negotiated payload ceiling.
	DataChannel
)

func (ch Channel) String() string {
	switch ch {
	case MetadataChannel:
		return "metadata"
	case DataChannel:
		return "image-data"
	}
	return "unknown"
}

// EventKind classifies a connection state change.
type EventKind uint8

const (
	PeerConnected EventKind = iota
	PeerDisconnected
	Subscribed
	Unsubscribed
	PayloadNegotiated
)

// Event is a connection state change reported by the wireless stack.
// Events arrive from callback context but are only ever applied to
// the session by the transfer worker, at its checkpoints.
type Event struct {
	Kind       EventKind
	Channel    Channel // Subscribed / Unsubscribed
	MaxPayload uint16  // PeerConnected / PayloadNegotiated
}

// CmdStartCapture is the single-byte command a peer writes to the
// capture-trigger channel to start a capture.
const CmdStartCapture byte = 0x01
