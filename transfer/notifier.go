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

import "encoding/binary"

// Notifier pushes notifications to the connected peer. The wireless
// stack implements it; a failed notify means the message did not
// reach the peer. NotifyData is never called with a chunk larger
// than the negotiated payload ceiling.
type Notifier interface {
	NotifyMetadata(rec MetadataRecord) error
	NotifyData(chunk []byte) error
}

// MetadataRecord is the fixed 12-byte announcement sent before the
// image bytes: width(2 LE) | height(2 LE) | size(4 LE) | tag(4 ascii).
// A receiver accumulates image-data bytes until it has Size() of
// them; there are no chunk indices, ordering comes from the channel.
type MetadataRecord [12]byte

func NewMetadataRecord(width, height int, size uint32, tag [4]byte) MetadataRecord {
	var rec MetadataRecord
	binary.LittleEndian.PutUint16(rec[0:], uint16(width))
	binary.LittleEndian.PutUint16(rec[2:], uint16(height))
	binary.LittleEndian.PutUint32(rec[4:], size)
	copy(rec[8:], tag[:])
	return rec
}

func (rec MetadataRecord) Width() int {
	return int(binary.LittleEndian.Uint16(rec[0:]))
}

func (rec MetadataRecord) Height() int {
	return int(binary.LittleEndian.Uint16(rec[2:]))
}

func (rec MetadataRecord) Size() uint32 {
	return binary.LittleEndian.Uint32(rec[4:])
}

func (rec MetadataRecord) Tag() [4]byte {
	var tag [4]byte
	copy(tag[:], rec[8:])
	return tag
}
