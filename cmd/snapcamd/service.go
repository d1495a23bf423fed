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

package main

import (
	"errors"
	"fmt"

	"github.com/godbus/dbus"
	"github.com/godbus/dbus/introspect"

	"github.com/veea-project/snapcam/transfer"
)

const (
	dbusName = "io.veea.snapcam"
	dbusPath = "/io/veea/snapcam"
)

// service is the local command surface. The wireless stack bridge
// reports connection state changes through it and peers on the system
// bus can trigger captures the same way a paired device would.
type service struct {
	controller *transfer.Controller
}

func startService(conn *dbus.Conn, controller *transfer.Controller) error {
	reply, err := conn.RequestName(dbusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return err
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return errors.New("name already taken")
	}

	s := &service{controller: controller}
	conn.Export(s, dbusPath, dbusName)
	conn.Export(genIntrospectable(s), dbusPath, "org.freedesktop.DBus.Introspectable")
	return nil
}

func genIntrospectable(v interface{}) introspect.Introspectable {
	node := &introspect.Node{
		Interfaces: []introspect.Interface{{
			Name:    dbusName,
			Methods: introspect.Methods(v),
		}},
	}
	return introspect.NewIntrospectable(node)
}

// TriggerCapture starts a capture job. It reports false when a job is
// already in flight or captures are paused.
func (s *service) TriggerCapture() (bool, *dbus.Error) {
	return s.controller.Trigger(), nil
}

// Status reports the job state, the most recent failure reason and
// the image bytes sent so far.
func (s *service) Status() (string, string, uint32, *dbus.Error) {
	state, reason, sent := s.controller.Status()
	return state.String(), reason.String(), sent, nil
}

// Pause makes capture triggers fail fast until Resume.
func (s *service) Pause() *dbus.Error {
	s.controller.Pause()
	return nil
}

func (s *service) Resume() *dbus.Error {
	s.controller.Resume()
	return nil
}

// PeerConnected reports a new peer connection with its initial
// notification payload ceiling.
func (s *service) PeerConnected(maxPayload uint16) *dbus.Error {
	s.controller.PublishEvent(transfer.Event{
		Kind:       transfer.PeerConnected,
		MaxPayload: maxPayload,
	})
	return nil
}

func (s *service) PeerDisconnected() *dbus.Error {
	s.controller.PublishEvent(transfer.Event{Kind: transfer.PeerDisconnected})
	return nil
}

// Subscribe enables notifications on "metadata" or "image-data".
func (s *service) Subscribe(channel string) *dbus.Error {
	ch, err := parseChannel(channel)
	if err != nil {
		return makeDbusError("Subscribe", err)
	}
	s.controller.PublishEvent(transfer.Event{
		Kind:    transfer.Subscribed,
		Channel: ch,
	})
	return nil
}

func (s *service) Unsubscribe(channel string) *dbus.Error {
	ch, err := parseChannel(channel)
	if err != nil {
		return makeDbusError("Unsubscribe", err)
	}
	s.controller.PublishEvent(transfer.Event{
		Kind:    transfer.Unsubscribed,
		Channel: ch,
	})
	return nil
}

// SetMaxPayload reports a renegotiated notification payload ceiling.
func (s *service) SetMaxPayload(maxPayload uint16) *dbus.Error {
	s.controller.PublishEvent(transfer.Event{
		Kind:       transfer.PayloadNegotiated,
		MaxPayload: maxPayload,
	})
	return nil
}

// WriteCommand forwards a peer write on the capture-trigger channel.
func (s *service) WriteCommand(data []byte) (bool, *dbus.Error) {
	return s.controller.HandleCommand(data), nil
}

func parseChannel(name string) (transfer.Channel, error) {
	switch name {
	case transfer.MetadataChannel.String():
		return transfer.MetadataChannel, nil
	case transfer.DataChannel.String():
		return transfer.DataChannel, nil
	}
	return 0, fmt.Errorf("unknown channel %q", name)
}

func makeDbusError(name string, err error) *dbus.Error {
	return &dbus.Error{
		Name: dbusName + "." + name,
		Body: []interface{}{err.Error()},
	}
}

// dbusNotifier pushes metadata and image chunks out as bus signals.
// The wireless stack bridge relays each signal to the corresponding
// notification channel on the link.
type dbusNotifier struct {
	conn *dbus.Conn
}

func (n *dbusNotifier) NotifyMetadata(rec transfer.MetadataRecord) error {
	return n.conn.Emit(dbusPath, dbusName+".Metadata", rec[:])
}

func (n *dbusNotifier) NotifyData(chunk []byte) error {
	return n.conn.Emit(dbusPath, dbusName+".ImageData", chunk)
}
