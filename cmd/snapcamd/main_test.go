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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCycleSensorPowerNoPin(t *testing.T) {
	// No pin configured means nothing to cycle.
	assert.NoError(t, cycleSensorPower(""))
}

func TestCycleSensorPowerUnknownPin(t *testing.T) {
	// A misconfigured pin name must fail with an error rather than
	// dereferencing the missing registry entry.
	err := cycleSensorPower("no-such-pin")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-pin")
}
