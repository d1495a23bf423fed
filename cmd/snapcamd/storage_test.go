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
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veea-project/snapcam/encoder"
)

func TestSaveSnapshot(t *testing.T) {
	dir, err := ioutil.TempDir("", "snapcam")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	store := newFileStore(dir)
	store.now = func() time.Time {
		return time.Date(2026, 3, 14, 9, 26, 53, 589e6, time.UTC)
	}

	name, err := store.Save([]byte("image bytes"), encoder.PNG)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "snapshot_20260314.092653.589.png"), name)

	content, err := ioutil.ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, "image bytes", string(content))

	// Nothing half-written left behind.
	matches, _ := filepath.Glob(filepath.Join(dir, "*"+snapshotTempExt))
	assert.Empty(t, matches)
}

func TestSaveToMissingDir(t *testing.T) {
	store := newFileStore("/does/not/exist")
	_, err := store.Save([]byte("image bytes"), encoder.BMP)
	assert.Error(t, err)
}

func TestDeleteTempFiles(t *testing.T) {
	dir, err := ioutil.TempDir("", "snapcam")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	temp := filepath.Join(dir, "snapshot_x.png"+snapshotTempExt)
	keep := filepath.Join(dir, "snapshot_x.png")
	require.NoError(t, ioutil.WriteFile(temp, []byte("partial"), 0644))
	require.NoError(t, ioutil.WriteFile(keep, []byte("complete"), 0644))

	require.NoError(t, deleteTempFiles(dir))

	_, err = os.Stat(temp)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(keep)
	assert.NoError(t, err)
}
