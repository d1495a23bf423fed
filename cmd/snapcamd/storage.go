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
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/veea-project/snapcam/encoder"
)

const snapshotTempExt = ".temp"

// fileStore writes each image under a temp name and renames it into
// place once complete, so other tools never see a partial snapshot.
type fileStore struct {
	dir string
	now func() time.Time
}

func newFileStore(dir string) *fileStore {
	return &fileStore{
		dir: dir,
		now: time.Now,
	}
}

func (fs *fileStore) Save(image []byte, format encoder.Format) (string, error) {
	name := fmt.Sprintf("snapshot_%s.%s",
		fs.now().Format("20060102.150405.000"), format)
	finalName := filepath.Join(fs.dir, name)
	tempName := finalName + snapshotTempExt

	f, err := os.Create(tempName)
	if err != nil {
		return "", err
	}
	w := bufio.NewWriterSize(f, 64*1024)
	if _, err := w.Write(image); err != nil {
		f.Close()
		os.Remove(tempName)
		return "", err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		os.Remove(tempName)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(tempName)
		return "", err
	}

	if err := os.Rename(tempName, finalName); err != nil {
		os.Remove(tempName)
		return "", err
	}
	return finalName, nil
}

// deleteTempFiles cleans up snapshots interrupted by a crash or power
// loss before they were renamed into place.
func deleteTempFiles(dir string) error {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+snapshotTempExt))
	if err != nil {
		return err
	}
	for _, name := range matches {
		if err := os.Remove(name); err != nil {
			return err
		}
	}
	return nil
}
