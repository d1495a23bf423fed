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

// Package loglimiter suppresses log messages that repeat rapidly,
// such as per-chunk send failures while a peer is out of range.
package loglimiter

import (
	"fmt"
	"log"
	"time"
)

// New returns a LogLimiter which drops a message if the same message
// was logged within interval. When a different message finally gets
// through, the number of drops is reported alongside it.
func New(interval time.Duration) *LogLimiter {
	return &LogLimiter{
		interval: interval,
		nowFunc:  time.Now,
	}
}

type LogLimiter struct {
	interval   time.Duration
	nowFunc    func() time.Time
	lastEntry  string
	lastTime   time.Time
	suppressed int
}

func (limiter *LogLimiter) Printf(format string, v ...interface{}) {
	limiter.Print(fmt.Sprintf(format, v...))
}

func (limiter *LogLimiter) Print(s string) {
	now := limiter.nowFunc()
	if s == limiter.lastEntry && now.Sub(limiter.lastTime) < limiter.interval {
		limiter.suppressed++
		return
	}

	if limiter.suppressed > 0 {
		log.Printf("last message repeated %d more times", limiter.suppressed)
		limiter.suppressed = 0
	}
	log.Print(s)
	limiter.lastEntry = s
	limiter.lastTime = now
}
