package server

import "time"

// TicksPerSecond is the default world rate; rooms receive their rate at
// construction so tests can slow it down.
const TicksPerSecond = 60

// run is the room's single goroutine: commands and ticks interleave on one
// select, so a new tick can never begin before the previous one finished.
func (r *Room) run() {
	ticker := time.NewTicker(time.Second / time.Duration(r.tickHz))
	defer ticker.Stop()
	for {
		select {
		case <-r.quit:
			return
		case cmd := <-r.inbox:
			r.handleCommand(cmd)
		case <-ticker.C:
			// A tick and quit can be ready together; never step after stop.
			select {
			case <-r.quit:
				return
			default:
			}
			r.tick()
		}
	}
}
