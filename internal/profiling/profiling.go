package profiling

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Lightweight named timers for generation and meshing passes.

// Stat is the accumulated time and call count for one name.
type Stat struct {
	Total time.Duration
	Count int
}

// Mean is the average duration per call.
func (s Stat) Mean() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

var (
	mu     sync.Mutex
	totals = make(map[string]Stat)
)

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer profiling.Track("world.GenerateChunk")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		s := totals[name]
		s.Total += d
		s.Count++
		totals[name] = s
		mu.Unlock()
	}
}

// Reset clears all totals. Call at the start of a pass.
func Reset() {
	mu.Lock()
	clear(totals)
	mu.Unlock()
}

// Snapshot returns a copy of the current totals.
func Snapshot() map[string]Stat {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]Stat, len(totals))
	for k, v := range totals {
		out[k] = v
	}
	return out
}

type entry struct {
	name string
	Stat
}

func sorted() []entry {
	ss := Snapshot()
	list := make([]entry, 0, len(ss))
	for k, v := range ss {
		list = append(list, entry{name: k, Stat: v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Total == list[j].Total {
			return list[i].name < list[j].name
		}
		return list[i].Total > list[j].Total
	})
	return list
}

// TopN formats the n largest totals.
// Example: "world.GenerateChunk:42.1ms/16, meshing.BuildOctreeMesh:9.3ms/16"
func TopN(n int) string {
	list := sorted()
	n = min(n, len(list))
	parts := make([]string, 0, n)
	for _, e := range list[:n] {
		ms := float64(e.Total.Microseconds()) / 1000.0
		parts = append(parts, e.name+":"+strconv.FormatFloat(ms, 'f', 1, 64)+"ms/"+strconv.Itoa(e.Count))
	}
	return strings.Join(parts, ", ")
}

// Fields renders every total as a zap field, largest first.
func Fields() []zap.Field {
	list := sorted()
	fields := make([]zap.Field, 0, len(list))
	for _, e := range list {
		fields = append(fields, zap.Duration(e.name, e.Total))
	}
	return fields
}
