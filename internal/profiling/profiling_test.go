package profiling

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTrackAccumulates(t *testing.T) {
	Reset()
	for range 3 {
		stop := Track("test.op")
		time.Sleep(time.Millisecond)
		stop()
	}
	Track("test.other")()

	ss := Snapshot()
	assert.Equal(t, 3, ss["test.op"].Count)
	assert.GreaterOrEqual(t, ss["test.op"].Total, 3*time.Millisecond)
	assert.GreaterOrEqual(t, ss["test.op"].Mean(), time.Millisecond)
	assert.Equal(t, 1, ss["test.other"].Count)

	top := TopN(1)
	assert.True(t, strings.HasPrefix(top, "test.op:"), top)
	assert.True(t, strings.HasSuffix(top, "/3"), top)
	assert.Len(t, Fields(), 2)

	Reset()
	assert.Empty(t, Snapshot())
	assert.Equal(t, "", TopN(5))
	assert.Equal(t, time.Duration(0), Stat{}.Mean())
}
