package observability

import (
	"testing"
	"time"

	"github.com/danmuck/serframe/internal/testutil/testlog"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	testlog.Start(t)

	RegisterMetrics()
	RegisterMetrics()

	RecordHTTPRequest("bridge-a", "GET", "/status", 200, 12*time.Millisecond)
	RecordFrameReceived("bridge-a", "serial:/dev/ttyUSB0")
	RecordFrameTransmitted("bridge-a", "serial:/dev/ttyUSB0")
	RecordBytesSkipped("bridge-a", "serial:/dev/ttyUSB0", 7)
	RecordReceiveError("bridge-a", "serial:/dev/ttyUSB0", "crc")
}
