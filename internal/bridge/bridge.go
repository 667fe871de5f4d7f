package bridge

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/serframe/internal/config"
	"github.com/danmuck/serframe/internal/observability"
	"github.com/danmuck/serframe/link"
	"github.com/danmuck/serframe/protocol"
	"github.com/danmuck/serframe/transport"
)

// pollInterval is the idle backoff between polls when the link had
// nothing for us.
const pollInterval = 2 * time.Millisecond

// Bridge owns one link end to end: it pumps the endpoint, polls the
// receiver, emits optional heartbeats, and serves link-quality status
// over HTTP. All framing work happens on the Run goroutine; the status
// handlers only read atomics.
type Bridge struct {
	cfg    config.BridgeConfig
	link   link.Link
	rx     *transport.Receiver
	tx     *transport.Transmitter
	router *gin.Engine

	started      time.Time
	framesRx     atomic.Uint64
	framesTx     atomic.Uint64
	rxErrors     atomic.Uint64
	bytesSkipped atomic.Uint32
	seenSkipped  uint32
}

func New(cfg config.BridgeConfig, lnk link.Link) *Bridge {
	observability.RegisterMetrics()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(log.Logger))
	r.Use(observability.RequestMetricsMiddleware(cfg.Name))

	b := &Bridge{
		cfg:     cfg,
		link:    lnk,
		rx:      transport.NewReceiver(lnk.RxQueue(), cfg.Capacity),
		tx:      transport.NewTransmitter(lnk.TxQueue()),
		router:  r,
		started: time.Now(),
	}
	r.GET("/status", b.status)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return b
}

// Run polls until ctx is cancelled or the link faults.
func (b *Bridge) Run(ctx context.Context) error {
	srv := &http.Server{Addr: b.cfg.StatusAddr, Handler: b.router}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Str("addr", b.cfg.StatusAddr).Msg("status server stopped")
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		_ = b.link.Close()
	}()

	var heartbeat <-chan time.Time
	if b.cfg.Heartbeat.Every() > 0 {
		ticker := time.NewTicker(b.cfg.Heartbeat.Every())
		defer ticker.Stop()
		heartbeat = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("bridge shutting down")
			return nil
		case <-heartbeat:
			b.sendHeartbeat()
		default:
		}

		if err := b.link.Pump(); err != nil {
			return err
		}
		if !b.drainFrames() {
			time.Sleep(pollInterval)
		}
	}
}

// drainFrames polls the receiver until it would block, reporting whether
// any frame arrived this round.
func (b *Bridge) drainFrames() bool {
	endpoint := b.link.Describe()
	got := false
	for {
		frame, err := b.rx.Receive()
		b.syncSkipped(endpoint)
		if errors.Is(err, transport.ErrWouldBlock) {
			return got
		}
		if err != nil {
			b.rxErrors.Add(1)
			observability.RecordReceiveError(b.cfg.Name, endpoint, errKind(err))
			log.Debug().Err(err).
				Uint32("bytes_skipped", b.bytesSkipped.Load()).
				Msg("receive error")
			continue
		}
		got = true
		b.framesRx.Add(1)
		observability.RecordFrameReceived(b.cfg.Name, endpoint)
		log.Info().
			Uint16("id", frame.ID()).
			Int("payload_len", len(frame.Bytes())).
			Msg("frame received")
	}
}

func (b *Bridge) sendHeartbeat() {
	err := b.tx.Transmit(b.cfg.Heartbeat.ID, []byte(b.cfg.Heartbeat.Payload))
	switch {
	case errors.Is(err, transport.ErrWouldBlock):
		log.Debug().Msg("heartbeat deferred, transmit queue full")
	case err != nil:
		log.Warn().Err(err).Msg("heartbeat failed")
	default:
		b.framesTx.Add(1)
		observability.RecordFrameTransmitted(b.cfg.Name, b.link.Describe())
	}
}

// syncSkipped publishes the receiver's skip counter and feeds the delta
// to the metric. Wrapping subtraction keeps the delta right across the
// counter's uint32 wrap.
func (b *Bridge) syncSkipped(endpoint string) {
	current := b.rx.BytesSkipped()
	if delta := current - b.seenSkipped; delta > 0 {
		observability.RecordBytesSkipped(b.cfg.Name, endpoint, delta)
	}
	b.seenSkipped = current
	b.bytesSkipped.Store(current)
}

func (b *Bridge) status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":               b.cfg.Name,
		"endpoint":           b.link.Describe(),
		"uptime":             time.Since(b.started).String(),
		"frames_received":    b.framesRx.Load(),
		"frames_transmitted": b.framesTx.Load(),
		"receive_errors":     b.rxErrors.Load(),
		"bytes_skipped":      b.bytesSkipped.Load(),
	})
}

func errKind(err error) string {
	switch {
	case errors.Is(err, protocol.ErrInvalidCRC):
		return "crc"
	case errors.Is(err, protocol.ErrInvalidBase64):
		return "base64"
	case errors.Is(err, protocol.ErrInvalidHeader):
		return "header"
	case errors.Is(err, protocol.ErrInvalidID):
		return "id"
	case errors.Is(err, protocol.ErrInvalidLength):
		return "length"
	case errors.Is(err, protocol.ErrTooManyBytes):
		return "capacity"
	case errors.Is(err, protocol.ErrTooFewBytes):
		return "short"
	case errors.Is(err, protocol.ErrQueueUnderflow):
		return "underflow"
	default:
		return "other"
	}
}
