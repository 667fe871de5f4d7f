// Package link adapts real byte endpoints (UART, TCP) to the framing
// queues. A link owns the endpoint and a pair of fixed-capacity queues;
// Pump moves whatever bytes are pending in both directions without
// blocking the caller's poll loop. The framing core never touches the
// endpoint directly.
package link
