// Package broadcast implements fan-out delivery to WebSocket subscribers.
//
// The Hub:
//   - Greets each new subscriber and replays the last payload
//   - Retains exactly one payload (the most recent)
//   - Delivers every payload to all subscribers, isolating failures so one
//     broken connection never blocks the rest
//
// The Server upgrades HTTP requests and registers each connection with the
// Hub. Inbound frames are read and discarded.
package broadcast
