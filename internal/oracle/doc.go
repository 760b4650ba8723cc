// Package oracle implements the Probability Synthesizer.
//
// The Synthesizer:
//   - Derives the current hourly market slug every 3s
//   - Fetches the market from the Gamma API (one attempt per cycle)
//   - Converts the up-side price into a noised probability, or a neutral
//     50/50 estimate when no usable price exists
//   - Clamps prob_up to [1, 99] and sets prob_down = 100 - prob_up
//   - Publishes the payload to all subscribers
package oracle
