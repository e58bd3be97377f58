// Package organizer derives deterministic, collision-resistant output
// locations for rendered profile images under the configured output root.
package organizer
