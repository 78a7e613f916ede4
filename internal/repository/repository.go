// Package repository implements all MongoDB queries for the event booking
// system. It uses the official driver directly (no ODM) for transparency.
package repository

import "time"

// EventFilter narrows event listings. Zero values leave that dimension
// unfiltered; DateFrom/DateTo bound the event date inclusively on both ends.
type EventFilter struct {
	Category string
	DateFrom *time.Time
	DateTo   *time.Time
}
