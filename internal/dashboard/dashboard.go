// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package dashboard assembles per-location forecast and demand records into an ordered,
// read-only collection that the renderers consume.
package dashboard

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"time"
)

var ErrDuplicateLocation = errors.New("duplicate location")

// Dashboard maps location names to their records and keeps insertion order.
type Dashboard struct {
	names   []string
	records map[string]*Record
}

// New returns a Dashboard holding records in the given order.
func New(records ...*Record) (*Dashboard, error) {
	d := &Dashboard{records: make(map[string]*Record, len(records))}
	for _, rec := range records {
		if err := d.add(rec); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (d *Dashboard) add(rec *Record) error {
	if rec == nil {
		return errors.New("nil record")
	}
	name := rec.Location.Name
	if _, ok := d.records[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateLocation, name)
	}
	d.names = append(d.names, name)
	d.records[name] = rec
	return nil
}

// Len returns the number of locations.
func (d *Dashboard) Len() int {
	return len(d.names)
}

// Empty reports whether no location made it into the dashboard.
func (d *Dashboard) Empty() bool {
	return d.Len() == 0
}

// Names returns the location names in insertion order.
func (d *Dashboard) Names() []string {
	return slices.Clone(d.names)
}

// Get returns the record of the named location.
func (d *Dashboard) Get(name string) (*Record, bool) {
	rec, ok := d.records[name]
	return rec, ok
}

// All iterates over the records in insertion order.
func (d *Dashboard) All() iter.Seq2[string, *Record] {
	return func(yield func(string, *Record) bool) {
		for _, name := range d.names {
			if !yield(name, d.records[name]) {
				return
			}
		}
	}
}

// TimeRange returns the earliest and latest timestamp over all records. ok is false if the
// dashboard holds no timestamps.
func (d *Dashboard) TimeRange() (start, end time.Time, ok bool) {
	for _, rec := range d.All() {
		if rec.Len() == 0 {
			continue
		}
		first, last := rec.Times[0], rec.Times[rec.Len()-1]
		if !ok || first.Before(start) {
			start = first
		}
		if !ok || last.After(end) {
			end = last
		}
		ok = true
	}
	return start, end, ok
}
