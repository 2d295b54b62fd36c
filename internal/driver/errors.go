package driver

import "fmt"

// OsmFetchError wraps a failure to retrieve OSM data for the selection
// (spec.md §7 "OsmFetchError"), covering the fetcher's own
// {Network, HttpStatus(code), Parse} taxonomy without the driver needing to
// know which.
type OsmFetchError struct{ Cause error }

func (e *OsmFetchError) Error() string { return fmt.Sprintf("osm fetch: %v", e.Cause) }
func (e *OsmFetchError) Unwrap() error { return e.Cause }

// RegionWriteError reports that a unit's Anvil write failed; the run
// continues with other units, but this region's output is missing or stale
// (spec.md §7 "RegionWriteError(rx,rz): fatal for that unit; run continues").
type RegionWriteError struct {
	RegionX, RegionZ int32
	Cause            error
}

func (e *RegionWriteError) Error() string {
	return fmt.Sprintf("region write (%d,%d): %v", e.RegionX, e.RegionZ, e.Cause)
}
func (e *RegionWriteError) Unwrap() error { return e.Cause }

// Cancelled is returned by Run when the caller's context is done before the
// run finished (spec.md §7 "Cancelled", §6.5 exit code 5).
type Cancelled struct{}

func (e *Cancelled) Error() string { return "generation cancelled" }
