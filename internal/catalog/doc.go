// Package catalog assembles reconciled entries into the final catalog and
// persists it.
//
// Assemble re-checks the cross-record invariants (one entry per law id,
// every current file discovered in this run) and fixes the output order.
// Writer encodes the catalog as indented JSON and replaces the destination
// atomically: the bytes go to a temporary file in the same directory, which
// is synced and renamed over the target. A failed write leaves the previous
// catalog as it was.
package catalog
