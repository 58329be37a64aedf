/*
Package geostore is an embedded record store with a geocell index, on top of
Bolt or an in-memory backend.

Each table keeps two buckets. "data" maps a row key to its value, and "cells"
holds one empty-valued entry per (cell, row) pair for every resolution from 1
to geocell.MaxResolution. Put recomputes the cells whenever a row is written
and removes the entries the row no longer contributes.

Within answers a bounding-box query in two steps: the candidate cells for the
box are looked up in the cells bucket, then the candidate rows are culled by
exact containment.

# Value format

	flags     uvarint
	modcount  uvarint
	data size uvarint
	cell size uvarint
	data      msgpack of the row
	cells     uvarint count, then each cell key as uvarint length + symbols

The stored cell list lets Put and Delete find the index entries to remove
even if the row's point has changed since.
*/
package geostore
