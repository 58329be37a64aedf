/*
Package geocell implements a quadtree spatial index that lets a key-value store
with only equality lookups approximate bounding-box queries over points.

The world box [-90,90]×[-180,180] is split into a 4×4 grid, and each of the 16
sub-cells is split again, down to MaxResolution levels. A cell key is the path
from the root, one hex symbol per level, so a key of length L names a cell at
resolution L and every prefix of it names an enclosing cell.

# Indexing

Store EncodeAll(p) alongside each record as a multi-valued indexed field, and
recompute it whenever the point changes.

# Querying

Pick a resolution with SelectResolution, then get the covering cells with
CandidateCells and match them against the stored field. The cover is
conservative: post-filter the matches with Box.Contains.

# Symbol packing

Each symbol packs one base-4 digit of the row and one of the column:

	bit 3: row digit high bit
	bit 2: column digit high bit
	bit 1: row digit low bit
	bit 0: column digit low bit

Boxes crossing the antimeridian are not supported; Enumerate reports them as
an empty cover.
*/
package geocell
