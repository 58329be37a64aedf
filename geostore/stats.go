package geostore

type TableStats struct {
	Rows        int
	CellEntries int

	DataSize   int64
	DataAlloc  int64
	IndexSize  int64
	IndexAlloc int64
}

func (ts *TableStats) TotalSize() int64 {
	return ts.DataSize + ts.IndexSize
}

func (ts *TableStats) TotalAlloc() int64 {
	return ts.DataAlloc + ts.IndexAlloc
}

func Stats[T any](tx *Tx, tbl *Table[T]) TableStats {
	b := buckets(tx, tbl)
	ds := b.data.Stats()
	cs := b.cells.Stats()
	return TableStats{
		Rows:        ds.KeyN,
		CellEntries: cs.KeyN,
		DataSize:    ds.LeafInuse,
		DataAlloc:   ds.TotalAlloc(),
		IndexSize:   cs.LeafInuse,
		IndexAlloc:  cs.TotalAlloc(),
	}
}
