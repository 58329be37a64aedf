package geostore

type valueFlags uint64

const (
	vfVer1 = valueFlags(1 << iota)

	vfSupportedMask = vfVer1
	vfDefault       = vfVer1

	minValueSize = 4
)

// value is the stored form of a row: a uvarint header (flags, mod count,
// data size, cells size), the msgpack data, and the cell keys the row was
// indexed under when it was written.
type value struct {
	Flags    valueFlags
	ModCount uint64
	Data     []byte
	Cells    []byte
}

func (vle *value) appendTo(buf []byte) []byte {
	if (vle.Flags &^ vfSupportedMask) != 0 {
		panic(dataErrf(nil, 0, nil, "invalid flags %x", vle.Flags))
	}
	buf = appendUvarint(buf, uint64(vle.Flags))
	buf = appendUvarint(buf, vle.ModCount)
	buf = appendUvarint(buf, uint64(len(vle.Data)))
	buf = appendUvarint(buf, uint64(len(vle.Cells)))
	buf = append(buf, vle.Data...)
	return append(buf, vle.Cells...)
}

func (vle *value) decode(data []byte) error {
	if len(data) < minValueSize {
		return dataErrf(data, 0, nil, "invalid value: at least %d bytes required", minValueSize)
	}
	d := makeByteDecoder(data)

	flags, err := d.Uvarint()
	if err != nil {
		return err
	}
	if (flags &^ uint64(vfSupportedMask)) != 0 {
		return dataErrf(data, 0, nil, "invalid value: unsupported flags %x", flags)
	}
	vle.Flags = valueFlags(flags)

	if vle.ModCount, err = d.Uvarint(); err != nil {
		return err
	}
	dataSize, err := d.Uvarinti()
	if err != nil {
		return err
	}
	cellsSize, err := d.Uvarinti()
	if err != nil {
		return err
	}
	if rem := len(d.Buf); rem != dataSize+cellsSize {
		return dataErrf(data, d.Off(), nil, "invalid value: got %d bytes for data+cells, expected %d", rem, dataSize+cellsSize)
	}
	vle.Data = d.Buf[:dataSize]
	vle.Cells = d.Buf[dataSize:]
	return nil
}
