package geostore

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBoxNotSupported is returned by Within and Candidates for boxes the index
// can't serve: inverted boxes and boxes crossing the antimeridian.
var ErrBoxNotSupported = errors.New("bounding box not supported by the geocell index")

type DataError struct {
	Data []byte
	Off  int
	Err  error
	Msg  string
}

func dataErrf(data []byte, off int, err error, format string, args ...any) error {
	return &DataError{data, off, err, fmt.Sprintf(format, args...)}
}

func (e *DataError) Unwrap() error {
	return e.Err
}

func (e *DataError) Error() string {
	const prefixLen = 64
	const suffixLen = 32
	n := len(e.Data)
	data := fmt.Sprintf("%x", e.Data)
	if n > prefixLen+suffixLen {
		data = fmt.Sprintf("%x...%x", e.Data[:prefixLen], e.Data[n-suffixLen:])
	}
	if e.Err != nil {
		return fmt.Sprintf("%s at %d: %v: (%d) %s", e.Msg, e.Off, e.Err, n, data)
	}
	return fmt.Sprintf("%s at %d: (%d) %s", e.Msg, e.Off, n, data)
}

type TableError struct {
	Table string
	Key   []byte
	Msg   string
	Err   error
}

func tableErrf(table string, key []byte, err error, format string, args ...any) error {
	return &TableError{table, key, fmt.Sprintf(format, args...), err}
}

func (e *TableError) Unwrap() error {
	return e.Err
}

func (e *TableError) Error() string {
	var buf strings.Builder
	buf.WriteString(e.Table)
	if e.Key != nil {
		buf.WriteByte('/')
		buf.Write(e.Key)
	}
	if e.Msg != "" {
		buf.WriteString(": ")
		buf.WriteString(e.Msg)
	}
	if e.Err != nil {
		buf.WriteString(": ")
		buf.WriteString(e.Err.Error())
	}
	return buf.String()
}
