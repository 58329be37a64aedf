package geostore

import (
	"fmt"

	"github.com/andreyvit/geocell"
)

const (
	dataBucket  = "data"
	cellsBucket = "cells"
)

// Schema lists the tables of a DB. Define all tables before calling Open.
type Schema struct {
	tables       []tableDef
	tablesByName map[string]tableDef
}

type tableDef interface {
	Name() string
}

// Table holds rows of type T keyed by a string and indexed by the geocells
// of a point.
type Table[T any] struct {
	name    string
	keyOf   func(row *T) string
	pointOf func(row *T) geocell.Point

	suppressContent bool
}

// DefineTable adds a table to schema. key returns the primary key of a row,
// point returns the location the row is indexed under.
func DefineTable[T any](schema *Schema, name string, key func(row *T) string, point func(row *T) geocell.Point) *Table[T] {
	if name == "" {
		panic("table name must not be empty")
	}
	if schema.tablesByName == nil {
		schema.tablesByName = make(map[string]tableDef)
	}
	if schema.tablesByName[name] != nil {
		panic(fmt.Errorf("duplicate table %q", name))
	}
	tbl := &Table[T]{name: name, keyOf: key, pointOf: point}
	schema.tables = append(schema.tables, tbl)
	schema.tablesByName[name] = tbl
	return tbl
}

func (tbl *Table[T]) Name() string {
	return tbl.name
}

// SuppressContent keeps row contents out of verbose logs.
func (tbl *Table[T]) SuppressContent() *Table[T] {
	tbl.suppressContent = true
	return tbl
}

func (tbl *Table[T]) rowKey(row *T) []byte {
	key := tbl.keyOf(row)
	if key == "" {
		panic(tableErrf(tbl.name, nil, nil, "row has empty key"))
	}
	return []byte(key)
}

func (tbl *Table[T]) loggableRow(row *T) any {
	if tbl.suppressContent {
		return "<suppressed>"
	}
	return row
}
