package geostore

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/andreyvit/geocell"
)

type Place struct {
	ID   string        `msgpack:"id"`
	Name string        `msgpack:"n"`
	Loc  geocell.Point `msgpack:"loc"`
}

var (
	placesSchema = &Schema{}
	placesTable  = DefineTable(placesSchema, "places",
		func(p *Place) string { return p.ID },
		func(p *Place) geocell.Point { return p.Loc })
)

var cities = []*Place{
	{"paris", "Paris", geocell.Point{Lat: 48.8566, Lng: 2.3522}},
	{"london", "London", geocell.Point{Lat: 51.5074, Lng: -0.1278}},
	{"berlin", "Berlin", geocell.Point{Lat: 52.52, Lng: 13.405}},
	{"madrid", "Madrid", geocell.Point{Lat: 40.4168, Lng: -3.7038}},
	{"nyc", "New York", geocell.Point{Lat: 40.7128, Lng: -74.006}},
	{"sydney", "Sydney", geocell.Point{Lat: -33.8688, Lng: 151.2093}},
	{"tokyo", "Tokyo", geocell.Point{Lat: 35.6762, Lng: 139.6503}},
}

func TestPutGet(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db *DB) {
		db.Write(func(tx *Tx) {
			for _, c := range cities {
				Put(tx, placesTable, c)
			}
		})
		db.Read(func(tx *Tx) {
			deepEqual(t, Get(tx, placesTable, "paris"), cities[0])
			isnil(t, Get(tx, placesTable, "atlantis"))
			deepEqual(t, Count(tx, placesTable), len(cities))

			st := Stats(tx, placesTable)
			deepEqual(t, st.Rows, len(cities))
			deepEqual(t, st.CellEntries, len(cities)*geocell.MaxResolution)
		})
	})
}

func TestWithin(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db *DB) {
		putAll(db, cities)

		tests := []struct {
			name       string
			box        geocell.Box
			want       string
			candidates string
		}{
			{
				name:       "western europe",
				box:        geocell.Box{SW: geocell.Point{Lat: 40, Lng: -5}, NE: geocell.Point{Lat: 53, Lng: 14}},
				want:       "berlin london madrid paris",
				candidates: "berlin london madrid nyc paris",
			},
			{
				name:       "around paris",
				box:        geocell.Box{SW: geocell.Point{Lat: 48.8, Lng: 2.2}, NE: geocell.Point{Lat: 48.9, Lng: 2.5}},
				want:       "paris",
				candidates: "paris",
			},
			{
				name:       "whole world",
				box:        geocell.Box{SW: geocell.Point{Lat: -90, Lng: -180}, NE: geocell.Point{Lat: 90, Lng: 180}},
				want:       "berlin london madrid nyc paris sydney tokyo",
				candidates: "berlin london madrid nyc paris sydney tokyo",
			},
			{
				name:       "empty ocean",
				box:        geocell.Box{SW: geocell.Point{Lat: -50, Lng: -140}, NE: geocell.Point{Lat: -49, Lng: -139}},
				want:       "",
				candidates: "",
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				db.Read(func(tx *Tx) {
					rows := must(Within(tx, placesTable, tt.box))
					deepEqual(t, placeIDs(rows), tt.want)

					keys := must(Candidates(tx, placesTable, tt.box))
					slices.Sort(keys)
					deepEqual(t, strings.Join(keys, " "), tt.candidates)
				})
			})
		}
	})
}

func TestWithin_Unsupported(t *testing.T) {
	db := setupMem(t)
	putAll(db, cities)
	db.Read(func(tx *Tx) {
		boxes := []geocell.Box{
			{SW: geocell.Point{Lat: 10, Lng: 10}, NE: geocell.Point{Lat: 5, Lng: 5}},
			{SW: geocell.Point{Lat: -10, Lng: 170}, NE: geocell.Point{Lat: 10, Lng: -170}},
		}
		for _, box := range boxes {
			rows, err := Within(tx, placesTable, box)
			if !errors.Is(err, ErrBoxNotSupported) {
				t.Errorf("Within(%v) err = %v, wanted ErrBoxNotSupported", box, err)
			}
			isempty(t, rows)
		}
	})
}

func TestPut_Moves(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db *DB) {
		p := &Place{"x", "Wanderer", geocell.Point{Lat: 48.8566, Lng: 2.3522}}
		db.Write(func(tx *Tx) {
			Put(tx, placesTable, p)
		})

		moved := &Place{"x", "Wanderer", geocell.Point{Lat: -33.8688, Lng: 151.2093}}
		db.Write(func(tx *Tx) {
			Put(tx, placesTable, moved)
		})

		aroundParis := geocell.Box{SW: geocell.Point{Lat: 48, Lng: 2}, NE: geocell.Point{Lat: 49, Lng: 3}}
		aroundSydney := geocell.Box{SW: geocell.Point{Lat: -34, Lng: 151}, NE: geocell.Point{Lat: -33, Lng: 152}}
		db.Read(func(tx *Tx) {
			isempty(t, must(Candidates(tx, placesTable, aroundParis)))
			deepEqual(t, must(Within(tx, placesTable, aroundSydney)), []*Place{moved})
			deepEqual(t, Stats(tx, placesTable).CellEntries, geocell.MaxResolution)
		})
	})
}

func TestPut_Noop(t *testing.T) {
	var logs []string
	db := must(OpenMemory(placesSchema, Options{
		Verbose: true,
		Logf: func(format string, args ...any) {
			logs = append(logs, fmt.Sprintf(format, args...))
		},
	}))
	t.Cleanup(db.Close)

	p := &Place{"x", "Same", geocell.Point{Lat: 1, Lng: 2}}
	putAll(db, []*Place{p})
	putAll(db, []*Place{p})

	if len(logs) != 2 || !strings.Contains(logs[0], "PUT places/x") || !strings.Contains(logs[1], "PUT.NOOP places/x") {
		t.Fatalf("logs = %q, wanted PUT then PUT.NOOP", logs)
	}
}

func TestDelete(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db *DB) {
		putAll(db, cities)
		db.Write(func(tx *Tx) {
			deepEqual(t, Delete(tx, placesTable, "paris"), true)
			deepEqual(t, Delete(tx, placesTable, "paris"), false)
		})
		db.Read(func(tx *Tx) {
			isnil(t, Get(tx, placesTable, "paris"))
			deepEqual(t, Stats(tx, placesTable).CellEntries, (len(cities)-1)*geocell.MaxResolution)
			rows := must(Within(tx, placesTable, geocell.Box{SW: geocell.Point{Lat: 48, Lng: 2}, NE: geocell.Point{Lat: 49, Lng: 3}}))
			isempty(t, rows)
		})
	})
}

func TestScan(t *testing.T) {
	db := setupMem(t)
	putAll(db, cities)
	db.Read(func(tx *Tx) {
		var keys []string
		Scan(tx, placesTable, func(key string, row *Place) bool {
			if key != row.ID {
				t.Errorf("Scan key %q for row %q", key, row.ID)
			}
			keys = append(keys, key)
			return len(keys) < 3
		})
		deepEqual(t, keys, []string{"berlin", "london", "madrid"})
	})
}

func TestTx_ReadOnlyRejectsWrites(t *testing.T) {
	db := setupMem(t)
	err := db.Tx(false, func(tx *Tx) error {
		Put(tx, placesTable, cities[0])
		return nil
	})
	if err == nil || !strings.Contains(err.Error(), "read-only") {
		t.Fatalf("err = %v, wanted read-only failure", err)
	}
}

func TestTx_RollbackOnError(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db *DB) {
		failure := errors.New("nope")
		err := db.Tx(true, func(tx *Tx) error {
			Put(tx, placesTable, cities[0])
			return failure
		})
		if !errors.Is(err, failure) {
			t.Fatalf("err = %v, wanted %v", err, failure)
		}
		db.Read(func(tx *Tx) {
			deepEqual(t, Count(tx, placesTable), 0)
		})
	})
}

func TestPut_EmptyKey(t *testing.T) {
	db := setupMem(t)
	err := db.Tx(true, func(tx *Tx) error {
		Put(tx, placesTable, &Place{Name: "nameless"})
		return nil
	})
	var te *TableError
	if !errors.As(err, &te) || te.Table != "places" {
		t.Fatalf("err = %v, wanted *TableError for places", err)
	}
}

func TestBolt_Reopen(t *testing.T) {
	path := tempDBPath(t)
	db := must(Open(path, placesSchema, Options{IsTesting: true}))
	putAll(db, cities)
	db.Close()

	db = must(Open(path, placesSchema, Options{IsTesting: true}))
	defer db.Close()
	db.Read(func(tx *Tx) {
		deepEqual(t, Get(tx, placesTable, "tokyo"), cities[6])
		rows := must(Within(tx, placesTable, geocell.Box{SW: geocell.Point{Lat: 35, Lng: 139}, NE: geocell.Point{Lat: 36, Lng: 140}}))
		deepEqual(t, placeIDs(rows), "tokyo")
	})
	if db.Bolt() == nil {
		t.Fatalf("Bolt() = nil for a Bolt-backed DB")
	}
}

func TestDefineTable_Duplicate(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("duplicate DefineTable did not panic")
		}
	}()
	s := &Schema{}
	DefineTable(s, "a", func(p *Place) string { return p.ID }, func(p *Place) geocell.Point { return p.Loc })
	DefineTable(s, "a", func(p *Place) string { return p.ID }, func(p *Place) geocell.Point { return p.Loc })
}

func forEachBackend(t *testing.T, f func(t *testing.T, db *DB)) {
	t.Run("bolt", func(t *testing.T) { f(t, setupBolt(t)) })
	t.Run("mem", func(t *testing.T) { f(t, setupMem(t)) })
}

func setupBolt(t testing.TB) *DB {
	t.Helper()
	db := must(Open(tempDBPath(t), placesSchema, Options{IsTesting: true, Verbose: true, Logf: t.Logf}))
	t.Cleanup(db.Close)
	return db
}

func setupMem(t testing.TB) *DB {
	t.Helper()
	db := must(OpenMemory(placesSchema, Options{IsTesting: true, Verbose: true, Logf: t.Logf}))
	t.Cleanup(db.Close)
	return db
}

func tempDBPath(t testing.TB) string {
	t.Helper()
	f := must(os.CreateTemp("", "geostore_test_*.db"))
	t.Logf("DB: %s", f.Name())
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })
	return f.Name()
}

func putAll(db *DB, rows []*Place) {
	db.Write(func(tx *Tx) {
		for _, row := range rows {
			Put(tx, placesTable, row)
		}
	})
}

func placeIDs(rows []*Place) string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	slices.Sort(ids)
	return strings.Join(ids, " ")
}

func deepEqual[T any](t testing.TB, a, e T) {
	if !reflect.DeepEqual(a, e) {
		t.Helper()
		t.Errorf("** got %v, wanted %v", a, e)
	}
}

func isempty[T any, S ~[]T](t testing.TB, a S) {
	if len(a) > 0 {
		t.Helper()
		t.Errorf("** got %v, wanted empty slice", a)
	}
}

func isnil[T any, P ~*T](t testing.TB, a P) {
	if a != nil {
		t.Helper()
		t.Errorf("** got &%v, wanted nil", *a)
	}
}
