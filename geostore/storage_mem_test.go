package geostore

import (
	"errors"
	"testing"
)

func TestMemStorage_Isolation(t *testing.T) {
	s := newMemStorage()
	defer s.Close()

	w := must(s.BeginTx(true))
	b := must(w.CreateBucket("t", dataBucket))
	ensure(b.Put([]byte("b"), []byte("2")))
	ensure(b.Put([]byte("a"), []byte("1")))

	r := must(s.BeginTx(false))
	if r.Bucket("t", dataBucket) != nil {
		t.Fatalf("uncommitted bucket visible to a concurrent reader")
	}
	ensure(r.Rollback())
	ensure(w.Commit())

	r = must(s.BeginTx(false))
	defer r.Rollback()
	c := r.Bucket("t", dataBucket).Cursor()
	var got string
	for k, v := c.First(); k != nil; k, v = c.Next() {
		got += string(k) + "=" + string(v) + " "
	}
	if got != "a=1 b=2 " {
		t.Fatalf("cursor walk = %q, wanted sorted a=1 b=2", got)
	}
	if k, _ := c.Seek([]byte("aa")); string(k) != "b" {
		t.Fatalf("Seek(aa) = %q, wanted b", k)
	}
	if k, _ := c.Seek([]byte("c")); k != nil {
		t.Fatalf("Seek(c) = %q, wanted nil", k)
	}
	if err := r.Bucket("t", dataBucket).Put([]byte("x"), nil); !errors.Is(err, errReadOnlyTx) {
		t.Fatalf("Put in read tx err = %v, wanted errReadOnlyTx", err)
	}
}

func TestMemStorage_Closed(t *testing.T) {
	s := newMemStorage()
	ensure(s.Close())
	if _, err := s.BeginTx(false); !errors.Is(err, errStorageClosed) {
		t.Fatalf("BeginTx after Close err = %v, wanted errStorageClosed", err)
	}
}
