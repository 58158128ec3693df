package repo

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/tbourn/go-qa-backend/internal/domain"
)

func q(id, title string) domain.Question {
	return domain.Question{ID: domain.MustQuestionID(id), Title: title, Content: "c-" + id}
}

func TestNewQuestionStore_CopiesSeed(t *testing.T) {
	seed := map[domain.QuestionID]domain.Question{
		domain.MustQuestionID("1"): {ID: domain.MustQuestionID("1"), Title: "T", Tags: []string{"a"}},
	}
	s := NewQuestionStore(seed)
	seed[domain.MustQuestionID("1")].Tags[0] = "mutated"
	delete(seed, domain.MustQuestionID("1"))

	got := s.List()
	if len(got) != 1 || got[0].Tags[0] != "a" {
		t.Fatalf("store shares state with seed: %+v", got)
	}

	if NewQuestionStore(nil).Len() != 0 {
		t.Fatalf("nil seed should give empty store")
	}
}

func TestList_SortedByIDAndDetached(t *testing.T) {
	s := NewQuestionStore(nil)
	for _, id := range []string{"b", "c", "a"} {
		s.Insert(q(id, "t"+id))
	}

	got := s.List()
	var ids []string
	for _, it := range got {
		ids = append(ids, it.ID.String())
	}
	if !reflect.DeepEqual(ids, []string{"a", "b", "c"}) {
		t.Fatalf("List order = %v", ids)
	}

	got[0].Title = "changed"
	if s.List()[0].Title != "ta" {
		t.Fatalf("List result aliases store state")
	}
}

func TestInsert_UpsertByID(t *testing.T) {
	s := NewQuestionStore(nil)
	s.Insert(q("1", "first"))
	s.Insert(q("1", "second"))

	got := s.List()
	if len(got) != 1 || got[0].Title != "second" {
		t.Fatalf("after double insert: %+v", got)
	}
}

func TestInsert_DetachesCallerTags(t *testing.T) {
	s := NewQuestionStore(nil)
	in := domain.Question{ID: domain.MustQuestionID("1"), Tags: []string{"x"}}
	s.Insert(in)
	in.Tags[0] = "y"
	if s.List()[0].Tags[0] != "x" {
		t.Fatalf("caller mutation leaked into store")
	}
}

func TestUpdate(t *testing.T) {
	s := NewQuestionStore(nil)
	s.Insert(q("1", "old"))
	before := s.List()

	// miss: error and no change
	if err := s.Update(domain.MustQuestionID("9"), q("9", "x")); !errors.Is(err, domain.ErrQuestionNotFound) {
		t.Fatalf("Update miss err = %v", err)
	}
	if !reflect.DeepEqual(s.List(), before) {
		t.Fatalf("store changed after failed update")
	}

	// hit: full replacement
	repl := domain.Question{ID: domain.MustQuestionID("1"), Title: "new", Content: "nc", Tags: []string{}}
	if err := s.Update(domain.MustQuestionID("1"), repl); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got := s.List()
	if len(got) != 1 || !reflect.DeepEqual(got[0], repl) {
		t.Fatalf("after update: %+v", got)
	}
}

func TestDelete(t *testing.T) {
	s := NewQuestionStore(nil)
	s.Insert(q("1", "a"))
	s.Insert(q("2", "b"))
	before := s.List()

	if err := s.Delete(domain.MustQuestionID("9")); !errors.Is(err, domain.ErrQuestionNotFound) {
		t.Fatalf("Delete miss err = %v", err)
	}
	if !reflect.DeepEqual(s.List(), before) {
		t.Fatalf("store changed after failed delete")
	}

	if err := s.Delete(domain.MustQuestionID("1")); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got := s.List()
	if len(got) != 1 || got[0].ID.String() != "2" {
		t.Fatalf("after delete: %+v", got)
	}
	if err := s.Delete(domain.MustQuestionID("1")); !errors.Is(err, domain.ErrQuestionNotFound) {
		t.Fatalf("second Delete err = %v", err)
	}
}

func TestSnapshot_RevisionAdvancesOnMutationOnly(t *testing.T) {
	s := NewQuestionStore(nil)
	_, r0 := s.Snapshot()

	s.Insert(q("1", "a"))
	_, r1 := s.Snapshot()
	if r1 <= r0 {
		t.Fatalf("insert did not advance revision: %d -> %d", r0, r1)
	}

	_ = s.Update(domain.MustQuestionID("x"), q("x", "x"))
	_ = s.Delete(domain.MustQuestionID("x"))
	_, r2 := s.Snapshot()
	if r2 != r1 {
		t.Fatalf("failed mutations advanced revision: %d -> %d", r1, r2)
	}

	_ = s.Delete(domain.MustQuestionID("1"))
	items, r3 := s.Snapshot()
	if r3 <= r2 || len(items) != 0 {
		t.Fatalf("delete: rev %d -> %d, items=%v", r2, r3, items)
	}
}

func TestConcurrentInserts_NoLostUpdates(t *testing.T) {
	s := NewQuestionStore(nil)
	const n = 200

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Insert(q(fmt.Sprintf("id-%03d", i), "t"))
		}(i)
	}
	wg.Wait()

	if got := len(s.List()); got != n {
		t.Fatalf("List len = %d; want %d", got, n)
	}
}

func TestConcurrentReadersAndWriters_NoTornReads(t *testing.T) {
	s := NewQuestionStore(nil)
	s.Insert(domain.Question{ID: domain.MustQuestionID("1"), Title: "v0", Content: "v0", Tags: []string{"v0"}})

	var wg sync.WaitGroup
	stop := make(chan struct{})

	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; ; i++ {
				select {
				case <-stop:
					return
				default:
				}
				v := fmt.Sprintf("w%d-%d", w, i)
				_ = s.Update(domain.MustQuestionID("1"), domain.Question{
					ID: domain.MustQuestionID("1"), Title: v, Content: v, Tags: []string{v},
				})
			}
		}(w)
	}

	for i := 0; i < 2000; i++ {
		for _, it := range s.List() {
			if it.Title != it.Content || len(it.Tags) != 1 || it.Tags[0] != it.Title {
				close(stop)
				wg.Wait()
				t.Fatalf("torn read: %+v", it)
			}
		}
	}
	close(stop)
	wg.Wait()
}
