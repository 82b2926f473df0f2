package dimension

import (
	"errors"
	"fmt"

	"github.com/philipparndt/godim/internal/logger"
)

// GroupName is the render group holding the created dimensions
const GroupName = "dimensions"

// ErrDegenerate is returned for records whose geometry cannot be measured
var ErrDegenerate = errors.New("degenerate dimension")

// Publisher receives the complete primitive list of a named group
type Publisher interface {
	SetGroup(name string, sets []PrimitiveSet)
}

// Store owns the created dimensions, the current style and their primitives.
// Every mutation rebuilds what it affects and publishes the whole group
// before returning.
type Store struct {
	style      Style
	records    []Record
	primitives []PrimitiveSet
	nextID     int
	sink       Publisher
	log        *logger.Logger
}

// NewStore creates an empty store. sink may be nil.
func NewStore(style Style, sink Publisher) *Store {
	return &Store{style: style, sink: sink, nextID: 1}
}

// SetLogger attaches a logger
func (s *Store) SetLogger(log *logger.Logger) {
	s.log = log.WithPrefix("dimension")
}

// Create stores a copy of rec under a new id. The id set on rec is ignored.
func (s *Store) Create(rec Record) (Record, error) {
	rec = rec.clone()
	rec.ID = s.nextID
	set, ok := Build(rec, &s.style, false)
	if !ok {
		return Record{}, fmt.Errorf("create %s dimension: %w", rec.Type, ErrDegenerate)
	}

	s.nextID++
	s.records = append(s.records, rec)
	s.primitives = append(s.primitives, set)
	s.log.Info("created %s dimension #%d: %s", rec.Type, rec.ID, labelText(set))
	s.publish()
	return rec.clone(), nil
}

// Get returns the record with id
func (s *Store) Get(id int) (Record, bool) {
	for _, rec := range s.records {
		if rec.ID == id {
			return rec.clone(), true
		}
	}
	return Record{}, false
}

// Records returns the records in creation order
func (s *Store) Records() []Record {
	out := make([]Record, len(s.records))
	for i, rec := range s.records {
		out[i] = rec.clone()
	}
	return out
}

// Len returns the number of records
func (s *Store) Len() int {
	return len(s.records)
}

// Remove deletes the record with id
func (s *Store) Remove(id int) bool {
	for i, rec := range s.records {
		if rec.ID == id {
			s.records = append(s.records[:i:i], s.records[i+1:]...)
			s.primitives = append(s.primitives[:i:i], s.primitives[i+1:]...)
			s.log.Info("removed dimension #%d", id)
			s.publish()
			return true
		}
	}
	return false
}

// RemoveLast deletes the most recently created record
func (s *Store) RemoveLast() (Record, bool) {
	if len(s.records) == 0 {
		return Record{}, false
	}
	last := s.records[len(s.records)-1]
	s.Remove(last.ID)
	return last, true
}

// Clear deletes every record. Ids keep counting up.
func (s *Store) Clear() {
	s.records = nil
	s.primitives = nil
	s.log.Info("cleared dimensions")
	s.publish()
}

// Style returns the current style
func (s *Store) Style() Style {
	return s.style
}

// SetStyle replaces the style and rebuilds every record from its anchors
func (s *Store) SetStyle(style Style) []PrimitiveSet {
	rebuilt := make([]PrimitiveSet, 0, len(s.records))
	for _, rec := range s.records {
		// records were validated on creation and the style does not affect degeneracy
		set, _ := Build(rec, &style, false)
		rebuilt = append(rebuilt, set)
	}
	s.style = style
	s.primitives = rebuilt
	s.publish()
	return s.Primitives()
}

// Primitives returns the primitive sets of all records in creation order
func (s *Store) Primitives() []PrimitiveSet {
	out := make([]PrimitiveSet, len(s.primitives))
	copy(out, s.primitives)
	return out
}

// Preview builds rec with the current style as a preview
func (s *Store) Preview(rec Record) (PrimitiveSet, bool) {
	return Build(rec, &s.style, true)
}

func (s *Store) publish() {
	if s.sink != nil {
		s.sink.SetGroup(GroupName, s.Primitives())
	}
}

func labelText(set PrimitiveSet) string {
	if len(set.Labels) == 0 {
		return ""
	}
	return set.Labels[0].Text
}
