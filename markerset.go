package obstacle

import(
	"fmt"
	"sort"
	"sync"
	"time"
)

type Marker struct {
	ID       string
	Created  time.Time
	Evaluation
}

// MarkerSet is the collection of markers on the map. Clicks add to it in whatever order
// their lookups complete; nothing coordinates between clicks beyond the lock. A click that
// repeats an existing point and AGL doesn't add a second marker.
type MarkerSet struct {
	sync.Mutex
	m    map[string]Marker
	seq  int
}

func NewMarkerSet() *MarkerSet {
	return &MarkerSet{m:map[string]Marker{}}
}

func (s *MarkerSet)String() string {
	s.Lock()
	defer s.Unlock()
	str := "{"
	for k,_ := range s.m {
		str += " " + k
	}
	return str + " }"
}

func markerKey(e Evaluation) string {
	return fmt.Sprintf("%.6f,%.6f@%g", e.Pos.Lat, e.Pos.Long, e.AGL)
}

func (s *MarkerSet)Len() int {
	s.Lock()
	defer s.Unlock()
	return len(s.m)
}

// Add returns the new marker, and false if an equivalent marker was already present (in
// which case that one is returned).
func (s *MarkerSet)Add(e Evaluation) (Marker, bool) {
	s.Lock()
	defer s.Unlock()

	key := markerKey(e)
	for _,m := range s.m {
		if markerKey(m.Evaluation) == key { return m, false }
	}

	s.seq++
	m := Marker{
		ID: fmt.Sprintf("m%d", s.seq),
		Created: time.Now().UTC(),
		Evaluation: e,
	}
	s.m[m.ID] = m
	return m, true
}

func (s *MarkerSet)Get(id string) (Marker, bool) {
	s.Lock()
	defer s.Unlock()
	m,exists := s.m[id]
	return m, exists
}

func (s *MarkerSet)Remove(id string) bool {
	s.Lock()
	defer s.Unlock()
	_,exists := s.m[id]
	delete (s.m, id)
	return exists
}

func (s *MarkerSet)AgeOut(d time.Duration) int {
	s.Lock()
	defer s.Unlock()
	n := 0
	for k,v := range s.m {
		if time.Since(v.Created) > d {
			delete (s.m, k)
			n++
		}
	}
	return n
}

// Markers returns a copy of the set, oldest first.
func (s *MarkerSet)Markers() []Marker {
	s.Lock()
	out := []Marker{}
	for _,m := range s.m {
		out = append(out, m)
	}
	s.Unlock()

	sort.Sort(MarkersByCreation(out))
	return out
}

type MarkersByCreation []Marker
func (s MarkersByCreation) Len() int      { return len(s) }
func (s MarkersByCreation) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s MarkersByCreation) Less(i, j int) bool {
	if s[i].Created.Equal(s[j].Created) {
		return markerSeq(s[i].ID) < markerSeq(s[j].ID)
	}
	return s[i].Created.Before(s[j].Created)
}

func markerSeq(id string) int {
	n := 0
	fmt.Sscanf(id, "m%d", &n)
	return n
}
