// Package sampler draws random records from a parsed log corpus and keeps the
// running per-level collections and keyword tallies that reports are built from.
package sampler

import (
	"errors"
	"math/rand/v2"
	"strings"

	"github.com/tinytelemetry/logsheet/internal/model"
)

// ErrEmptyCorpus is returned when a sampler is created without records to draw from.
var ErrEmptyCorpus = errors.New("sampler: no records to sample from")

// Options tunes a Sampler.
type Options struct {
	// Seed makes draws reproducible when non-zero.
	Seed uint64
	// RetainPerLevel caps the records kept per level; 0 keeps everything.
	// Records past the cap still count toward the level total.
	RetainPerLevel int
}

// Sampler owns all mutable sampling state. It is not safe for concurrent use;
// readers outside the sampling loop should work from a Snapshot.
type Sampler struct {
	corpus   []model.LogRecord
	rng      *rand.Rand
	retain   int
	levels   []levelState
	keywords []string
	tally    []int64
	cycles   int64
}

type levelState struct {
	records []model.LogRecord
	count   int64
}

// New creates a sampler over records tallying the given keywords in order.
func New(records []model.LogRecord, keywords []string, opts Options) (*Sampler, error) {
	if len(records) == 0 {
		return nil, ErrEmptyCorpus
	}
	if opts.RetainPerLevel < 0 {
		opts.RetainPerLevel = 0
	}

	seed1, seed2 := opts.Seed, opts.Seed^0x9e3779b97f4a7c15
	if opts.Seed == 0 {
		seed1, seed2 = rand.Uint64(), rand.Uint64()
	}

	corpus := make([]model.LogRecord, len(records))
	copy(corpus, records)

	return &Sampler{
		corpus:   corpus,
		rng:      rand.New(rand.NewPCG(seed1, seed2)),
		retain:   opts.RetainPerLevel,
		levels:   make([]levelState, len(model.Levels)),
		keywords: append([]string(nil), keywords...),
		tally:    make([]int64, len(keywords)),
	}, nil
}

// Sample draws one record uniformly at random, with replacement.
func (s *Sampler) Sample() model.LogRecord {
	return s.corpus[s.rng.IntN(len(s.corpus))]
}

// Observe records rec in its level collection and updates keyword tallies.
// A keyword counts once per observed record no matter how often it appears in the message.
func (s *Sampler) Observe(rec model.LogRecord) {
	idx := int(rec.Level)
	if idx < 0 || idx >= len(s.levels) {
		return
	}

	ls := &s.levels[idx]
	ls.count++
	if s.retain > 0 && len(ls.records) >= s.retain {
		copy(ls.records, ls.records[len(ls.records)-s.retain+1:])
		ls.records = ls.records[:s.retain-1]
	}
	ls.records = append(ls.records, rec)

	for i, kw := range s.keywords {
		if strings.Contains(rec.Message, kw) {
			s.tally[i]++
		}
	}
	s.cycles++
}

// Step performs one sampling cycle and returns the drawn record.
func (s *Sampler) Step() model.LogRecord {
	rec := s.Sample()
	s.Observe(rec)
	return rec
}

// Cycles returns the number of completed sampling cycles.
func (s *Sampler) Cycles() int64 { return s.cycles }

// Snapshot returns a deep copy of the current state.
func (s *Sampler) Snapshot() State {
	st := State{
		Cycles:   s.cycles,
		Levels:   make([]LevelSnapshot, len(s.levels)),
		Keywords: make([]model.KeywordCount, len(s.keywords)),
	}
	for i, ls := range s.levels {
		records := make([]model.LogRecord, len(ls.records))
		copy(records, ls.records)
		st.Levels[i] = LevelSnapshot{
			Level:   model.Levels[i],
			Records: records,
			Count:   ls.count,
		}
	}
	for i, kw := range s.keywords {
		st.Keywords[i] = model.KeywordCount{Keyword: kw, Count: s.tally[i]}
	}
	return st
}
