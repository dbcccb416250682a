package sampler

import "github.com/tinytelemetry/logsheet/internal/model"

// State is an immutable copy of sampler state at one point in time.
type State struct {
	Cycles   int64
	Levels   []LevelSnapshot // indexed by model.Level
	Keywords []model.KeywordCount
}

// LevelSnapshot holds the retained records and total count for one level.
type LevelSnapshot struct {
	Level   model.Level
	Records []model.LogRecord
	Count   int64
}

// FirstNumber is the 1-based sequence number of the first retained record.
func (l LevelSnapshot) FirstNumber() int64 {
	return l.Count - int64(len(l.Records)) + 1
}

// Level returns the snapshot for level, or an empty one when it is unknown.
func (s State) Level(level model.Level) LevelSnapshot {
	idx := int(level)
	if idx < 0 || idx >= len(s.Levels) {
		return LevelSnapshot{Level: level}
	}
	return s.Levels[idx]
}

// Total returns the sum of all level counts.
func (s State) Total() int64 {
	var total int64
	for _, l := range s.Levels {
		total += l.Count
	}
	return total
}
