package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Storage keys
const (
	keyDecisionPrefix = "decision/"
	keyGamePrefix     = "game/"
)

// ErrGameNotFound is returned when no decisions were recorded for a game.
var ErrGameNotFound = errors.New("game not found")

// Decision is one per-move dynamic komi decision.
type Decision struct {
	Game      string    `json:"game"`
	Move      int       `json:"move"`
	ToPlay    string    `json:"to_play"`
	Method    string    `json:"method"`
	ExtraKomi float64   `json:"extra_komi"`
	Playouts  int       `json:"playouts"`
	MeanScore float64   `json:"mean_score"`
	WinRate   float64   `json:"win_rate"`
	Recorded  time.Time `json:"recorded"`
}

// GameInfo describes a recorded game.
type GameInfo struct {
	ID        string    `json:"id"`
	BoardSize int       `json:"board_size"`
	Komi      float64   `json:"komi"`
	Handicap  int       `json:"handicap"`
	Method    string    `json:"method"`
	Args      string    `json:"args"`
	Started   time.Time `json:"started"`
}

// Storage wraps BadgerDB for the decision trace. The trace is write-only
// from the search's point of view; nothing in it is fed back.
type Storage struct {
	db *badger.DB
}

// Open opens or creates a trace database in dir.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open trace db %s: %w", dir, err)
	}
	return &Storage{db: db}, nil
}

// OpenDefault opens the trace database in the platform data directory.
func OpenDefault() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func decisionKey(game string, move int) []byte {
	return []byte(fmt.Sprintf("%s%s/%05d", keyDecisionPrefix, game, move))
}

func (s *Storage) put(key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// StartGame records the setup of a game.
func (s *Storage) StartGame(g GameInfo) error {
	if g.Started.IsZero() {
		g.Started = time.Now()
	}
	return s.put([]byte(keyGamePrefix+g.ID), g)
}

// Record saves a decision, replacing any earlier one for the same move.
func (s *Storage) Record(d Decision) error {
	if d.Recorded.IsZero() {
		d.Recorded = time.Now()
	}
	return s.put(decisionKey(d.Game, d.Move), d)
}

// Game loads a game's setup.
func (s *Storage) Game(id string) (*GameInfo, error) {
	var g GameInfo
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyGamePrefix + id))
		if err == badger.ErrKeyNotFound {
			return ErrGameNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &g)
		})
	})
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// Decisions returns a game's decisions in move order.
func (s *Storage) Decisions(game string) ([]Decision, error) {
	var out []Decision
	prefix := []byte(keyDecisionPrefix + game + "/")

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var d Decision
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &d)
			}); err != nil {
				return err
			}
			out = append(out, d)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, game)
	}
	return out, nil
}

// Games lists the IDs of all recorded games.
func (s *Storage) Games() ([]string, error) {
	var ids []string
	prefix := []byte(keyGamePrefix)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			ids = append(ids, strings.TrimPrefix(string(it.Item().Key()), keyGamePrefix))
		}
		return nil
	})
	return ids, err
}
