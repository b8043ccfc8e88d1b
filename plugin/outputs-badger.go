package plugin

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	Pt "github.com/maroda/pisano/types"
)

// BadgerOutput archives every computed analysis so past periods can
// be queried back by modulus range without recomputation.
type BadgerOutput struct {
	MU        sync.Mutex
	DB        *badger.DB
	BatchSize int
	Buffer    []*Pt.Analysis
}

func NewBadgerOutput(path string, batchSize int) (*BadgerOutput, error) {
	if batchSize < 1 {
		batchSize = 1
	}

	opts := badger.DefaultOptions(path).
		WithCompression(options.ZSTD).
		WithNumVersionsToKeep(1)

	db, err := badger.Open(opts)
	if err != nil {
		slog.Error("BadgerOutput failed to open database", slog.Any("error", err))
		return nil, fmt.Errorf("database error: %w", err)
	}

	slog.Info("BadgerOutput opened",
		slog.String("path", path),
		slog.Int("batchSize", batchSize))

	return &BadgerOutput{
		DB:        db,
		BatchSize: batchSize,
		Buffer:    make([]*Pt.Analysis, 0, batchSize),
	}, nil
}

// WriteAnalysis queues up a batch of analyses,
// when batchsize is reached, it calls Flush()
// which calls WriteBatch() with the new batch
func (bo *BadgerOutput) WriteAnalysis(a *Pt.Analysis) error {
	bo.MU.Lock()
	defer bo.MU.Unlock()

	bo.Buffer = append(bo.Buffer, a)
	if len(bo.Buffer) >= bo.BatchSize {
		return bo.flushLocked() // private Flush that does not lock
	}
	return nil
}

// WriteBatch performs the key/value creation to be stored
// and actually calls BadgerDB to write the data
func (bo *BadgerOutput) WriteBatch(analyses []*Pt.Analysis) error {
	wb := bo.DB.NewWriteBatch()
	defer wb.Cancel()

	for _, a := range analyses {
		k := AnalysisKey(a, time.Now())
		v, err := AnalysisEncode(a)
		if err != nil {
			slog.Error("BadgerOutput failed to encode analysis",
				slog.Any("error", err),
				slog.Int("modulus", a.Modulus))
			return fmt.Errorf("analysis encode error: %w", err)
		}
		if err := wb.Set(k, v); err != nil {
			slog.Error("BadgerOutput failed to set key in batch",
				slog.Any("error", err),
				slog.Int("modulus", a.Modulus))
			return fmt.Errorf("write batch error: %w", err)
		}
	}

	if err := wb.Flush(); err != nil {
		slog.Error("BadgerOutput failed to flush batch", slog.Any("error", err))
		return fmt.Errorf("batch flush error: %w", err)
	}

	return nil
}

// Flush is the public method that blocks,
// it sends data to WriteBatch and then clears the buffer
func (bo *BadgerOutput) Flush() error {
	bo.MU.Lock()
	defer bo.MU.Unlock()

	if len(bo.Buffer) == 0 {
		return nil
	}

	err := bo.WriteBatch(bo.Buffer) // Delegate to WriteBatch
	bo.Buffer = bo.Buffer[:0]       // Clear but keep capacity
	return err
}

// flushLocked mimics Flush without locking, called by WriteAnalysis
func (bo *BadgerOutput) flushLocked() error {
	err := bo.WriteBatch(bo.Buffer) // Delegate to WriteBatch
	bo.Buffer = bo.Buffer[:0]       // Clear but keep capacity
	return err
}

// Close returns a Flush error but still attempts to close
func (bo *BadgerOutput) Close() error {
	slog.Info("BadgerOutput closing, flushing buffer",
		slog.Int("bufferSize", len(bo.Buffer)))
	flushErr := bo.Flush()
	closeErr := bo.DB.Close()

	if flushErr != nil {
		slog.Error("BadgerOutput failed to flush on close", slog.Any("error", flushErr))
		return fmt.Errorf("flush failed, close may have failed: %v", flushErr)
	}

	if closeErr != nil {
		slog.Error("BadgerOutput failed to close database", slog.Any("error", closeErr))
		return fmt.Errorf("close failed: %v", closeErr)
	}

	slog.Info("BadgerOutput closed successfully")
	return nil
}

func (bo *BadgerOutput) Type() string { return "BadgerDB" }

// AnalysisKey creates a composite key
// modulus + timestamp
func AnalysisKey(a *Pt.Analysis, at time.Time) []byte {
	key := make([]byte, 4+8)

	// Using positive BigEndian integers
	// so keys sort by modulus, then chronologically, in BadgerDB
	binary.BigEndian.PutUint32(key[0:4], uint32(a.Modulus))
	binary.BigEndian.PutUint64(key[4:12], uint64(at.UnixNano()))

	return key
}

// AnalysisEncode serializes the analysis struct for data storage
func AnalysisEncode(a *Pt.Analysis) ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(a); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// AnalysisDecode deserializes the analysis data
func AnalysisDecode(data []byte) (*Pt.Analysis, error) {
	var a Pt.Analysis
	buf := bytes.NewBuffer(data)
	dec := gob.NewDecoder(buf)
	err := dec.Decode(&a)
	return &a, err
}

// QueryRange retrieves archived analyses within a modulus range
func (bo *BadgerOutput) QueryRange(loM, hiM int) ([]*Pt.Analysis, error) {
	var analyses []*Pt.Analysis

	// db.View() callback
	// BadgerDB provides a transaction in which to get item.Value()
	err := bo.DB.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()

			// item.Value() callback
			// BadgerDB passes bytes to the anon func
			err := item.Value(func(val []byte) error {
				a, err := AnalysisDecode(val)
				if err != nil {
					slog.Error("BadgerOutput failed to decode analysis", slog.Any("error", err))
					return fmt.Errorf("analysis decode error: %w", err)
				}

				// Filter by modulus range
				if a.Modulus >= loM && a.Modulus <= hiM {
					analyses = append(analyses, a)
				}

				return nil
			})
			if err != nil {
				slog.Error("BadgerOutput callback failure", slog.Any("error", err))
				return fmt.Errorf("item data error: %w", err)
			}
		}
		return nil
	})

	slog.Info("BadgerOutput QueryRange successful", slog.Int("count", len(analyses)))

	return analyses, err
}
