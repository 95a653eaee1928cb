package journal

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/wal"
	"github.com/txix-open/isp-kit/log"
	"github.com/txix-open/restx"
	"github.com/txix-open/restx/codec"
)

const (
	outcomeField = "outcome"
)

// Record is one settled operation as stored in the journal.
type Record struct {
	URL       string    `json:"url"`
	Endpoint  string    `json:"endpoint"`
	Outcome   string    `json:"outcome"`
	Error     string    `json:"error,omitempty"`
	ElapsedMs int64     `json:"elapsedMs"`
	SettledAt time.Time `json:"settledAt"`
}

// Journal appends one record per settled operation to a write-ahead log
// and reads them back for diagnostics.
type Journal struct {
	lock  sync.Mutex
	log   *wal.Log
	index uint64
	codec codec.Codec
}

func Open(dir string) (*Journal, error) {
	walLog, err := wal.Open(dir, &wal.Options{
		SegmentCacheSize: 4,
		NoSync:           true,
	})
	if err != nil {
		return nil, errors.WithMessagef(err, "open journal in %s", dir)
	}

	index, err := walLog.LastIndex()
	if err != nil {
		return nil, errors.WithMessage(err, "journal get last index")
	}

	return &Journal{
		log:   walLog,
		index: index,
		codec: codec.New(),
	}, nil
}

// Hook adapts the journal to a manager settle hook.
// Append failures are logged, never surfaced to the poll loop.
func (j *Journal) Hook(logger log.Logger) restx.Hook {
	return func(result restx.OpResult) {
		err := j.Append(result)
		if err != nil {
			logger.Error(context.Background(), errors.WithMessage(err, "journal append"))
		}
	}
}

func (j *Journal) Append(result restx.OpResult) error {
	record := Record{
		URL:       result.URL,
		Endpoint:  result.Endpoint,
		Outcome:   string(result.Outcome),
		ElapsedMs: result.Elapsed.Milliseconds(),
		SettledAt: time.Now(),
	}
	if result.Err != nil {
		record.Error = result.Err.Error()
	}

	data, err := j.codec.Marshal(record)
	if err != nil {
		return errors.WithMessage(err, "marshal record")
	}

	j.lock.Lock()
	defer j.lock.Unlock()

	next := j.index + 1
	err = j.log.Write(next, data)
	if err != nil {
		return errors.WithMessage(err, "journal write")
	}
	j.index = next
	return nil
}

func (j *Journal) LastIndex() uint64 {
	j.lock.Lock()
	defer j.lock.Unlock()

	return j.index
}

func (j *Journal) Read(index uint64) (Record, error) {
	data, err := j.log.Read(index)
	if err != nil {
		return Record{}, errors.WithMessagef(err, "journal read %d", index)
	}

	record := Record{}
	err = j.codec.Decode(data, &record)
	if err != nil {
		return Record{}, errors.WithMessagef(err, "unmarshal record %d", index)
	}
	return record, nil
}

// Scan calls fn for every record with the given outcome, oldest first,
// until fn returns false. Non-matching records are skipped without
// a full unmarshal.
func (j *Journal) Scan(outcome restx.Outcome, fn func(record Record) bool) error {
	lastIndex := j.LastIndex()
	for i := uint64(1); i <= lastIndex; i++ {
		data, err := j.log.Read(i)
		if err != nil {
			return errors.WithMessagef(err, "journal read %d", i)
		}

		if gjson.GetBytes(data, outcomeField).Str != string(outcome) {
			continue
		}

		record := Record{}
		err = j.codec.Decode(data, &record)
		if err != nil {
			return errors.WithMessagef(err, "unmarshal record %d", i)
		}
		if !fn(record) {
			return nil
		}
	}
	return nil
}

func (j *Journal) Close() error {
	err := j.log.Close()
	if err != nil {
		return errors.WithMessage(err, "journal close")
	}
	return nil
}
