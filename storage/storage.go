// Package storage is an abstraction/utility layer over Redis, used for
// persisting the outcome of terminated jobs (the download history) and
// periodic stats.
package storage

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tubedl/tubedl/job"

	"github.com/go-redis/redis"
)

const (
	// Each terminated job has a corresponding Redis Hash named in the
	// form "<RecordKeyPrefix><job-id>"
	RecordKeyPrefix = "record:"

	// HistoryKey is a ZSET of job IDs scored by their completion time.
	HistoryKey = "history"

	// Prefix for stats related entries
	statsPrefix = "stats"

	// historyCap bounds how many records are retained. Older records
	// are evicted together with their hashes.
	historyCap = 100
)

// ErrNotFound is returned by GetRecord when the requested record is not in
// Redis.
var ErrNotFound = errors.New("Not Found")

// Storage wraps a redis.Client instance.
type Storage struct {
	Redis *redis.Client
}

// New returns a new Storage that can communicate with Redis. If Redis
// is not up an error will be returned.
func New(r *redis.Client) (*Storage, error) {
	if ping := r.Ping(); ping.Err() != nil || ping.Val() != "PONG" {
		if ping.Err() != nil {
			return nil, fmt.Errorf("Could not ping Redis Server successfully: %v", ping.Err())
		}
		return nil, fmt.Errorf("Could not ping Redis Server successfully: Expected PONG, received %s", ping.Val())
	}

	return &Storage{Redis: r}, nil
}

// AddRecord persists r and pushes it onto the history set, evicting the
// oldest records beyond the history cap.
func (s *Storage) AddRecord(r *job.Record) error {
	err := s.Redis.HMSet(RecordKeyPrefix+r.JobID, recordToMap(r)).Err()
	if err != nil {
		return err
	}

	z := redis.Z{
		Member: r.JobID,
		Score:  float64(r.FinishedAt.Unix()),
	}
	if err := s.Redis.ZAdd(HistoryKey, z).Err(); err != nil {
		return err
	}

	return s.trimHistory()
}

// GetRecord fetches the record with the given job id from Redis.
func (s *Storage) GetRecord(id string) (job.Record, error) {
	val, err := s.Redis.HGetAll(RecordKeyPrefix + id).Result()
	if err != nil {
		return job.Record{}, err
	}

	if v, ok := val["JobID"]; !ok || v == "" {
		return job.Record{}, ErrNotFound
	}

	return recordFromMap(val)
}

// RemoveRecord removes the record key from Redis and drops it off the
// history set.
func (s *Storage) RemoveRecord(id string) error {
	if err := s.Redis.ZRem(HistoryKey, id).Err(); err != nil {
		return err
	}
	return s.Redis.Del(RecordKeyPrefix + id).Err()
}

// LatestRecords returns up to n records, most recently finished first.
func (s *Storage) LatestRecords(n int) ([]job.Record, error) {
	if n <= 0 {
		n = historyCap
	}

	ids, err := s.Redis.ZRevRange(HistoryKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}

	records := make([]job.Record, 0, len(ids))
	for _, id := range ids {
		r, err := s.GetRecord(id)
		if err != nil {
			if err == ErrNotFound {
				continue
			}
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

// trimHistory evicts the oldest history entries past historyCap along with
// their record hashes. There is a single history writer so the two-step
// eviction does not race.
func (s *Storage) trimHistory() error {
	count, err := s.Redis.ZCard(HistoryKey).Result()
	if err != nil {
		return err
	}
	overflow := count - historyCap
	if overflow <= 0 {
		return nil
	}

	evicted, err := s.Redis.ZRange(HistoryKey, 0, overflow-1).Result()
	if err != nil {
		return err
	}
	for _, id := range evicted {
		if err := s.Redis.Del(RecordKeyPrefix + id).Err(); err != nil {
			return err
		}
	}
	return s.Redis.ZRemRangeByRank(HistoryKey, 0, overflow-1).Err()
}

func recordToMap(r *job.Record) map[string]interface{} {
	return map[string]interface{}{
		"JobID":      r.JobID,
		"URL":        r.URL,
		"Kind":       string(r.Kind),
		"Quality":    r.Quality,
		"Title":      r.Title,
		"Status":     r.Status,
		"Items":      r.Items,
		"ItemsTotal": r.ItemsTotal,
		"Error":      r.Error,
		"FinishedAt": r.FinishedAt.Unix(),
	}
}

// TODO: This is too fragile. Changing the name of a Record field will break
// this method. Is there a better way?
func recordFromMap(m map[string]string) (job.Record, error) {
	var err error
	r := job.Record{}
	for k, v := range m {
		switch k {
		case "JobID":
			r.JobID = v
		case "URL":
			r.URL = v
		case "Kind":
			r.Kind = job.Kind(v)
		case "Quality":
			r.Quality, err = strconv.Atoi(v)
			if err != nil {
				return r, fmt.Errorf("Could not decode record from map: %v", err)
			}
		case "Title":
			r.Title = v
		case "Status":
			r.Status = job.Status(v)
		case "Items":
			r.Items, err = strconv.Atoi(v)
			if err != nil {
				return r, fmt.Errorf("Could not decode record from map: %v", err)
			}
		case "ItemsTotal":
			r.ItemsTotal, err = strconv.Atoi(v)
			if err != nil {
				return r, fmt.Errorf("Could not decode record from map: %v", err)
			}
		case "Error":
			r.Error = v
		case "FinishedAt":
			sec, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return r, fmt.Errorf("Could not decode record from map: %v", err)
			}
			r.FinishedAt = time.Unix(sec, 0)
		default:
			return r, fmt.Errorf("Field %s with value %s was not found in Record struct", k, v)
		}
	}
	return r, nil
}

// GetStats fetches stats prefixed entries from Redis
func (s *Storage) GetStats(id string) ([]byte, error) {
	getCmd := s.Redis.Get(strings.Join([]string{statsPrefix, id}, ":"))

	if err := getCmd.Err(); err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	return getCmd.Bytes()
}

// SetStats saves stats in Redis
func (s *Storage) SetStats(id, stats string, expiration time.Duration) error {
	return s.Redis.Set(strings.Join([]string{statsPrefix, id}, ":"), stats, expiration).Err()
}
