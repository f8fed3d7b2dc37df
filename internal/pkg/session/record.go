package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

var ErrMalformedRecord = errors.New("malformed session record")

// Record 存储在 Redis 中的会话，唯一的序列化格式为 JSON
type Record struct {
	SessionID      string    `json:"session_id"`
	UserID         uint64    `json:"user_id"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	LastAccessedAt time.Time `json:"last_accessed_at"`
}

func Encode(r *Record) ([]byte, error) {
	return json.Marshal(r)
}

func Decode(data []byte) (*Record, error) {
	r := &Record{}
	if err := json.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if r.SessionID == "" || r.UserID == 0 {
		return nil, ErrMalformedRecord
	}
	return r, nil
}
