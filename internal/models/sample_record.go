package models

import (
	"fmt"
	"strings"
	"time"
)

// SampleRecord is the row type the CLI writes when exercising a set of
// writer options. Optional fields use pointers and ',optional'.
type SampleRecord struct {
	ID        int64    `parquet:"id"`
	Name      string   `parquet:"name"`
	Payload   string   `parquet:"payload"`
	Tags      []string `parquet:"tags,list"`
	Score     *float64 `parquet:"score,optional"`
	CreatedAt int64    `parquet:"created_at"` // unix millis
}

// GenerateSampleRecords builds n records whose payload is payloadSize bytes.
func GenerateSampleRecords(n, payloadSize int, now time.Time) []SampleRecord {
	records := make([]SampleRecord, 0, n)
	payload := strings.Repeat("x", payloadSize)

	for i := 0; i < n; i++ {
		rec := SampleRecord{
			ID:        int64(i),
			Name:      fmt.Sprintf("record-%06d", i),
			Payload:   payload,
			Tags:      []string{"sample"},
			CreatedAt: now.Add(time.Duration(i) * time.Millisecond).UnixMilli(),
		}
		if i%2 == 0 {
			score := float64(i) / 2
			rec.Score = &score
		}
		records = append(records, rec)
	}
	return records
}
