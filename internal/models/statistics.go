package models

import (
	"bytes"
	"time"

	"github.com/segmentio/encoding/json"
)

// StatusCounts holds per reading status counts taken from one aggregate query.
type StatusCounts struct {
	WantToRead       int `json:"wantToRead"`
	CurrentlyReading int `json:"currentlyReading"`
	Finished         int `json:"finished"`
}

// GenreCount is the number of books carrying one genre.
type GenreCount struct {
	Genre string `db:"genre"`
	Count int    `db:"count"`
}

// GenreCounts is ordered by count descending and encodes as a JSON object
// whose keys keep that order.
type GenreCounts []GenreCount

// MarshalJSON encodes the counts as {"genre": count, ...}.
func (g GenreCounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, gc := range g {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(gc.Genre)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(gc.Count)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// RecentBook is the reduced projection used by the "recently added" list.
type RecentBook struct {
	BookID    int64     `json:"book_id" db:"book_id"`
	Title     string    `json:"title" db:"title"`
	Author    string    `json:"author" db:"author"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Statistics summarizes a user's collection at one point in time.
// AverageRating is nil when no book carries a rating.
type Statistics struct {
	TotalBooks    int          `json:"totalBooks"`
	ByStatus      StatusCounts `json:"byStatus"`
	ByGenre       GenreCounts  `json:"byGenre"`
	AverageRating *float64     `json:"averageRating"`
	RatedBooks    int          `json:"ratedBooks"`
	RecentlyAdded []RecentBook `json:"recentlyAdded"`
}

// StatisticsSummary is the status-only digest merged into list responses.
type StatisticsSummary struct {
	TotalBooks       int `json:"totalBooks"`
	WantToRead       int `json:"wantToRead"`
	CurrentlyReading int `json:"currentlyReading"`
	Finished         int `json:"finished"`
}

// Summary returns the status digest of s.
func (s *Statistics) Summary() StatisticsSummary {
	return StatisticsSummary{
		TotalBooks:       s.TotalBooks,
		WantToRead:       s.ByStatus.WantToRead,
		CurrentlyReading: s.ByStatus.CurrentlyReading,
		Finished:         s.ByStatus.Finished,
	}
}
