package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SiteStatus reports how a single site's pipeline went for one query.
// An empty Err with Count 0 means the page was fetched but nothing usable was found.
type SiteStatus struct {
	Site    string `json:"site" bson:"site"`
	Count   int    `json:"count" bson:"count"`
	Err     string `json:"error,omitempty" bson:"error,omitempty"`
	Elapsed int64  `json:"elapsed_ms" bson:"elapsed_ms"`
}

// Failed reports whether the site's fetch failed
func (s SiteStatus) Failed() bool {
	return s.Err != ""
}

// SearchRecord is one entry of the search history log
type SearchRecord struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	RequestID string             `json:"request_id" bson:"request_id"`
	Query     string             `json:"query" bson:"query"`
	Statuses  []SiteStatus       `json:"statuses" bson:"statuses"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
