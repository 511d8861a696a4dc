package domain

import "time"

// ScScoreItem is one scored entry from the personal score page.
type ScScoreItem struct {
	ActivityID int32     `cbor:"activity_id"`
	Category   string    `cbor:"category"`
	Amount     float64   `cbor:"amount"`
	Time       time.Time `cbor:"time"`
}

// ScScoreSummary aggregates score amounts per category for one account.
type ScScoreSummary struct {
	Total              float64 `cbor:"total"`
	ThemeReport        float64 `cbor:"theme_report"`
	SocialPractice     float64 `cbor:"social_practice"`
	Creativity         float64 `cbor:"creativity"`
	SafetyCivilization float64 `cbor:"safety_civilization"`
	Charity            float64 `cbor:"charity"`
	CampusCulture      float64 `cbor:"campus_culture"`
}

// ScScore bundles the summary with the raw items it was derived from.
type ScScore struct {
	Summary ScScoreSummary `cbor:"summary"`
	Items   []ScScoreItem  `cbor:"items"`
}

// ScActivityItem is one row of the personal activity (sign-up) history.
type ScActivityItem struct {
	ApplyID    int32     `cbor:"apply_id"`
	ActivityID int32     `cbor:"activity_id"`
	Title      string    `cbor:"title"`
	Time       time.Time `cbor:"time"`
	Status     string    `cbor:"status"`
}
