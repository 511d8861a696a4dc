package domain

import "time"

// Activity is one row of the public activity list on the second-course
// site.
type Activity struct {
	ID       int32  `cbor:"id"`
	Category int32  `cbor:"category"`
	Title    string `cbor:"title"`
	// StartTime is when the activity itself begins.
	StartTime time.Time `cbor:"start_time"`
	// SignStartTime and SignEndTime bound the sign-up window.
	SignStartTime time.Time `cbor:"sign_start_time"`
	SignEndTime   time.Time `cbor:"sign_end_time"`
}

// ScImage is an image embedded in an activity detail page. OldName is
// the source path as it appears in the document; Content is filled by a
// follow-up fetch when empty.
type ScImage struct {
	OldName string `cbor:"old_name"`
	Content []byte `cbor:"content"`
}

// ActivityDetail is the full record behind one activity id.
type ActivityDetail struct {
	ID            int32     `cbor:"id"`
	Title         string    `cbor:"title"`
	StartTime     time.Time `cbor:"start_time"`
	SignStartTime time.Time `cbor:"sign_start_time"`
	SignEndTime   time.Time `cbor:"sign_end_time"`
	Place         string    `cbor:"place"`
	Duration      string    `cbor:"duration"`
	Manager       string    `cbor:"manager"`
	Contact       string    `cbor:"contact"`
	Organizer     string    `cbor:"organizer"`
	Undertaker    string    `cbor:"undertaker"`
	Description   string    `cbor:"description"`
	Images        []ScImage `cbor:"images"`
}
