package model

import "time"

// Review is a user opinion about a product. Rate is expected in 1..5.
type Review struct {
	ID        int64
	AuthorID  int64
	ProductID int64
	Author    string
	Email     string
	Text      string
	Rate      int
	Date      time.Time
}
