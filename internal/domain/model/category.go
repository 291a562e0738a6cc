package model

// Category groups products into a tree. ParentID is nil for root categories.
type Category struct {
	ID       int64
	Title    string
	ParentID *int64
	Image    Image
}
