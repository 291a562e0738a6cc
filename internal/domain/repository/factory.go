package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Products() ProductRepository
	Categories() CategoryRepository
	Tags() TagRepository
	Reviews() ReviewRepository
	Orders() OrderRepository
}
