package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Orders() OrderRepository
	Quotes() QuoteRepository
	SecurityEvents() SecurityEventRepository
	AdminUsers() AdminUserRepository
}
