package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/megano/internal/domain/errors"
	"github.com/polkiloo/megano/internal/domain/model"
	"github.com/polkiloo/megano/internal/domain/repository"
)

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   Pool
	logger *slog.Logger
}

// Pool abstracts pgxpool.Pool for tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

type userRepository struct {
	storage *Storage
}

type productRepository struct {
	storage *Storage
}

type categoryRepository struct {
	storage *Storage
}

type tagRepository struct {
	storage *Storage
}

type reviewRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{storage: s}
}

func (s *Storage) Categories() repository.CategoryRepository {
	return &categoryRepository{storage: s}
}

func (s *Storage) Tags() repository.TagRepository {
	return &tagRepository{storage: s}
}

func (s *Storage) Reviews() repository.ReviewRepository {
	return &reviewRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            username TEXT UNIQUE NOT NULL,
            first_name TEXT NOT NULL DEFAULT '',
            password_hash TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS profiles (
            user_id BIGINT PRIMARY KEY REFERENCES users(id),
            full_name TEXT NOT NULL DEFAULT '',
            email TEXT NOT NULL DEFAULT '',
            phone TEXT NOT NULL DEFAULT ''
        )`,
		`CREATE TABLE IF NOT EXISTS categories (
            id SERIAL PRIMARY KEY,
            title TEXT NOT NULL,
            parent_id BIGINT REFERENCES categories(id),
            image_src TEXT NOT NULL DEFAULT '',
            image_alt TEXT NOT NULL DEFAULT ''
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            id SERIAL PRIMARY KEY,
            title TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            full_description TEXT NOT NULL DEFAULT '',
            price NUMERIC(8,2) NOT NULL DEFAULT 0,
            count INTEGER NOT NULL DEFAULT 0,
            free_delivery BOOLEAN NOT NULL DEFAULT FALSE,
            category_id BIGINT REFERENCES categories(id),
            rating DOUBLE PRECISION NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS product_images (
            id SERIAL PRIMARY KEY,
            product_id BIGINT NOT NULL REFERENCES products(id),
            src TEXT NOT NULL,
            alt TEXT NOT NULL DEFAULT ''
        )`,
		`CREATE TABLE IF NOT EXISTS tags (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS product_tags (
            product_id BIGINT NOT NULL REFERENCES products(id),
            tag_id BIGINT NOT NULL REFERENCES tags(id),
            PRIMARY KEY (product_id, tag_id)
        )`,
		`CREATE TABLE IF NOT EXISTS specifications (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            value TEXT NOT NULL DEFAULT ''
        )`,
		`CREATE TABLE IF NOT EXISTS product_specifications (
            product_id BIGINT NOT NULL REFERENCES products(id),
            specification_id BIGINT NOT NULL REFERENCES specifications(id),
            PRIMARY KEY (product_id, specification_id)
        )`,
		`CREATE TABLE IF NOT EXISTS reviews (
            id SERIAL PRIMARY KEY,
            author_id BIGINT NOT NULL REFERENCES users(id),
            product_id BIGINT NOT NULL REFERENCES products(id),
            text TEXT NOT NULL DEFAULT '',
            rate SMALLINT NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS sales (
            product_id BIGINT PRIMARY KEY REFERENCES products(id),
            date_from TIMESTAMPTZ NOT NULL,
            date_to TIMESTAMPTZ NOT NULL,
            discount SMALLINT NOT NULL DEFAULT 0
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            delivery_type TEXT NOT NULL DEFAULT '',
            payment_type TEXT NOT NULL DEFAULT '',
            total_cost NUMERIC(10,2) NOT NULL DEFAULT 0,
            status TEXT NOT NULL,
            city TEXT NOT NULL DEFAULT '',
            address TEXT NOT NULL DEFAULT ''
        )`,
		`CREATE TABLE IF NOT EXISTS order_products (
            order_id BIGINT NOT NULL REFERENCES orders(id),
            product_id BIGINT NOT NULL REFERENCES products(id),
            PRIMARY KEY (order_id, product_id)
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            product_id BIGINT NOT NULL REFERENCES products(id),
            price NUMERIC(8,2) NOT NULL DEFAULT 0,
            count INTEGER NOT NULL DEFAULT 0
        )`,
		`CREATE TABLE IF NOT EXISTS payments (
            order_id BIGINT PRIMARY KEY REFERENCES orders(id),
            name TEXT NOT NULL,
            number BIGINT NOT NULL,
            year INTEGER NOT NULL,
            code INTEGER NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id)`,
		`CREATE INDEX IF NOT EXISTS idx_reviews_product ON reviews(product_id)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, username, firstName, passwordHash string) (*model.User, error) {
	const query = `INSERT INTO users (username, first_name, password_hash) VALUES ($1, $2, $3) RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, username, firstName, passwordHash).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}

	// Registration creates an empty profile alongside the user.
	const profileQuery = `INSERT INTO profiles (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`
	if _, err := r.storage.pool.Exec(ctx, profileQuery, u.ID); err != nil {
		return nil, err
	}

	u.Username = username
	u.FirstName = firstName
	u.PasswordHash = passwordHash
	return &u, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	const query = `SELECT id, username, first_name, password_hash, created_at FROM users WHERE username=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, username).Scan(&u.ID, &u.Username, &u.FirstName, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, username, first_name, password_hash, created_at FROM users WHERE id=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Username, &u.FirstName, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	const query = `UPDATE users SET password_hash=$1 WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, passwordHash, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *userRepository) GetProfile(ctx context.Context, userID int64) (*model.Profile, error) {
	const query = `SELECT user_id, full_name, email, phone FROM profiles WHERE user_id=$1`
	var p model.Profile
	err := r.storage.pool.QueryRow(ctx, query, userID).Scan(&p.UserID, &p.FullName, &p.Email, &p.Phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, profile model.Profile) error {
	const query = `INSERT INTO profiles (user_id, full_name, email, phone)
                   VALUES ($1, $2, $3, $4)
                   ON CONFLICT (user_id) DO UPDATE
                   SET full_name = EXCLUDED.full_name,
                       email = EXCLUDED.email,
                       phone = EXCLUDED.phone`
	_, err := r.storage.pool.Exec(ctx, query, profile.UserID, profile.FullName, profile.Email, profile.Phone)
	return err
}

// --- ProductRepository implementation ---

const productColumns = `p.id, p.title, p.description, p.full_description, p.price, p.count,
                        p.free_delivery, p.category_id, p.rating, p.created_at,
                        (SELECT COUNT(*) FROM reviews rv WHERE rv.product_id = p.id) AS review_count`

func (r *productRepository) ListAll(ctx context.Context) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p ORDER BY p.id`
	return r.queryProducts(ctx, query)
}

func (r *productRepository) ListByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}
	query := `SELECT ` + productColumns + ` FROM products p WHERE p.id = ANY($1) ORDER BY p.id`
	return r.queryProducts(ctx, query, ids)
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p WHERE p.id=$1`
	products, err := r.queryProducts(ctx, query, id)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, domainErrors.ErrNotFound
	}
	return &products[0], nil
}

func (r *productRepository) GetDetail(ctx context.Context, id int64) (*model.ProductDetail, error) {
	product, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &model.ProductDetail{Product: *product}

	const specQuery = `SELECT s.id, s.name, s.value
                       FROM specifications s
                       JOIN product_specifications ps ON ps.specification_id = s.id
                       WHERE ps.product_id = $1
                       ORDER BY s.id`
	rows, err := r.storage.pool.Query(ctx, specQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var spec model.Specification
		if err := rows.Scan(&spec.ID, &spec.Name, &spec.Value); err != nil {
			return nil, err
		}
		detail.Specifications = append(detail.Specifications, spec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const reviewQuery = `SELECT r.id, r.author_id, r.product_id, pr.full_name, pr.email, r.text, r.rate, r.created_at
                         FROM reviews r
                         JOIN profiles pr ON pr.user_id = r.author_id
                         WHERE r.product_id = $1
                         ORDER BY r.created_at`
	reviewRows, err := r.storage.pool.Query(ctx, reviewQuery, id)
	if err != nil {
		return nil, err
	}
	defer reviewRows.Close()
	for reviewRows.Next() {
		var review model.Review
		if err := reviewRows.Scan(&review.ID, &review.AuthorID, &review.ProductID, &review.Author, &review.Email, &review.Text, &review.Rate, &review.Date); err != nil {
			return nil, err
		}
		detail.Reviews = append(detail.Reviews, review)
	}
	if err := reviewRows.Err(); err != nil {
		return nil, err
	}

	return detail, nil
}

func (r *productRepository) ListOnSale(ctx context.Context) ([]model.SaleProduct, error) {
	const query = `SELECT p.id, p.title, p.price, s.date_from, s.date_to, s.discount
                   FROM products p
                   JOIN sales s ON s.product_id = p.id
                   ORDER BY p.id`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.SaleProduct
	for rows.Next() {
		var sp model.SaleProduct
		if err := rows.Scan(&sp.ID, &sp.Title, &sp.Price, &sp.Sale.DateFrom, &sp.Sale.DateTo, &sp.Sale.Discount); err != nil {
			return nil, err
		}
		sp.Sale.ProductID = sp.ID
		result = append(result, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachSaleImages(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *productRepository) UpdateRating(ctx context.Context, id int64, rating float64) error {
	const query = `UPDATE products SET rating=$1 WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, rating, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args ...any) ([]model.Product, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.FullDescription, &p.Price, &p.Count,
			&p.FreeDelivery, &p.CategoryID, &p.Rating, &p.Date, &p.ReviewCount); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachTags(ctx, result); err != nil {
		return nil, err
	}
	if err := r.attachImages(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *productRepository) attachTags(ctx context.Context, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := productIDs(products)
	const query = `SELECT pt.product_id, t.id, t.name
                   FROM product_tags pt
                   JOIN tags t ON t.id = pt.tag_id
                   WHERE pt.product_id = ANY($1)
                   ORDER BY t.id`
	rows, err := r.storage.pool.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	tagged := make(map[int64][]model.Tag, len(products))
	for rows.Next() {
		var productID int64
		var tag model.Tag
		if err := rows.Scan(&productID, &tag.ID, &tag.Name); err != nil {
			return err
		}
		tagged[productID] = append(tagged[productID], tag)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range products {
		products[i].Tags = tagged[products[i].ID]
	}
	return nil
}

func (r *productRepository) attachImages(ctx context.Context, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := productIDs(products)
	const query = `SELECT product_id, src, alt FROM product_images WHERE product_id = ANY($1) ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	images := make(map[int64][]model.Image, len(products))
	for rows.Next() {
		var productID int64
		var img model.Image
		if err := rows.Scan(&productID, &img.Src, &img.Alt); err != nil {
			return err
		}
		images[productID] = append(images[productID], img)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range products {
		products[i].Images = images[products[i].ID]
	}
	return nil
}

func (r *productRepository) attachSaleImages(ctx context.Context, products []model.SaleProduct) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	const query = `SELECT product_id, src, alt FROM product_images WHERE product_id = ANY($1) ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	images := make(map[int64][]model.Image, len(products))
	for rows.Next() {
		var productID int64
		var img model.Image
		if err := rows.Scan(&productID, &img.Src, &img.Alt); err != nil {
			return err
		}
		images[productID] = append(images[productID], img)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range products {
		products[i].Images = images[products[i].ID]
	}
	return nil
}

func productIDs(products []model.Product) []int64 {
	ids := make([]int64, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}

// --- CategoryRepository implementation ---

func (r *categoryRepository) ListAll(ctx context.Context) ([]model.Category, error) {
	const query = `SELECT id, title, parent_id, image_src, image_alt FROM categories ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Title, &c.ParentID, &c.Image.Src, &c.Image.Alt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- TagRepository implementation ---

func (r *tagRepository) ListAll(ctx context.Context) ([]model.Tag, error) {
	const query = `SELECT id, name FROM tags ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Tag
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- ReviewRepository implementation ---

func (r *reviewRepository) Create(ctx context.Context, review model.Review) (*model.Review, error) {
	const query = `INSERT INTO reviews (author_id, product_id, text, rate)
                   VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	stored := review
	err := r.storage.pool.QueryRow(ctx, query, review.AuthorID, review.ProductID, review.Text, review.Rate).
		Scan(&stored.ID, &stored.Date)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &stored, nil
}

func (r *reviewRepository) ListByProduct(ctx context.Context, productID int64) ([]model.Review, error) {
	const query = `SELECT r.id, r.author_id, r.product_id, pr.full_name, pr.email, r.text, r.rate, r.created_at
                   FROM reviews r
                   JOIN profiles pr ON pr.user_id = r.author_id
                   WHERE r.product_id = $1
                   ORDER BY r.created_at`
	rows, err := r.storage.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Review
	for rows.Next() {
		var review model.Review
		if err := rows.Scan(&review.ID, &review.AuthorID, &review.ProductID, &review.Author, &review.Email, &review.Text, &review.Rate, &review.Date); err != nil {
			return nil, err
		}
		result = append(result, review)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *reviewRepository) AverageRate(ctx context.Context, productID int64) (float64, error) {
	const query = `SELECT COALESCE(AVG(rate), 0) FROM reviews WHERE product_id=$1`
	var avg float64
	if err := r.storage.pool.QueryRow(ctx, query, productID).Scan(&avg); err != nil {
		return 0, err
	}
	return avg, nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) Create(ctx context.Context, userID int64, totalCost decimal.Decimal, productIDs []int64) (*model.Order, error) {
	var order model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const query = `INSERT INTO orders (user_id, total_cost, status)
                       VALUES ($1, $2, $3) RETURNING id, created_at`
		if err := tx.QueryRow(ctx, query, userID, totalCost, model.OrderStatusInProcess).Scan(&order.ID, &order.CreatedAt); err != nil {
			return err
		}

		const attachQuery = `INSERT INTO order_products (order_id, product_id)
                             VALUES ($1, $2) ON CONFLICT DO NOTHING`
		for _, productID := range productIDs {
			if _, err := tx.Exec(ctx, attachQuery, order.ID, productID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order.UserID = userID
	order.TotalCost = totalCost
	order.Status = model.OrderStatusInProcess
	order.ProductIDs = productIDs
	return &order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	const query = `SELECT id, user_id, created_at, delivery_type, payment_type, total_cost, status, city, address
                   FROM orders WHERE id=$1`
	var o model.Order
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&o.ID, &o.UserID, &o.CreatedAt, &o.DeliveryType,
		&o.PaymentType, &o.TotalCost, &o.Status, &o.City, &o.Address)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	ids, err := r.orderProductIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	o.ProductIDs = ids
	return &o, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	const query = `SELECT id, user_id, created_at, delivery_type, payment_type, total_cost, status, city, address
                   FROM orders WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.CreatedAt, &o.DeliveryType, &o.PaymentType,
			&o.TotalCost, &o.Status, &o.City, &o.Address); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		ids, err := r.orderProductIDs(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].ProductIDs = ids
	}
	return result, nil
}

// Accept runs the whole stock decrement + item snapshot loop inside one
// transaction: a failing line rolls back every preceding decrement.
func (r *orderRepository) Accept(ctx context.Context, orderID int64, details model.AcceptanceDetails) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const decrementQuery = `UPDATE products SET count = count - $1 WHERE id=$2 AND count >= $1`
		const itemQuery = `INSERT INTO order_items (order_id, product_id, price, count) VALUES ($1, $2, $3, $4)`
		const attachQuery = `INSERT INTO order_products (order_id, product_id)
                             VALUES ($1, $2) ON CONFLICT DO NOTHING`

		for _, line := range details.Lines {
			tag, err := tx.Exec(ctx, decrementQuery, line.Count, line.ProductID)
			if err != nil {
				return err
			}
			if tag.RowsAffected() == 0 {
				return domainErrors.ErrInsufficientStock
			}
			if _, err := tx.Exec(ctx, itemQuery, orderID, line.ProductID, line.Price, line.Count); err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, attachQuery, orderID, line.ProductID); err != nil {
				return err
			}
		}

		const updateQuery = `UPDATE orders SET delivery_type=$1, payment_type=$2, city=$3, address=$4, status=$5 WHERE id=$6`
		tag, err := tx.Exec(ctx, updateQuery, details.DeliveryType, details.PaymentType,
			details.City, details.Address, model.OrderStatusAccepted, orderID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}
		return nil
	})
}

func (r *orderRepository) CreatePayment(ctx context.Context, payment model.Payment) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertQuery = `INSERT INTO payments (order_id, name, number, year, code) VALUES ($1, $2, $3, $4, $5)`
		if _, err := tx.Exec(ctx, insertQuery, payment.OrderID, payment.Name, payment.Number, payment.Year, payment.Code); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return domainErrors.ErrAlreadyExists
			}
			return err
		}

		const updateQuery = `UPDATE orders SET status=$1 WHERE id=$2`
		tag, err := tx.Exec(ctx, updateQuery, model.OrderStatusPayed, payment.OrderID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}
		return nil
	})
}

func (r *orderRepository) orderProductIDs(ctx context.Context, orderID int64) ([]int64, error) {
	const query = `SELECT product_id FROM order_products WHERE order_id=$1 ORDER BY product_id`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
