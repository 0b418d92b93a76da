package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vladislavdragonenkov/bookstore/internal/domain"
)

const (
	defaultConnTimeout = 5 * time.Second
	opTimeout          = 5 * time.Second

	booksCollection = "books"
)

// Store оборачивает подключение к MongoDB с каталогом книг.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Open подключается к MongoDB и проверяет доступность базы.
func Open(ctx context.Context, uri, database string) (*Store, error) {
	connCtx, cancel := context.WithTimeout(ctx, defaultConnTimeout)
	defer cancel()

	client, err := mongo.Connect(connCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(connCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &Store{client: client, db: client.Database(database)}, nil
}

// Ping проверяет доступность подключения.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("mongo store is not initialized")
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultConnTimeout)
	defer cancel()
	return s.client.Ping(pingCtx, nil)
}

// Close разрывает подключение к MongoDB.
func (s *Store) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), defaultConnTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// bookDocument — схема документа каталога в коллекции books.
type bookDocument struct {
	ID         string    `bson:"_id"`
	Title      string    `bson:"title"`
	Genres     []string  `bson:"genres"`
	PriceMinor int64     `bson:"price_minor"`
	Stock      int32     `bson:"stock"`
	CreatedAt  time.Time `bson:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at"`
}

func (d bookDocument) toDomain() domain.Book {
	return domain.Book{
		ID:         d.ID,
		Title:      d.Title,
		Genres:     d.Genres,
		PriceMinor: d.PriceMinor,
		Stock:      d.Stock,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

type catalogGateway struct {
	books *mongo.Collection
}

// NewCatalogGateway создаёт Mongo-реализацию CatalogGateway поверх коллекции books.
func NewCatalogGateway(store *Store) domain.CatalogGateway {
	return &catalogGateway{books: store.db.Collection(booksCollection)}
}

// FetchMany возвращает найденные записи; отсутствующие идентификаторы опускаются.
// Пустой вход возвращает пустой результат без обращения к базе.
func (g *catalogGateway) FetchMany(ids []string) ([]domain.Book, error) {
	if len(ids) == 0 {
		return []domain.Book{}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	cursor, err := g.books.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("%w: find books: %v", domain.ErrCatalogUnavailable, err)
	}

	var docs []bookDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: decode books: %v", domain.ErrCatalogUnavailable, err)
	}

	result := make([]domain.Book, 0, len(docs))
	for _, doc := range docs {
		result = append(result, doc.toDomain())
	}
	return result, nil
}

// FetchOne возвращает запись каталога или nil, если книги нет.
func (g *catalogGateway) FetchOne(id string) (*domain.Book, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var doc bookDocument
	err := g.books.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: find book: %v", domain.ErrCatalogUnavailable, err)
	}

	book := doc.toDomain()
	return &book, nil
}

// DefaultBooks возвращает витринную выборку каталога, не больше limit записей.
func (g *catalogGateway) DefaultBooks(limit int) ([]domain.Book, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := g.books.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: find default books: %v", domain.ErrCatalogUnavailable, err)
	}

	var docs []bookDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: decode default books: %v", domain.ErrCatalogUnavailable, err)
	}

	result := make([]domain.Book, 0, len(docs))
	for _, doc := range docs {
		result = append(result, doc.toDomain())
	}
	return result, nil
}

var _ domain.CatalogGateway = (*catalogGateway)(nil)
