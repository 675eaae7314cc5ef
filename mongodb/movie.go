package mongodb

import (
	"context"
	"errors"
	"fmt"

	"movietrack/movie"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const DefaultMovieCollection = "movies"

// MovieRepository stores one document per movie. Documents are addressed by
// their "id" field; the driver-assigned _id is never exposed.
type MovieRepository struct {
	collection *mongo.Collection
}

type movieDocument struct {
	ID          string `bson:"id"`
	Title       string `bson:"title"`
	Description string `bson:"description"`
	ReleaseYear int    `bson:"release_year"`
	Watched     bool   `bson:"watched"`
}

func NewMovieRepository(client *mongo.Client, database, collection string) (*MovieRepository, error) {
	if err := validateName("database", database); err != nil {
		return nil, err
	}
	if collection == "" {
		collection = DefaultMovieCollection
	}
	return &MovieRepository{
		collection: client.Database(database).Collection(collection),
	}, nil
}

// EnsureIndexes creates the unique index on id that backs ErrAlreadyExists.
func (r *MovieRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("movie_id_unique"),
	})
	if err != nil {
		return fmt.Errorf("mongodb: create movie indexes: %w", err)
	}
	return nil
}

func (r *MovieRepository) Create(ctx context.Context, m movie.Movie) error {
	if m.ID == "" {
		return movie.ErrMissingID
	}

	_, err := r.collection.InsertOne(ctx, toDocument(m))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return movie.ErrAlreadyExists
		}
		return fmt.Errorf("mongodb: insert movie: %w", err)
	}
	return nil
}

func (r *MovieRepository) GetByID(ctx context.Context, id string) (movie.Movie, bool, error) {
	var doc movieDocument
	err := r.collection.FindOne(ctx, byID(id)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return movie.Movie{}, false, nil
	}
	if err != nil {
		return movie.Movie{}, false, fmt.Errorf("mongodb: find movie: %w", err)
	}
	return doc.toMovie(), true, nil
}

func (r *MovieRepository) GetByTitle(ctx context.Context, title string, page movie.Page) ([]movie.Movie, error) {
	page = page.Normalize()

	cursor, err := r.collection.Find(ctx,
		bson.D{{Key: "title", Value: title}},
		options.Find().SetSkip(int64(page.Skip)).SetLimit(int64(page.Limit)),
	)
	if err != nil {
		return nil, fmt.Errorf("mongodb: find movies by title: %w", err)
	}

	var docs []movieDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongodb: decode movies: %w", err)
	}

	movies := make([]movie.Movie, len(docs))
	for i, doc := range docs {
		movies[i] = doc.toMovie()
	}
	return movies, nil
}

// Update applies the supplied fields with a single $set. A movie that is
// matched but already holds the given values is not an error.
func (r *MovieRepository) Update(ctx context.Context, id string, u movie.Update) error {
	if u.ID != nil {
		return movie.ErrCannotUpdateID
	}

	set := setFields(u)
	if len(set) == 0 {
		n, err := r.collection.CountDocuments(ctx, byID(id), options.Count().SetLimit(1))
		if err != nil {
			return fmt.Errorf("mongodb: count movie: %w", err)
		}
		if n == 0 {
			return movie.ErrNotFound
		}
		return nil
	}

	res, err := r.collection.UpdateOne(ctx, byID(id), bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return fmt.Errorf("mongodb: update movie: %w", err)
	}
	if res.MatchedCount == 0 {
		return movie.ErrNotFound
	}
	return nil
}

func (r *MovieRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.collection.DeleteOne(ctx, byID(id)); err != nil {
		return fmt.Errorf("mongodb: delete movie: %w", err)
	}
	return nil
}

func byID(id string) bson.D {
	return bson.D{{Key: "id", Value: id}}
}

func setFields(u movie.Update) bson.D {
	set := bson.D{}
	if u.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *u.Title})
	}
	if u.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *u.Description})
	}
	if u.ReleaseYear != nil {
		set = append(set, bson.E{Key: "release_year", Value: *u.ReleaseYear})
	}
	if u.Watched != nil {
		set = append(set, bson.E{Key: "watched", Value: *u.Watched})
	}
	return set
}

func toDocument(m movie.Movie) movieDocument {
	return movieDocument{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		ReleaseYear: m.ReleaseYear,
		Watched:     m.Watched,
	}
}

func (d movieDocument) toMovie() movie.Movie {
	return movie.Movie{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		ReleaseYear: d.ReleaseYear,
		Watched:     d.Watched,
	}
}
