// Package mongo stores each board as one MongoDB document with its threads and
// replies embedded.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/itchan-dev/msgboard/shared/domain"
	internal_errors "github.com/itchan-dev/msgboard/shared/errors"
	"github.com/itchan-dev/msgboard/shared/logger"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const boardsCollection = "boards"

type Storage struct {
	client *mongo.Client
	boards *mongo.Collection
}

func New(ctx context.Context, uri, database string) (*Storage, error) {
	logger.Log.Info("connecting to mongo", "database", database)
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	s := &Storage{client: client, boards: client.Database(database).Collection(boardsCollection)}
	if err := s.migrate(ctx); err != nil {
		client.Disconnect(ctx)
		return nil, err
	}
	logger.Log.Info("connected to mongo", "database", database)
	return s, nil
}

// migrate creates the unique name index find-or-create relies on.
func (s *Storage) migrate(ctx context.Context) error {
	_, err := s.boards.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_board_name"),
	})
	if err != nil {
		return fmt.Errorf("failed to create board name index: %w", err)
	}
	return nil
}

// NewObjectId returns a fresh hex ObjectID, the identifier format of this driver.
func NewObjectId() string {
	return bson.NewObjectID().Hex()
}

func (s *Storage) FindBoard(ctx context.Context, name domain.BoardName) (*domain.Board, error) {
	var board domain.Board
	err := s.boards.FindOne(ctx, bson.D{{Key: "name", Value: name}}).Decode(&board)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, internal_errors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find board %q: %w", name, err)
	}
	return &board, nil
}

func (s *Storage) InsertBoard(ctx context.Context, board *domain.Board) error {
	if _, err := s.boards.InsertOne(ctx, board); err != nil {
		return fmt.Errorf("failed to insert board %q: %w", board.Name, err)
	}
	return nil
}

func (s *Storage) FindOrCreateBoard(ctx context.Context, name domain.BoardName, id domain.BoardId) (*domain.Board, error) {
	filter := bson.D{{Key: "name", Value: name}}
	update := bson.D{{Key: "$setOnInsert", Value: bson.D{
		{Key: "_id", Value: id},
		{Key: "threads", Value: bson.A{}},
		{Key: "version", Value: int64(0)},
	}}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var board domain.Board
	err := s.boards.FindOneAndUpdate(ctx, filter, update, opts).Decode(&board)
	if mongo.IsDuplicateKeyError(err) {
		// lost the upsert race on the unique index, the winner's board exists now
		return s.FindBoard(ctx, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to upsert board %q: %w", name, err)
	}
	return &board, nil
}

func (s *Storage) SaveBoard(ctx context.Context, board *domain.Board) error {
	next := *board
	next.Version++

	filter := bson.D{{Key: "_id", Value: board.Id}, {Key: "version", Value: board.Version}}
	res, err := s.boards.ReplaceOne(ctx, filter, &next)
	if err != nil {
		return fmt.Errorf("failed to save board %q: %w", board.Name, err)
	}
	if res.MatchedCount == 0 {
		n, err := s.boards.CountDocuments(ctx, bson.D{{Key: "_id", Value: board.Id}})
		if err != nil {
			return fmt.Errorf("failed to check board %q: %w", board.Name, err)
		}
		if n == 0 {
			return internal_errors.ErrNotFound
		}
		return internal_errors.ErrConflict
	}

	board.Version = next.Version
	return nil
}

func (s *Storage) DeleteAllBoards(ctx context.Context) (int64, error) {
	res, err := s.boards.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to delete boards: %w", err)
	}
	return res.DeletedCount, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
