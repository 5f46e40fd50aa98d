package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"goban/internal/domain/game"
	errs "goban/internal/errors"
)

const matchesCollection = "matches"

type MongoMatchStorage struct {
	mongo   *mongo.Database
	log     *zap.SugaredLogger
	timeout time.Duration
}

func NewMongoMatchStorage(db *mongo.Database, log *zap.SugaredLogger, timeout time.Duration) *MongoMatchStorage {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &MongoMatchStorage{mongo: db, log: log, timeout: timeout}
}

// SaveMatch перезаписывает документ партии целиком (upsert по _id).
func (m *MongoMatchStorage) SaveMatch(ctx context.Context, match game.Match) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	collection := m.mongo.Collection(matchesCollection)
	filter := bson.M{"_id": match.ID}
	opts := options.Replace().SetUpsert(true)

	if _, err := collection.ReplaceOne(ctx, filter, match, opts); err != nil {
		m.log.Errorw("failed to save match", "match", match.ID, "error", err)
		return fmt.Errorf("save match %s: %w", match.ID, err)
	}
	return nil
}

func (m *MongoMatchStorage) GetMatch(ctx context.Context, id string) (game.Match, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	collection := m.mongo.Collection(matchesCollection)
	var match game.Match
	err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(&match)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return game.Match{}, errs.ErrMatchNotFound
	}
	if err != nil {
		m.log.Errorw("failed to load match", "match", id, "error", err)
		return game.Match{}, fmt.Errorf("load match %s: %w", id, err)
	}
	return match, nil
}
