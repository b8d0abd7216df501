package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Gangulr/finace/internal/models"
	"github.com/Gangulr/finace/internal/uuid"
)

// Collection names.
const (
	BudgetsCollection  = "budgets"
	ExpensesCollection = "expenses"
	IncomesCollection  = "incomes"
	UsersCollection    = "users"
)

// MongoStore is a Store backed by a MongoDB collection.
type MongoStore[T any, PT recordPtr[T]] struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoStore creates a MongoStore over coll.
func NewMongoStore[T any, PT recordPtr[T]](coll *mongo.Collection) *MongoStore[T, PT] {
	return &MongoStore[T, PT]{coll: coll, now: time.Now}
}

// NewMongoSet wires every store to its collection in db.
func NewMongoSet(db *mongo.Database) Set {
	return Set{
		Budgets:  NewMongoStore[models.Budget](db.Collection(BudgetsCollection)),
		Expenses: NewMongoStore[models.Expense](db.Collection(ExpensesCollection)),
		Incomes:  NewMongoStore[models.Income](db.Collection(IncomesCollection)),
		Users:    NewMongoUserStore(db.Collection(UsersCollection)),
	}
}

// EnsureIndexes creates the owner index on every record collection and the
// unique email index on users.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	owner := mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: 1}},
	}
	for _, name := range []string{BudgetsCollection, ExpensesCollection, IncomesCollection} {
		if _, err := db.Collection(name).Indexes().CreateOne(ctx, owner); err != nil {
			return fmt.Errorf("index %s: %w", name, err)
		}
	}

	email := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := db.Collection(UsersCollection).Indexes().CreateOne(ctx, email); err != nil {
		return fmt.Errorf("index %s: %w", UsersCollection, err)
	}
	return nil
}

// Create inserts rec and fills in its id and timestamps.
func (s *MongoStore[T, PT]) Create(ctx context.Context, rec *T) error {
	p := PT(rec)
	if p.RecordID() == "" {
		p.AssignID(uuid.New())
	}
	p.Stamp(s.now().UTC())
	if _, err := s.coll.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("insert: %w", err)
	}
	return nil
}

// ListByUser returns the owner's records in insertion order.
func (s *MongoStore[T, PT]) ListByUser(ctx context.Context, userID string, opts ListOptions) ([]T, int64, error) {
	filter := ownerFilter(userID, opts.Category)

	total, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count: %w", err)
	}

	find := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	if opts.Page.Enabled() {
		page := opts.Page
		page.Defaults()
		find.SetSkip(int64(page.Offset())).SetLimit(int64(page.PageSize))
	}

	cur, err := s.coll.Find(ctx, filter, find)
	if err != nil {
		return nil, 0, fmt.Errorf("list: %w", err)
	}
	records := []T{}
	if err := cur.All(ctx, &records); err != nil {
		return nil, 0, fmt.Errorf("decode: %w", err)
	}
	return records, total, nil
}

// GetByID loads one record.
func (s *MongoStore[T, PT]) GetByID(ctx context.Context, id string) (*T, error) {
	var rec T
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get: %w", err)
	}
	return &rec, nil
}

// UpdateByID overwrites every mutable field of the document with id.
func (s *MongoStore[T, PT]) UpdateByID(ctx context.Context, id string, rec *T) error {
	p := PT(rec)
	p.AssignID(id)
	p.Stamp(s.now().UTC())

	set, err := setDocument(rec)
	if err != nil {
		return err
	}
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByID removes the document permanently.
func (s *MongoStore[T, PT]) DeleteByID(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func ownerFilter(userID, category string) bson.M {
	filter := bson.M{"user_id": userID}
	if category != "" {
		filter["category"] = bson.M{"$regex": regexp.QuoteMeta(category), "$options": "i"}
	}
	return filter
}

// setDocument encodes rec as a $set payload without the immutable fields.
func setDocument(rec any) (bson.M, error) {
	raw, err := bson.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	delete(doc, "_id")
	delete(doc, "created_at")
	return doc, nil
}

// MongoUserStore keeps users in a MongoDB collection with a unique email index.
type MongoUserStore struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoUserStore creates a MongoUserStore over coll.
func NewMongoUserStore(coll *mongo.Collection) *MongoUserStore {
	return &MongoUserStore{coll: coll, now: time.Now}
}

// CreateUser inserts user, rejecting an email that is already registered.
func (s *MongoUserStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New()
	}
	user.Stamp(s.now().UTC())
	if _, err := s.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// FindUserByEmail loads the user registered with email.
func (s *MongoUserStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"email": email})
}

// FindUserByID loads the user with id.
func (s *MongoUserStore) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"_id": id})
}

func (s *MongoUserStore) findUser(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	if err := s.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}
