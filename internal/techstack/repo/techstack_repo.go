package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vkportfolio/service-core-go/internal/techstack/entity"
)

const collectionName = "techstacks"

// Repo is the tech-stack repository backed by MongoDB.
type Repo struct {
	coll *mongo.Collection
}

func NewRepo(db *mongo.Database) *Repo {
	return &Repo{coll: db.Collection(collectionName)}
}

// EnsureIndexes ensures the category index exists.
func (r *Repo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "category", Value: 1}},
	})
	return err
}

// List returns entries filtered by category (optional) sorted by display
// order, with pagination.
func (r *Repo) List(ctx context.Context, category string, limit, offset int) ([]*entity.TechStack, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "order", Value: 1}, {Key: "createdAt", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []*entity.TechStack{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) GetByID(ctx context.Context, id string) (*entity.TechStack, error) {
	var ts entity.TechStack
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&ts); err != nil {
		return nil, err
	}
	return &ts, nil
}

func (r *Repo) Create(ctx context.Context, ts *entity.TechStack) error {
	_, err := r.coll.InsertOne(ctx, ts)
	return err
}

// Update replaces the stored document. Returns the number of matched
// documents so the service can distinguish a missing entry.
func (r *Repo) Update(ctx context.Context, ts *entity.TechStack) (int64, error) {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": ts.ID}, ts)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (r *Repo) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
