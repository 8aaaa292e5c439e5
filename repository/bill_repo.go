package repository

import (
	"context"
	"errors"
	"log"

	"github.com/thedailylaw/dailylaw-be/types"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// BillUpdate is the set of fields rewritten together when drift is detected.
// They go to storage as a single partial update so a bill's status and its
// appended notice never diverge.
type BillUpdate struct {
	UpdateDate   string
	LatestAction *types.LatestAction
	MarkdownBody string
	LastUpdated  int64
}

type BillRepo interface {
	ExistsByBillID(ctx context.Context, billID string) (bool, error)
	Insert(ctx context.Context, bill *types.BillRecord) error
	GetByBillID(ctx context.Context, billID string) (*types.BillRecord, error)
	GetBySlug(ctx context.Context, slug string) (*types.BillRecord, error)
	ListStatusFields(ctx context.Context) ([]types.StoredBillStatus, error)
	ListByBodyMarker(ctx context.Context, marker string) ([]*types.BillRecord, error)
	ApplyUpdate(ctx context.Context, billID string, update BillUpdate) error
	UpdateContent(ctx context.Context, billID string, content *types.ArticleContent, lastUpdated int64) error
	Paginate(ctx context.Context, page, limit int64) ([]*types.BillRecord, int64, error)
}

type billRepo struct {
	collection *mongo.Collection
}

func NewBillRepo(db *mongo.Database) BillRepo {
	collection := db.Collection("legislation")

	// Unique indexes on bill_id and url_slug are the storage-layer backstop
	// against duplicate inserts when overlapping runs race the
	// check-then-insert in the orchestrator.
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "bill_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "url_slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "origin_chamber", Value: 1}, {Key: "created_at", Value: -1}},
		},
	}
	if _, err := collection.Indexes().CreateMany(context.Background(), indexes); err != nil {
		log.Printf("Error creating legislation indexes: %v", err)
	}

	return &billRepo{
		collection: collection,
	}
}

func (r *billRepo) ExistsByBillID(ctx context.Context, billID string) (bool, error) {
	err := r.collection.FindOne(ctx, bson.M{"bill_id": billID},
		options.FindOne().SetProjection(bson.M{"bill_id": 1})).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *billRepo) Insert(ctx context.Context, bill *types.BillRecord) error {
	_, err := r.collection.InsertOne(ctx, bill)
	return err
}

func (r *billRepo) GetByBillID(ctx context.Context, billID string) (*types.BillRecord, error) {
	var bill types.BillRecord
	err := r.collection.FindOne(ctx, bson.M{"bill_id": billID}).Decode(&bill)
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

func (r *billRepo) GetBySlug(ctx context.Context, slug string) (*types.BillRecord, error) {
	var bill types.BillRecord
	err := r.collection.FindOne(ctx, bson.M{"url_slug": slug}).Decode(&bill)
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

func (r *billRepo) ListStatusFields(ctx context.Context) ([]types.StoredBillStatus, error) {
	projection := bson.M{
		"bill_id":        1,
		"title":          1,
		"origin_chamber": 1,
		"update_date":    1,
		"latest_action":  1,
		"markdown_body":  1,
	}
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetProjection(projection))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bills []types.StoredBillStatus
	for cursor.Next(ctx) {
		var bill types.StoredBillStatus
		if err := cursor.Decode(&bill); err != nil {
			return nil, err
		}
		bills = append(bills, bill)
	}
	return bills, cursor.Err()
}

func (r *billRepo) ListByBodyMarker(ctx context.Context, marker string) ([]*types.BillRecord, error) {
	filter := bson.M{"markdown_body": bson.M{"$regex": marker}}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bills []*types.BillRecord
	for cursor.Next(ctx) {
		var bill types.BillRecord
		if err := cursor.Decode(&bill); err != nil {
			return nil, err
		}
		bills = append(bills, &bill)
	}
	return bills, cursor.Err()
}

func (r *billRepo) ApplyUpdate(ctx context.Context, billID string, update BillUpdate) error {
	fields := bson.M{
		"update_date":   update.UpdateDate,
		"markdown_body": update.MarkdownBody,
		"last_updated":  update.LastUpdated,
	}
	if update.LatestAction != nil {
		fields["latest_action"] = update.LatestAction
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"bill_id": billID}, bson.M{"$set": fields})
	return err
}

func (r *billRepo) UpdateContent(ctx context.Context, billID string, content *types.ArticleContent, lastUpdated int64) error {
	fields := bson.M{
		"title":            content.Title,
		"seo_title":        content.SEOTitle,
		"meta_description": content.MetaDescription,
		"markdown_body":    content.MarkdownBody,
		"tldr":             content.TLDR,
		"keywords":         content.Keywords,
		"last_updated":     lastUpdated,
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"bill_id": billID}, bson.M{"$set": fields})
	return err
}

func (r *billRepo) Paginate(ctx context.Context, page, limit int64) ([]*types.BillRecord, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var bills []*types.BillRecord
	for cursor.Next(ctx) {
		var bill types.BillRecord
		if err := cursor.Decode(&bill); err != nil {
			return nil, 0, err
		}
		bills = append(bills, &bill)
	}
	return bills, total, cursor.Err()
}
