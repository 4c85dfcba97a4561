package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/y-sudharshan/SheetWise/internal/core/domain"
)

const collectionData = "data"

// BatchRepository stores one document per parsed sheet. A document holds
// the whole sheet, so sheets are bounded by the 16MB BSON document limit.
type BatchRepository struct {
	col *mongo.Collection
}

func NewBatchRepository(db *mongo.Database) *BatchRepository {
	return &BatchRepository{col: db.Collection(collectionData)}
}

type mongoBatch struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	FileID     primitive.ObjectID `bson:"file_id"`
	OwnerID    primitive.ObjectID `bson:"owner_id"`
	SheetName  string             `bson:"sheet_name"`
	SheetIndex int                `bson:"sheet_index"`
	Columns    []string           `bson:"columns"`
	Rows       []bson.M           `bson:"rows"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (m *mongoBatch) toDomain() *domain.DataBatch {
	return &domain.DataBatch{
		ID:         m.ID.Hex(),
		FileID:     m.FileID.Hex(),
		OwnerID:    m.OwnerID.Hex(),
		SheetName:  m.SheetName,
		SheetIndex: m.SheetIndex,
		Columns:    m.Columns,
		Rows:       docsToRows(m.Rows),
		CreatedAt:  m.CreatedAt.UTC(),
	}
}

func (r *BatchRepository) Create(ctx context.Context, b *domain.DataBatch) error {
	fileID, ok := objectID(b.FileID)
	if !ok {
		return fmt.Errorf("insert batch: invalid file id %q", b.FileID)
	}
	ownerID, ok := objectID(b.OwnerID)
	if !ok {
		return fmt.Errorf("insert batch: invalid owner id %q", b.OwnerID)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, mongoBatch{
		FileID:     fileID,
		OwnerID:    ownerID,
		SheetName:  b.SheetName,
		SheetIndex: b.SheetIndex,
		Columns:    b.Columns,
		Rows:       rowsToDocs(b.Rows),
		CreatedAt:  b.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("insert batch %q: %w", b.SheetName, err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		b.ID = oid.Hex()
	}
	return nil
}

func (r *BatchRepository) FindByID(ctx context.Context, id string) (*domain.DataBatch, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrDataNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid}, nil)
}

// FindPrimary returns the lowest-indexed sheet of fileID.
func (r *BatchRepository) FindPrimary(ctx context.Context, fileID string) (*domain.DataBatch, error) {
	oid, ok := objectID(fileID)
	if !ok {
		return nil, domain.ErrDataNotFound
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "sheet_index", Value: 1}})
	return r.findOne(ctx, bson.M{"file_id": oid}, opts)
}

func (r *BatchRepository) findOne(ctx context.Context, filter bson.M, opts *options.FindOneOptions) (*domain.DataBatch, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if opts == nil {
		opts = options.FindOne()
	}

	var mb mongoBatch
	if err := r.col.FindOne(ctx, filter, opts).Decode(&mb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDataNotFound
		}
		return nil, fmt.Errorf("find batch: %w", err)
	}
	return mb.toDomain(), nil
}

type mongoSummary struct {
	ID          primitive.ObjectID `bson:"_id"`
	SheetName   string             `bson:"sheet_name"`
	RecordCount int                `bson:"record_count"`
}

// Summaries counts rows server side so the row arrays never leave MongoDB.
func (r *BatchRepository) Summaries(ctx context.Context, fileID string) ([]domain.BatchSummary, error) {
	oid, ok := objectID(fileID)
	if !ok {
		return []domain.BatchSummary{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"file_id": oid}}},
		{{Key: "$sort", Value: bson.D{{Key: "sheet_index", Value: 1}}}},
		{{Key: "$project", Value: bson.M{
			"sheet_name":   1,
			"record_count": bson.M{"$size": bson.M{"$ifNull": bson.A{"$rows", bson.A{}}}},
		}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("summarize batches: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoSummary
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode summaries: %w", err)
	}

	out := make([]domain.BatchSummary, len(docs))
	for i, d := range docs {
		out[i] = domain.BatchSummary{DataID: d.ID.Hex(), SheetName: d.SheetName, RecordCount: d.RecordCount}
	}
	return out, nil
}

func (r *BatchRepository) DeleteByFile(ctx context.Context, fileID string) (int64, error) {
	oid, ok := objectID(fileID)
	if !ok {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"file_id": oid})
	if err != nil {
		return 0, fmt.Errorf("delete batches: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *BatchRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "file_id", Value: 1}, {Key: "sheet_index", Value: 1}}},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
	})
	return err
}

func rowsToDocs(rows []domain.Row) []bson.M {
	docs := make([]bson.M, len(rows))
	for i, row := range rows {
		doc := make(bson.M, len(row))
		for col, v := range row {
			doc[col] = v.Interface()
		}
		docs[i] = doc
	}
	return docs
}

func docsToRows(docs []bson.M) []domain.Row {
	rows := make([]domain.Row, len(docs))
	for i, doc := range docs {
		row := make(domain.Row, len(doc))
		for col, v := range doc {
			row[col] = domain.ValueOf(v)
		}
		rows[i] = row
	}
	return rows
}
