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

const collectionFiles = "files"

type FileRepository struct {
	col *mongo.Collection
}

func NewFileRepository(db *mongo.Database) *FileRepository {
	return &FileRepository{col: db.Collection(collectionFiles)}
}

type mongoFile struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	FileName     string             `bson:"file_name"`
	OriginalName string             `bson:"original_name"`
	FileSize     int64              `bson:"file_size"`
	FileType     string             `bson:"file_type"`
	DiskPath     string             `bson:"disk_path"`
	OwnerID      primitive.ObjectID `bson:"owner_id"`
	UploadDate   time.Time          `bson:"upload_date"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func (m *mongoFile) toDomain() *domain.StoredFile {
	return &domain.StoredFile{
		ID:           m.ID.Hex(),
		FileName:     m.FileName,
		OriginalName: m.OriginalName,
		FileSize:     m.FileSize,
		FileType:     m.FileType,
		DiskPath:     m.DiskPath,
		OwnerID:      m.OwnerID.Hex(),
		UploadDate:   m.UploadDate.UTC(),
		CreatedAt:    m.CreatedAt.UTC(),
	}
}

func (r *FileRepository) Create(ctx context.Context, f *domain.StoredFile) error {
	owner, ok := objectID(f.OwnerID)
	if !ok {
		return fmt.Errorf("insert file: invalid owner id %q", f.OwnerID)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, mongoFile{
		FileName:     f.FileName,
		OriginalName: f.OriginalName,
		FileSize:     f.FileSize,
		FileType:     f.FileType,
		DiskPath:     f.DiskPath,
		OwnerID:      owner,
		UploadDate:   f.UploadDate,
		CreatedAt:    f.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("insert file: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		f.ID = oid.Hex()
	}
	return nil
}

func (r *FileRepository) FindByID(ctx context.Context, id string) (*domain.StoredFile, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrFileNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mf mongoFile
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mf); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFileNotFound
		}
		return nil, fmt.Errorf("find file: %w", err)
	}
	return mf.toDomain(), nil
}

// ListByOwner returns every file of ownerID, newest upload first.
func (r *FileRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.StoredFile, error) {
	owner, ok := objectID(ownerID)
	if !ok {
		return []*domain.StoredFile{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "upload_date", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{"owner_id": owner}, opts)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoFile
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode files: %w", err)
	}

	files := make([]*domain.StoredFile, len(docs))
	for i := range docs {
		files[i] = docs[i].toDomain()
	}
	return files, nil
}

func (r *FileRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrFileNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrFileNotFound
	}
	return nil
}

func (r *FileRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "upload_date", Value: -1}},
	})
	return err
}
