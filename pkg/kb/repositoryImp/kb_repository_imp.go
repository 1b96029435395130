package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"agriplan/entities"
	"agriplan/pkg/kb/repository"
)

type repo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.NoteRepository { return &repo{db} }

func (r *repo) CreateDoc(ctx context.Context, d *entities.NoteDocument, chunks []entities.NoteChunk) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(d).Error; err != nil {
			return err
		}
		if len(chunks) == 0 {
			return nil
		}
		for i := range chunks {
			chunks[i].DocID = d.DocID
		}
		return tx.Create(&chunks).Error
	})
}

func (r *repo) ListDocs(ctx context.Context) ([]entities.NoteDocument, error) {
	var ds []entities.NoteDocument
	return ds, r.db.WithContext(ctx).Order("doc_id DESC").Find(&ds).Error
}

func (r *repo) Chunks(ctx context.Context, crop string) ([]entities.NoteChunk, error) {
	var cs []entities.NoteChunk
	q := r.db.WithContext(ctx).Order("doc_id ASC, ord ASC")
	if crop != "" {
		q = q.Where("doc_id IN (?)", r.db.Model(&entities.NoteDocument{}).Select("doc_id").Where("crop = ?", crop))
	}
	return cs, q.Find(&cs).Error
}

func (r *repo) DocsByIDs(ctx context.Context, ids []uint) (map[uint]entities.NoteDocument, error) {
	if len(ids) == 0 {
		return map[uint]entities.NoteDocument{}, nil
	}
	var ds []entities.NoteDocument
	if err := r.db.WithContext(ctx).Where("doc_id IN ?", ids).Find(&ds).Error; err != nil {
		return nil, err
	}
	m := make(map[uint]entities.NoteDocument, len(ds))
	for i := range ds {
		m[ds[i].DocID] = ds[i]
	}
	return m, nil
}
