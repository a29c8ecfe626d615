package postgresql

import (
	"context"

	"github.com/fastybox/forwarding/internal/db"
	"github.com/fastybox/forwarding/internal/repository"
)

type AttachmentRepo struct {
	db db.DB
}

func NewAttachmentRepo(db db.DB) *AttachmentRepo {
	return &AttachmentRepo{db: db}
}

func (r *AttachmentRepo) CreateTx(ctx context.Context, tx db.Tx, a *repository.Attachment) error {
	return tx.ExecQueryRow(ctx, `
        INSERT INTO attachments (
            forward_item_id, file_name, file_path, content_type, size_bytes, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `, a.ForwardItemID, a.FileName, a.FilePath, a.ContentType, a.SizeBytes, a.CreatedAt).Scan(&a.ID)
}

func (r *AttachmentRepo) ListByItemTx(ctx context.Context, tx db.Tx, itemID int64) ([]*repository.Attachment, error) {
	var attachments []*repository.Attachment
	err := tx.Select(ctx, &attachments, `
        SELECT * FROM attachments WHERE forward_item_id = $1
    `, itemID)
	return attachments, err
}

func (r *AttachmentRepo) DeleteByItemTx(ctx context.Context, tx db.Tx, itemID int64) error {
	_, err := tx.Exec(ctx, `
        DELETE FROM attachments WHERE forward_item_id = $1
    `, itemID)
	return err
}
