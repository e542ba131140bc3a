package repository

import (
	"context"

	"trip-service/src/internal/entity"
	"trip-service/src/pkg/databases/mysql"
)

type UploadFileRepository struct {
	DB mysql.DBInterface
}

func NewUploadFileRepository(db mysql.DBInterface) *UploadFileRepository {
	return &UploadFileRepository{
		DB: db,
	}
}

func (r *UploadFileRepository) CreateFile(ctx context.Context, file *entity.UploadFile) (uint64, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return 0, err
	}

	query := `
		INSERT INTO upload_files (organization_id, path, name, created_at)
		VALUES (?, ?, ?, NOW())
	`

	res, err := db.ExecContext(ctx, query, file.OrganizationID, file.Path, file.Name)
	if err != nil {
		return 0, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	return uint64(id), nil
}
