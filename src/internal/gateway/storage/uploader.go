package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"trip-service/src/internal/entity"
	"trip-service/src/internal/model"
	"trip-service/src/internal/repository"
	"trip-service/src/pkg/log"

	"github.com/minio/minio-go/v7"
)

// ObjectStore is the minio surface the uploader needs.
type ObjectStore interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// Uploader ingests pending attachments into durable object storage and mints
// upload-file ids. Items that already carry an id pass through unchanged.
type Uploader struct {
	Client ObjectStore
	Bucket string
	Files  repository.UploadFileStore
	Log    log.Log
}

func NewUploader(client ObjectStore, bucket string, files repository.UploadFileStore, logger log.Log) *Uploader {
	return &Uploader{
		Client: client,
		Bucket: bucket,
		Files:  files,
		Log:    logger,
	}
}

// IngestAttachments uploads every item without an id and returns the union of
// new and pre-existing ids, in input order. Any single failure aborts the
// whole batch; there are no partial silent drops.
func (u *Uploader) IngestAttachments(ctx context.Context, orgID uint64, orderCode, tripCode string, orderDate time.Time, items []model.AttachmentItem) ([]uint64, error) {
	ids := make([]uint64, 0, len(items))

	for _, item := range items {
		if item.ID != nil {
			ids = append(ids, *item.ID)
			continue
		}

		fileName := fmt.Sprintf("%s_%s_%s", orderCode, tripCode, item.Name)
		objectKey := path.Join(
			fmt.Sprintf("%d", orgID),
			orderDate.Format("2006-01"),
			fileName,
		)

		contentType := item.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		_, err := u.Client.PutObject(ctx, u.Bucket, objectKey,
			bytes.NewReader(item.Data), int64(len(item.Data)),
			minio.PutObjectOptions{ContentType: contentType})
		if err != nil {
			u.Log.Error("storage-uploader", fmt.Sprintf("upload failed for %s: %v", objectKey, err), "IngestAttachments", "")
			return nil, err
		}

		id, err := u.Files.CreateFile(ctx, &entity.UploadFile{
			OrganizationID: orgID,
			Path:           objectKey,
			Name:           fileName,
		})
		if err != nil {
			u.Log.Error("storage-uploader", fmt.Sprintf("failed to record upload %s: %v", objectKey, err), "IngestAttachments", "")
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, nil
}
