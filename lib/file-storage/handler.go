package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"hr-pipeline-backend/config"
	s3client "hr-pipeline-backend/s3"
)

var ErrFileNotFound = errors.New("файл не найден")

type Provider interface {
	UploadResume(ctx context.Context, candidateID string, file []byte, fileName, contentType string) error
	GetResume(ctx context.Context, candidateID, fileName string) ([]byte, error)
}

var Instance Provider

func NewHandler() {
	if s3client.Client != nil {
		Instance = NewS3Instance(s3client.Client, config.Conf.S3.BucketName)
		return
	}
	Instance = NewMemInstance()
}

func NewS3Instance(client *minio.Client, bucketName string) Provider {
	return &s3Impl{
		client:     client,
		bucketName: bucketName,
	}
}

type s3Impl struct {
	client     *minio.Client
	bucketName string
}

func (i s3Impl) UploadResume(ctx context.Context, candidateID string, file []byte, fileName, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := i.client.PutObject(ctx, i.bucketName, resumeObjectName(candidateID, fileName), bytes.NewReader(file), int64(len(file)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		log.
			WithField("candidate_id", candidateID).
			WithError(err).
			Error("ошибка загрузки резюме в S3")
		return errors.Wrap(err, "ошибка загрузки резюме")
	}
	return nil
}

func (i s3Impl) GetResume(ctx context.Context, candidateID, fileName string) ([]byte, error) {
	object, err := i.client.GetObject(ctx, i.bucketName, resumeObjectName(candidateID, fileName), minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения резюме")
	}
	defer object.Close()
	body, err := io.ReadAll(object)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrFileNotFound
		}
		return nil, errors.Wrap(err, "ошибка чтения резюме")
	}
	return body, nil
}

// NewMemInstance хранение файлов в памяти, используется при отключенном S3
func NewMemInstance() Provider {
	return &memImpl{
		files: map[string][]byte{},
	}
}

type memImpl struct {
	mu    sync.RWMutex
	files map[string][]byte
}

func (i *memImpl) UploadResume(ctx context.Context, candidateID string, file []byte, fileName, contentType string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.files[resumeObjectName(candidateID, fileName)] = append([]byte{}, file...)
	return nil
}

func (i *memImpl) GetResume(ctx context.Context, candidateID, fileName string) ([]byte, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	body, ok := i.files[resumeObjectName(candidateID, fileName)]
	if !ok {
		return nil, ErrFileNotFound
	}
	return append([]byte{}, body...), nil
}

func resumeObjectName(candidateID, fileName string) string {
	return fmt.Sprintf("resume/%v/%v", candidateID, fileName)
}
