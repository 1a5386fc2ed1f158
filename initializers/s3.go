package initializers

import (
	"context"

	log "github.com/sirupsen/logrus"
	"hr-pipeline-backend/config"
	s3client "hr-pipeline-backend/s3"
)

func InitS3(ctx context.Context) {
	if !*config.Conf.S3.Enabled {
		log.Info("S3 отключен, резюме хранятся в памяти")
		return
	}
	minioClient, err := s3client.NewClient()
	if err != nil {
		log.WithError(err).Error("Ошибка инициализации клиента S3")
		return
	}

	// Проверка соединения
	err = s3client.MakeBucket(ctx, minioClient, config.Conf.S3.BucketName)
	if err != nil {
		log.WithError(err).Error("S3 соединение не удалось")
		return
	}

	s3client.Client = minioClient
	log.Info("S3 клиент успешно инициализирован")
}
