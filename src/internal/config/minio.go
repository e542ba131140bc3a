package config

import (
	"trip-service/src/pkg/log"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/spf13/viper"
)

func NewMinio(v *viper.Viper, logger log.Log) *minio.Client {
	client, err := minio.New(v.GetString("minio.endpoint"), &minio.Options{
		Creds: credentials.NewStaticV4(
			v.GetString("minio.access_key"),
			v.GetString("minio.secret_key"),
			"",
		),
		Secure: v.GetBool("minio.use_ssl"),
	})
	if err != nil {
		logger.Error("minio init", err.Error(), "config", "")
		panic(err)
	}

	return client
}
