package config

import (
	"trip-service/src/internal/delivery/http"
	"trip-service/src/internal/delivery/http/middleware"
	"trip-service/src/internal/delivery/http/route"
	"trip-service/src/internal/gateway/messaging"
	"trip-service/src/internal/gateway/storage"
	"trip-service/src/internal/model"
	"trip-service/src/internal/repository"
	"trip-service/src/internal/usecase"
	"trip-service/src/pkg/databases/mysql"
	kafkaPkgConfluent "trip-service/src/pkg/kafka/confluent"
	"trip-service/src/pkg/log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	minioClient "github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

type BootstrapConfig struct {
	DB          mysql.DBInterface
	App         *fiber.App
	Log         log.Log
	Validate    *validator.Validate
	Config      *viper.Viper
	Producer    kafkaPkgConfluent.Producer
	Redis       redis.UniversalClient
	Minio       *minioClient.Client
	AsynqClient *asynq.Client
	Async       *asynq.ServeMux
}

func Bootstrap(config *BootstrapConfig) {
	// setup repositories
	tripRepository := repository.NewTripRepository(config.DB)
	tripStatusRepository := repository.NewTripStatusRepository(config.DB)
	tripMessageRepository := repository.NewTripMessageRepository(config.DB)
	orderRepository := repository.NewOrderRepository(config.DB)
	orderGroupRepository := repository.NewOrderGroupRepository(config.DB)
	driverReportRepository := repository.NewDriverReportRepository(config.DB)
	notificationRepository := repository.NewNotificationRepository(config.DB)
	uploadFileRepository := repository.NewUploadFileRepository(config.DB)
	userRepository := repository.NewUserRepository(config.DB)

	// setup gateways
	notificationProducer := messaging.NewNotificationProducer(config.Producer, config.Log)
	uploader := storage.NewUploader(config.Minio, config.Config.GetString("minio.bucket"), uploadFileRepository, config.Log)

	// setup use cases
	tripUseCase := usecase.NewTripUseCase(
		config.Log,
		config.Validate,
		config.DB,
		tripRepository,
		tripStatusRepository,
		tripMessageRepository,
		orderRepository,
		orderGroupRepository,
		driverReportRepository,
		uploader,
		config.Redis,
		config.AsynqClient,
		config.Config,
	)

	notificationUseCase := usecase.NewNotificationUseCase(
		config.Log,
		tripRepository,
		orderRepository,
		userRepository,
		notificationRepository,
		notificationProducer,
		config.Config,
	)

	// setup controller
	tripController := http.NewTripController(tripUseCase, config.Log)

	// setup middleware
	authMiddleware := middleware.VerifyBearer(config.Config)

	// post-commit notification worker
	config.Async.HandleFunc(model.TaskNotificationDispatch, notificationUseCase.HandleDispatchTask)

	routeConfig := route.RouteConfig{
		App:            config.App,
		TripController: tripController,
		AuthMiddleware: authMiddleware,
	}
	routeConfig.Setup()
}
