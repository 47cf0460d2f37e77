package main

import (
	"context"
	"learnhub-service/internal/app/config"
	"learnhub-service/internal/app/delivery/http/controllers"
	"learnhub-service/internal/app/delivery/http/middlewares"
	"learnhub-service/internal/app/delivery/http/routers"
	"learnhub-service/internal/app/drivers/database"
	"learnhub-service/internal/app/drivers/logger"
	"learnhub-service/internal/app/drivers/mailer"
	"learnhub-service/internal/app/drivers/messaging"
	"learnhub-service/internal/app/drivers/storage"
	"learnhub-service/internal/app/services/core/auth"
	"learnhub-service/internal/app/services/core/coupons"
	"learnhub-service/internal/app/services/core/courses"
	"learnhub-service/internal/app/services/core/payments"
	"learnhub-service/internal/app/services/core/users"
	"learnhub-service/internal/app/services/shared/googleauth"
	"learnhub-service/internal/app/services/shared/locker"
	sharedMailer "learnhub-service/internal/app/services/shared/mailer"
	paymentGateway "learnhub-service/internal/app/services/shared/payment_gateway"
	sharedRedis "learnhub-service/internal/app/services/shared/redis"
	"learnhub-service/internal/app/services/shared/session"
	sharedStorage "learnhub-service/internal/app/services/shared/storage"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	logrusLogger := logger.NewLogrusLogger(internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	mongoClient := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQConnection := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig)
	smtpClient := mailer.NewSMTPClient(driverConfig, logrusLogger)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		MongoClient:    mongoClient,
		Redis:          redisClient,
		Logger:         zapLogger,
		RabbitMQ:       rabbitMQConnection,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}

	stopMailerWorker := bootstrapTheApp(bootstrap, smtpClient, minioClient)
	defer stopMailerWorker()

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	// Shutdown the server
	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Error closing dependencies: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapTheApp(bootstrap config.Bootstrap, smtpClient *mailer.SMTPClient, minioClient *minio.Client) func() {
	// Shared services
	redisRepository := sharedRedis.NewRedisRepository(bootstrap.Redis)
	sessionService := session.NewSessionService(redisRepository, bootstrap.InternalConfig)
	lockerService := locker.NewLockService(redisRepository, bootstrap.Logger)
	minioStorage := sharedStorage.NewMinioStorage(minioClient, bootstrap.InternalConfig.Minio.BucketName)
	razorpayService := paymentGateway.NewRazorpayService(bootstrap.InternalConfig, bootstrap.Logger)
	googleVerifier := googleauth.NewGoogleVerifier(bootstrap.InternalConfig.Google.ClientID)

	mailerService, err := sharedMailer.NewMailerService(smtpClient, bootstrap.RabbitMQ, bootstrap.InternalConfig.App.RabbitMQMailerQueue)
	if err != nil {
		log.Fatalf("Failed to initialize mailer service: %v", err)
	}
	stopMailerWorker, err := sharedMailer.StartWorker(mailerService, bootstrap.Logger)
	if err != nil {
		log.Fatalf("Failed to start mailer worker: %v", err)
	}

	// Middlewares
	middlewares := middlewares.NewMiddlewares(sessionService, bootstrap.InternalConfig, bootstrap.Logger)

	// Repositories
	userMongoRepository := users.NewUserMongoRepository(bootstrap.MongoClient, bootstrap.DriverConfig.MongoDB.DbName)
	courseMongoRepository := courses.NewCourseMongoRepository(bootstrap.MongoClient, bootstrap.DriverConfig.MongoDB.DbName)
	couponMongoRepository := coupons.NewCouponMongoRepository(bootstrap.MongoClient, bootstrap.DriverConfig.MongoDB.DbName)
	paymentMongoRepository := payments.NewPaymentMongoRepository(bootstrap.MongoClient, bootstrap.DriverConfig.MongoDB.DbName)
	refundRequestMongoRepository := payments.NewRefundRequestMongoRepository(bootstrap.MongoClient, bootstrap.DriverConfig.MongoDB.DbName)
	deferralRequestMongoRepository := payments.NewDeferralRequestMongoRepository(bootstrap.MongoClient, bootstrap.DriverConfig.MongoDB.DbName)

	// Usecases
	userUsecase := users.NewUserUsecase(userMongoRepository, bootstrap.Logger)
	authUsecase := auth.NewAuthUsecase(
		userMongoRepository,
		redisRepository,
		sessionService,
		mailerService,
		googleVerifier,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	courseUsecase := courses.NewCourseUsecase(courseMongoRepository, minioStorage, bootstrap.InternalConfig, bootstrap.Logger)
	couponUsecase := coupons.NewCouponUsecase(couponMongoRepository, bootstrap.Logger)
	paymentUsecase := payments.NewPaymentUsecase(
		paymentMongoRepository,
		refundRequestMongoRepository,
		deferralRequestMongoRepository,
		couponMongoRepository,
		couponUsecase,
		courseMongoRepository,
		userMongoRepository,
		razorpayService,
		lockerService,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	adminPaymentUsecase := payments.NewAdminPaymentUsecase(
		paymentMongoRepository,
		refundRequestMongoRepository,
		deferralRequestMongoRepository,
		userMongoRepository,
		courseMongoRepository,
		mailerService,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)

	// Controllers
	authController := controllers.NewAuthController(bootstrap.Logger, authUsecase)
	userController := controllers.NewUserController(bootstrap.Logger, userUsecase)
	courseController := controllers.NewCourseController(bootstrap.Logger, courseUsecase, bootstrap.InternalConfig)
	couponController := controllers.NewCouponController(bootstrap.Logger, couponUsecase)
	paymentController := controllers.NewPaymentController(bootstrap.Logger, paymentUsecase)
	adminPaymentController := controllers.NewAdminPaymentController(bootstrap.Logger, adminPaymentUsecase)

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		middlewares,
		authController,
		userController,
		courseController,
		couponController,
		paymentController,
		adminPaymentController,
	)

	return stopMailerWorker
}
