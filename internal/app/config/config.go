package config

import (
	"learnhub-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "learnhub"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		SMTP: SMTP{
			Host:        utils.GetEnvString("SMTP_HOST", "localhost"),
			Username:    utils.GetEnvString("SMTP_USERNAME", ""),
			Password:    utils.GetEnvString("SMTP_PASSWORD", ""),
			EmailSender: utils.GetEnvString("SMTP_EMAIL_SENDER", ""),
			Port:        utils.GetEnvInt("SMTP_PORT", 2525),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "defaultPassword"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                                 utils.GetEnvString("APP_ENV", "development"),
			Port:                                utils.GetEnvString("APP_PORT", ":8080"),
			Version:                             utils.GetEnvString("APP_VERSION", "v1.0"),
			Address:                             utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                            utils.GetEnvString("APP_TIMEZONE", "Asia/Kolkata"),
			EndpointPrefix:                      utils.GetEnvString("APP_ENDPOINT_PREFIX", "/api/v1"),
			RabbitMQMailerQueue:                 utils.GetEnvString("APP_RABBITMQ_MAILER_QUEUE", "mailer-queue"),
			MaxRequests:                         utils.GetEnvInt("APP_MAX_REQUEST", 100),
			ShutdownTimeoutInSeconds:            utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			MaxTimeRequestsPerSeconds:           utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 1),
			RequestBodyLimitInMegabyte:          utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 6),
			LoginSessionExpiredTimeInHours:      utils.GetEnvInt("APP_LOGIN_SESSION_EXPIRED_TIME_IN_HOURS", 24),
			OTPExpiredTimeInMinutes:             utils.GetEnvInt("APP_OTP_EXPIRED_TIME_IN_MINUTES", 10),
			PaymentVerifyLockTimeInSeconds:      utils.GetEnvInt("APP_PAYMENT_VERIFY_LOCK_TIME_IN_SECONDS", 30),
			RefundWindowInDays:                  utils.GetEnvInt("APP_REFUND_WINDOW_IN_DAYS", 7),
			RefundMaxProgressPercent:            utils.GetEnvFloat("APP_REFUND_MAX_PROGRESS_PERCENT", 20),
			DeferralMaxProgressPercent:          utils.GetEnvFloat("APP_DEFERRAL_MAX_PROGRESS_PERCENT", 20),
			ThumbnailMaxUploadSizeInMB:          utils.GetEnvInt64("APP_THUMBNAIL_MAX_UPLOAD_SIZE_IN_MB", 2),
			PresignedUrlObjectExpiryTimeInHours: utils.GetEnvInt("APP_PRESIGNED_URL_OBJECT_EXPIRY_TIME_IN_HOURS", 24),
		},
		JWT: JWT{
			Secret:        utils.GetEnvString("JWT_SECRET", "anyjwt"),
			ExpTimeInHour: utils.GetEnvInt("JWT_EXP_TIME_IN_HOUR", 24),
		},
		Mailer: Mailer{
			EmailSender: utils.GetEnvString("MAILER_EMAIL_SENDER", "no-reply@learnhub.app"),
		},
		Minio: MinioInternal{
			BucketName: utils.GetEnvString("MINIO_BUCKET_NAME", "learnhub-assets"),
		},
		Google: Google{
			ClientID: utils.GetEnvString("GOOGLE_CLIENT_ID", ""),
		},
		Razorpay: Razorpay{
			KeyID:                   utils.GetEnvString("RAZORPAY_KEY_ID", ""),
			KeySecret:               utils.GetEnvString("RAZORPAY_KEY_SECRET", ""),
			BaseUrl:                 utils.GetEnvString("RAZORPAY_BASE_URL", "https://api.razorpay.com"),
			RequestTimeoutInSeconds: utils.GetEnvInt("RAZORPAY_REQUEST_TIMEOUT_IN_SECONDS", 15),
			MaxRequestsPerSecond:    utils.GetEnvInt("RAZORPAY_MAX_REQUESTS_PER_SECOND", 10),
		},
	}
}
