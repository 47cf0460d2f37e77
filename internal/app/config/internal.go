package config

type InternalConfig struct {
	App      App
	JWT      JWT
	Mailer   Mailer
	Minio    MinioInternal
	Google   Google
	Razorpay Razorpay
}

type App struct {
	Env                                 string
	Port                                string
	Version                             string
	Address                             string
	Timezone                            string
	EndpointPrefix                      string
	RabbitMQMailerQueue                 string
	MaxRequests                         int
	ShutdownTimeoutInSeconds            int
	MaxTimeRequestsPerSeconds           int
	RequestBodyLimitInMegabyte          int
	LoginSessionExpiredTimeInHours      int
	OTPExpiredTimeInMinutes             int
	PaymentVerifyLockTimeInSeconds      int
	RefundWindowInDays                  int
	RefundMaxProgressPercent            float64
	DeferralMaxProgressPercent          float64
	ThumbnailMaxUploadSizeInMB          int64
	PresignedUrlObjectExpiryTimeInHours int
}

type JWT struct {
	Secret        string
	ExpTimeInHour int
}

type Mailer struct {
	EmailSender string
}

type MinioInternal struct {
	BucketName string
}

type Google struct {
	ClientID string
}

type Razorpay struct {
	KeyID                   string
	KeySecret               string
	BaseUrl                 string
	RequestTimeoutInSeconds int
	MaxRequestsPerSecond    int
}
