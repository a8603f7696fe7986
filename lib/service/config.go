package service

type Config struct {
	DatabaseUri             string `envconfig:"DATABASE_URI" required:"true"`
	DatabaseMaxConns        int    `envconfig:"DATABASE_MAX_CONNS" default:"10"`
	DatabaseMaxIdleConns    int    `envconfig:"DATABASE_MAX_IDLE_CONNS" default:"5"`
	DatabaseConnMaxLifetime int    `envconfig:"DATABASE_CONN_MAX_LIFETIME" default:"1800"` // 30 minutes
	DatabaseTimeout         int    `envconfig:"DATABASE_TIMEOUT" default:"60"`             // 60 seconds
	SentryDSN               string `envconfig:"SENTRY_DSN"`
	SentryTracesSampleRate  float64 `envconfig:"SENTRY_TRACES_SAMPLE_RATE"`
	LogFilePath             string `envconfig:"LOG_FILE_PATH"`
	// PaymentLinkSecret keys the HMAC signature embedded in settlement URLs.
	PaymentLinkSecret        []byte `envconfig:"PAYMENT_LINK_SECRET" required:"true"`
	BaseUrl                  string `envconfig:"BASE_URL" default:"http://localhost:3000"`
	Host                     string `envconfig:"HOST" default:"localhost:3000"`
	Port                     int    `envconfig:"PORT" default:"3000"`
	DefaultRateLimit         int    `envconfig:"DEFAULT_RATE_LIMIT" default:"10"`
	StrictRateLimit          int    `envconfig:"STRICT_RATE_LIMIT" default:"10"`
	BurstRateLimit           int    `envconfig:"BURST_RATE_LIMIT" default:"1"`
	EnablePrometheus         bool   `envconfig:"ENABLE_PROMETHEUS" default:"false"`
	PrometheusPort           int    `envconfig:"PROMETHEUS_PORT" default:"9092"`
	WebhookUrl               string `envconfig:"WEBHOOK_URL"`
	RabbitMQUri              string `envconfig:"RABBITMQ_URI"`
	RabbitMQTaskExchange     string `envconfig:"RABBITMQ_TASK_EXCHANGE" default:"splitx_tasks"`
	RabbitMQTaskQueueName    string `envconfig:"RABBITMQ_TASK_QUEUE_NAME" default:"splitx_task_consumer"`
	ReminderSweepInterval    int    `envconfig:"REMINDER_SWEEP_INTERVAL" default:"604800"` // in seconds, default weekly
	EnableReminderSweep      bool   `envconfig:"ENABLE_REMINDER_SWEEP" default:"false"`
	Branding                 BrandingConfig
}

type BrandingConfig struct {
	Title string `envconfig:"BRANDING_TITLE" default:"Split-X"`
	Desc  string `envconfig:"BRANDING_DESC" default:"Expense splitting that reconciles to the cent"`
}
