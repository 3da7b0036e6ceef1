package resend

// Config holds Resend email provider configuration.
type Config struct {
	APIKey      string `env:"RESEND_API_KEY"`
	SenderEmail string `env:"RESEND_FROM_EMAIL" envDefault:"onboarding@resend.dev"`
	SenderName  string `env:"RESEND_FROM_NAME" envDefault:"Portofolio Yudhaa"`
}
