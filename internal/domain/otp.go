package domain

// Delivery channels for OTP challenges.
const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// OtpChallenge is a short-lived proof of contact ownership.
// PK: contact (normalized email or phone), SK: code.
// ExpiresAt is a Unix timestamp used as DynamoDB TTL; expiry is also checked
// explicitly at verify time since TTL eviction is best-effort.
type OtpChallenge struct {
	Contact   string `json:"contact" dynamodbav:"contact"`
	Code      string `json:"code" dynamodbav:"code"`
	Channel   string `json:"channel" dynamodbav:"channel"` // "email" | "sms"
	ExpiresAt int64  `json:"expires_at" dynamodbav:"expires_at"`
}
