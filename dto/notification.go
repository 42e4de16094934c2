package dto

// SubscriptionKeys carries the browser-generated encryption keys in the
// shape the Push API serializes them.
type SubscriptionKeys struct {
	P256dh string `json:"p256dh" binding:"required"`
	Auth   string `json:"auth" binding:"required"`
}

type SubscriptionPayload struct {
	Endpoint string           `json:"endpoint" binding:"required"`
	Keys     SubscriptionKeys `json:"keys" binding:"required"`
}

type SubscribeRequest struct {
	Subscription SubscriptionPayload `json:"subscription" binding:"required"`
}

type UnsubscribeResponse struct {
	Existed bool `json:"existed"`
}

type TestNotificationRequest struct {
	Message string `json:"message"`
}

type VAPIDPublicKeyResponse struct {
	PublicKey string `json:"public_key"`
}
