package types

const (
	HeaderRequestID     = "X-Request-ID"
	HeaderPoloID        = "X-Polo-ID"
	HeaderAuthorization = "Authorization"

	// HeaderAsaasAccessToken carries the webhook authentication token sent
	// by the ASAAS gateway on every webhook delivery.
	HeaderAsaasAccessToken = "asaas-access-token"
)
