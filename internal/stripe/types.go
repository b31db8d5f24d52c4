package stripe

// CheckoutSessionParams — параметры создания сессии оплаты.
type CheckoutSessionParams struct {
	PriceID       string
	SuccessURL    string
	CancelURL     string
	UserUID       string
	CustomerID    string
	CustomerEmail string
}

// CheckoutSession — ответ провайдера на создание сессии оплаты.
type CheckoutSession struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Customer string `json:"customer"`
}

// PortalSession — ответ провайдера на создание сессии портала.
type PortalSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Типы событий вебхука, которые обрабатывает приложение.
const (
	EventCheckoutCompleted    = "checkout.session.completed"
	EventSubscriptionDeleted  = "customer.subscription.deleted"
	EventInvoicePaymentFailed = "invoice.payment_failed"
)

// Event — событие вебхука платёжного провайдера.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object EventObject `json:"object"`
	} `json:"data"`
}

// EventObject — общая часть объектов событий: сессии оплаты,
// подписки и счета.
type EventObject struct {
	ID                string `json:"id"`
	Customer          string `json:"customer"`
	ClientReferenceID string `json:"client_reference_id,omitempty"`
	CurrentPeriodEnd  int64  `json:"current_period_end,omitempty"`
}
