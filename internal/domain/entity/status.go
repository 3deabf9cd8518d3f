package entity

// Estados de una transacción. Solo StatusReceived afecta el ledger en compras y ventas.
const (
	StatusReceived = 0
	StatusPending  = 1
)

// Estados de pago.
const (
	PaymentPaid    = 0
	PaymentPending = 1
	PaymentPartial = 2
)
