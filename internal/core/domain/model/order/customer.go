package order

// CustomerRef is the customer an order belongs to. The order only keeps a
// reference; customer records are owned by the backend.
type CustomerRef struct {
	ID      string
	Name    string
	Email   string
	Phone   string
	Company string
}
