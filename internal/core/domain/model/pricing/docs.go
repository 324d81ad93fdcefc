// Package pricing holds the outcome of a decoration quote: totals, the cost
// breakdown and the line items shown to the customer.
package pricing
