package models

type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusUnpaid  InvoiceStatus = "unpaid" // same meaning as sent; kept distinct for stored data
	InvoiceStatusPartial InvoiceStatus = "partial"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// InvoiceStatuses lists every status in display order
var InvoiceStatuses = []InvoiceStatus{
	InvoiceStatusDraft,
	InvoiceStatusSent,
	InvoiceStatusUnpaid,
	InvoiceStatusPartial,
	InvoiceStatusPaid,
	InvoiceStatusOverdue,
}

// Valid reports whether s is a known invoice status
func (s InvoiceStatus) Valid() bool {
	for _, known := range InvoiceStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// InvoiceAction is an event that moves an invoice between statuses
type InvoiceAction string

const (
	ActionSend           InvoiceAction = "send"
	ActionPartialPayment InvoiceAction = "partial_payment"
	ActionFullPayment    InvoiceAction = "full_payment"
	ActionDuePassed      InvoiceAction = "due_passed"
)

var invoiceTransitions = map[InvoiceAction]map[InvoiceStatus]InvoiceStatus{
	ActionSend: {
		InvoiceStatusDraft: InvoiceStatusSent,
	},
	ActionPartialPayment: {
		InvoiceStatusDraft:   InvoiceStatusPartial,
		InvoiceStatusSent:    InvoiceStatusPartial,
		InvoiceStatusUnpaid:  InvoiceStatusPartial,
		InvoiceStatusPartial: InvoiceStatusPartial,
		InvoiceStatusOverdue: InvoiceStatusPartial,
	},
	ActionFullPayment: {
		InvoiceStatusDraft:   InvoiceStatusPaid,
		InvoiceStatusSent:    InvoiceStatusPaid,
		InvoiceStatusUnpaid:  InvoiceStatusPaid,
		InvoiceStatusPartial: InvoiceStatusPaid,
		InvoiceStatusOverdue: InvoiceStatusPaid,
	},
	ActionDuePassed: {
		InvoiceStatusDraft:   InvoiceStatusOverdue,
		InvoiceStatusSent:    InvoiceStatusOverdue,
		InvoiceStatusUnpaid:  InvoiceStatusOverdue,
		InvoiceStatusPartial: InvoiceStatusOverdue,
	},
}

// Next returns the status reached by applying action to s, and false when
// the transition is not allowed.
func (s InvoiceStatus) Next(action InvoiceAction) (InvoiceStatus, bool) {
	next, ok := invoiceTransitions[action][s]
	return next, ok
}
