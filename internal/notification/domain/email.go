// Package domain defines the outbound email notifications sent by the
// booking, membership, and shop flows.
package domain

// Email is a single outbound email message.
type Email struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}
