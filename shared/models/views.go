package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Envelope is the uniform wrapper every backend endpoint responds with.
type Envelope[T any] struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Data      T      `json:"data"`
	Timestamp string `json:"timestamp"`
}

// Page is the paginated payload returned by the transaction history endpoint.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
	Empty         bool  `json:"empty"`
}

// Items returns the page content, never nil.
func (p *Page[T]) Items() []T {
	if p == nil || p.Content == nil {
		return []T{}
	}
	return p.Content
}

// DashboardStats holds the four independently fetched aggregates. Failed
// lists the names of the stats whose request did not succeed.
type DashboardStats struct {
	MemberCount      int64           `json:"memberCount"`
	AccountCount     int64           `json:"accountCount"`
	TransactionCount int64           `json:"transactionCount"`
	TotalBalance     decimal.Decimal `json:"totalBalance"`
	Failed           []string        `json:"failed,omitempty"`
}

// HasFailed reports whether the named stat could not be loaded.
func (d DashboardStats) HasFailed(name string) bool {
	for _, f := range d.Failed {
		if f == name {
			return true
		}
	}
	return false
}

// Notification is a transient toast shown once on the next render.
type Notification struct {
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
