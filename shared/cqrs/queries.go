package cqrs

// ---------- Member queries ----------

// GetMemberQuery fetches a single member by backend id.
type GetMemberQuery struct {
	MemberID int64
}

// ---------- Transaction queries ----------

// SearchTransactionsQuery looks up the history of one account. Page and Size
// are passed through to the backend untouched.
type SearchTransactionsQuery struct {
	AccountNumber string
	Page          int
	Size          int
}

// ---------- Account queries ----------

// GetAccountQuery fetches a single account by its account number.
type GetAccountQuery struct {
	AccountNumber string
}
