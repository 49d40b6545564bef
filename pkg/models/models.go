// Package models defines the JSON wire types shared by the HTTP server and
// the CLI's -json output.
package models

// Term is one computed Fibonacci number.
type Term struct {
	// N is the index of the term.
	N uint64 `json:"n"`
	// Value is the decimal representation of F(N).
	Value string `json:"value"`
	// Digits is the number of decimal digits in Value.
	Digits int `json:"digits"`
	// Bits is the bit length of F(N).
	Bits int `json:"bits"`
}

// FibResponse is the answer to a single-term request.
type FibResponse struct {
	Term
	// Duration is the formatted computation time.
	Duration string `json:"duration"`
	// Algorithm names the generator that produced the term.
	Algorithm string `json:"algorithm"`
}

// SequenceResponse is the answer to a range request, with terms in offset
// order from From to To inclusive.
type SequenceResponse struct {
	From     uint64 `json:"from"`
	To       uint64 `json:"to"`
	Terms    []Term `json:"terms"`
	Duration string `json:"duration"`
}

// BatchRequest lists the indexes of a batch computation.
type BatchRequest struct {
	Indexes []uint64 `json:"indexes"`
}

// BatchResponse holds batch results in request order.
type BatchResponse struct {
	Terms    []Term `json:"terms"`
	Duration string `json:"duration"`
}

// ErrorResponse is the JSON body of every API error.
type ErrorResponse struct {
	// Error is the short error code or status text.
	Error string `json:"error"`
	// Message is a descriptive error message.
	Message string `json:"message,omitempty"`
}
