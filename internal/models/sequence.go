package models

// Sequence is a named counter for human-readable document numbers
type Sequence struct {
	Name  string `gorm:"size:32;primaryKey"`
	Value int64  `gorm:"not null"`
}

// Sequence names and their number prefixes
const (
	SequenceClient  = "CL"
	SequenceOrder   = "ORD"
	SequenceInvoice = "INV"
	SequenceVoucher = "VOU"
)

// SequenceStart is the value preceding the first issued number
const SequenceStart int64 = 1000
