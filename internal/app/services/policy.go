package services

// Policy holds the tunables services read from configuration
type Policy struct {
	PasswordLength  int
	MaxVoucherBatch int
	ImportMaxRows   int
	ImportMinAge    int
	ImportMaxAge    int
}

// DefaultPolicy returns the built-in defaults
func DefaultPolicy() Policy {
	return Policy{
		PasswordLength:  8,
		MaxVoucherBatch: 300,
		ImportMaxRows:   1000,
		ImportMinAge:    10,
		ImportMaxAge:    25,
	}
}

func (p Policy) withDefaults() Policy {
	d := DefaultPolicy()
	if p.PasswordLength < 8 {
		p.PasswordLength = d.PasswordLength
	}
	if p.MaxVoucherBatch < 1 {
		p.MaxVoucherBatch = d.MaxVoucherBatch
	}
	if p.ImportMaxRows < 1 {
		p.ImportMaxRows = d.ImportMaxRows
	}
	if p.ImportMinAge <= 0 {
		p.ImportMinAge = d.ImportMinAge
	}
	if p.ImportMaxAge <= 0 {
		p.ImportMaxAge = d.ImportMaxAge
	}
	return p
}
