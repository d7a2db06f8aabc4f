package csvio

import (
	"encoding/csv"
	"io"
)

// VoucherHeader is the column order of voucher batch exports
var VoucherHeader = []string{"serial_number", "pin", "kind", "class_name", "can_signin", "is_used"}

// VoucherRecord is one voucher row
type VoucherRecord struct {
	SerialNumber string
	PIN          string
	Kind         string
	ClassName    string
	CanSignin    bool
	IsUsed       bool
}

// WriteVouchers writes a complete voucher export
func WriteVouchers(w io.Writer, records []VoucherRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(VoucherHeader); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write([]string{r.SerialNumber, r.PIN, r.Kind, r.ClassName, yesNo(r.CanSignin), yesNo(r.IsUsed)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
