package errors

import "fmt"

var (
	ErrIO            = fmt.Errorf("data source unreadable")
	ErrParse         = fmt.Errorf("malformed record")
	ErrData          = fmt.Errorf("unusable dataset")
	ErrContract      = fmt.Errorf("contract violation")
	ErrInvalidParams = fmt.Errorf("invalid training parameters")
)
