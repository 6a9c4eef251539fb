package types

import "github.com/charlie0129/unitconv/pkg/history"

// ConvertResponse is returned by POST /convert.
// This struct is shared between the daemon and client packages.
type ConvertResponse struct {
	history.Record
	Message string `json:"message"`
}
