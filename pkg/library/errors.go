package library

import "errors"

// ErrNoDictionary is returned by lookups when the dictionary they need was not loaded.
var ErrNoDictionary = errors.New("dictionary not loaded")
