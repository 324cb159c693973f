package domain

import "errors"

// ErrMessageNotModified is returned by messengers when an edit would not change the message
var ErrMessageNotModified = errors.New("message is not modified")
