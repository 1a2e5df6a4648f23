package ussd

import "errors"

// ErrEnhancedDisabled is returned when registry verification is not configured
var ErrEnhancedDisabled = errors.New("enhanced verification not available")
