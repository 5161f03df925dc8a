package cli

import "errors"

var errUnexpectedArgs = errors.New("memcopy-bench takes no arguments")
