package client

import (
	"fmt"

	"github.com/hikariatama/sharder/internal/common"
)

// Both wrap common.ErrNetwork.
var (
	ErrUnavailable  = fmt.Errorf("%w: server unavailable", common.ErrNetwork)
	ErrUnauthorized = fmt.Errorf("%w: unauthorized", common.ErrNetwork)
)
