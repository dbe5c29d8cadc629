package printer

import (
	"strconv"

	"github.com/scan-io-git/wmverify/internal/debugger"
)

func debuggerValue(n int64) debugger.Extraction {
	return debugger.Value(n, strconv.FormatInt(n, 10))
}

func debuggerUnavailable() debugger.Extraction {
	return debugger.Unavailable(debugger.LLDBUnavailable)
}
