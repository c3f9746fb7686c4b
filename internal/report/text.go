package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/victorstack-ai/wp-wowrevenue-authz-guard/internal/scanner"
	"github.com/victorstack-ai/wp-wowrevenue-authz-guard/pkg/shared"
)

func writeText(w io.Writer, result *scanner.Result) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Scan result: %s\n", shared.Verdict(result.IsHighRisk()))
	for _, reason := range result.Reasons {
		fmt.Fprintf(bw, "- %s\n", reason)
	}
	return bw.Flush()
}
