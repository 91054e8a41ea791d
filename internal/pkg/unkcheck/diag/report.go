package diag

import (
	"fmt"
	"io"
	"strings"

	"unkcheck/internal/pkg/unkcheck/tokenizer"
)

// tokenPreviewLimit caps the annotated per-token listing.
const tokenPreviewLimit = 20

var rule = strings.Repeat("=", 60)

func writeCaseHeader(w io.Writer, c Case) {
	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintf(w, "Model: %s\n", c.Model)
	fmt.Fprintf(w, "Language: %s\n", c.Language)
	fmt.Fprintf(w, "Text: %s\n", c.Text)
	fmt.Fprintf(w, "%s\n", rule)
}

func writeCaseDetail(w io.Writer, codec Codec, enc *tokenizer.Encoding, res Result) {
	fmt.Fprintf(w, "\nUNK token: %q (ID: %d)\n", codec.UnkToken(), codec.UnkID())
	fmt.Fprintf(w, "\nResults:\n")
	fmt.Fprintf(w, "  Total tokens: %d\n", res.TokenCount)
	fmt.Fprintf(w, "  UNK count: %d\n", res.UnkCount)
	fmt.Fprintf(w, "  UNK percentage: %.2f%%\n", res.UnkPercent)

	fmt.Fprintf(w, "\nFirst %d tokens:\n", tokenPreviewLimit)
	for i := 0; i < enc.Len() && i < tokenPreviewLimit; i++ {
		marker := ""
		if enc.Tokens[i] == codec.UnkToken() {
			marker = " <-- UNK"
		}
		fmt.Fprintf(w, "  [%d] ID=%5d -> %q%s\n", i, enc.IDs[i], enc.Tokens[i], marker)
	}
	if enc.Len() > tokenPreviewLimit {
		fmt.Fprintf(w, "  ... (%d more tokens)\n", enc.Len()-tokenPreviewLimit)
	}
}

// WriteSummary prints one PASS/FAIL line per recorded result plus a closing
// banner. Cases that failed to process are absent by construction.
func WriteSummary(w io.Writer, results []Result) {
	fmt.Fprintf(w, "\n\n%s\n", rule)
	fmt.Fprintf(w, "SUMMARY\n")
	fmt.Fprintf(w, "%s\n\n", rule)

	for _, res := range results {
		status := "FAIL"
		if res.Pass() {
			status = "PASS"
		}

		expected := "Should NOT have UNK"
		if res.ExpectUnk {
			expected = "Should have UNK"
		}
		got := "No UNK"
		if res.UnkCount > 0 {
			got = "UNK found"
		}

		fmt.Fprintf(w, "%s %s on %s\n", status, res.Model, res.Language)
		fmt.Fprintf(w, "     Tokens: %d, UNK: %d (%.1f%%)\n", res.TokenCount, res.UnkCount, res.UnkPercent)
		fmt.Fprintf(w, "     Expected: %s, Got: %s\n\n", expected, got)
	}

	fmt.Fprintf(w, "%s\n", rule)
	fmt.Fprintf(w, "Verification complete.\n")
}
