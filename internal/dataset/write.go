package dataset

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spboyer/comborank/internal/models"
)

// FormatVariant renders one variant in the input format, "ID, n1 n2 n3".
func FormatVariant(id string, numbers []int) string {
	return id + ", " + FormatNumbers(numbers)
}

// CheckVariantID reports whether id survives a write and re-parse
// unchanged. The variant format splits on the first comma, one record per
// line, and trims the ID.
func CheckVariantID(id string) error {
	if strings.ContainsAny(id, ",\r\n") {
		return fmt.Errorf("variant ID %q must not contain commas or line breaks", id)
	}
	if strings.TrimSpace(id) != id {
		return fmt.Errorf("variant ID %q must not start or end with whitespace", id)
	}
	return nil
}

// FormatNumbers joins numbers with single spaces.
func FormatNumbers(numbers []int) string {
	var b strings.Builder
	for i, n := range numbers {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}

// FormatRound renders one round in the input format, "n1, n2, n3".
func FormatRound(r models.Round) string {
	parts := make([]string, len(r))
	for i, n := range r {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}

// WriteVariants writes variants one per line in the input format, so the
// output can be fed back as input to a later run.
func WriteVariants(w io.Writer, variants []models.Variant) error {
	bw := bufio.NewWriter(w)
	for _, v := range variants {
		if _, err := bw.WriteString(FormatVariant(v.ID, v.Numbers)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteScored writes ranked variants in the variant input format.
func WriteScored(w io.Writer, scored []models.ScoredVariant) error {
	variants := make([]models.Variant, len(scored))
	for i, sv := range scored {
		variants[i] = sv.Variant()
	}
	return WriteVariants(w, variants)
}
