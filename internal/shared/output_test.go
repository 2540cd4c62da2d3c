package shared_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"hotelpoc/internal/domain"
	"hotelpoc/internal/shared"
)

func TestEmit_PrintsHeadAndExportsAll(t *testing.T) {
	id := func(s string) domain.HotelSummary { return domain.HotelSummary{HotelID: &s} }
	rows := []domain.HotelSummary{id("A"), id("B"), id("C")}
	path := filepath.Join(t.TempDir(), "hotels.csv")

	var out bytes.Buffer
	err := shared.Emit(&out, shared.Config{ExportCSV: path}, domain.HotelSummaryColumns, rows, 2)
	require.NoError(t, err)
	require.Len(t, strings.Split(strings.TrimRight(out.String(), "\n"), "\n"), 3)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, strings.Split(strings.TrimRight(string(b), "\n"), "\n"), 4)
}

func TestEmit_NoExport(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, shared.Emit(&out, shared.Config{}, domain.OfferRowColumns, []domain.OfferRow{}, 20))
	require.True(t, strings.HasPrefix(out.String(), "price_total"))
}
