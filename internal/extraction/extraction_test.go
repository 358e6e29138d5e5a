package extraction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfsc/georef-verifier/internal/classify"
	"github.com/rfsc/georef-verifier/internal/llm"
	"github.com/rfsc/georef-verifier/internal/schemas"
)

const sampleReply = `{
  "header_row1": ["VÉRTICE", "SEGMENTO VANTE"],
  "header_row2": ["Código", "Longitude", "Latitude", "Altitude (m)", "Código", "Azimute", "Dist. (m)", "Confrontações"],
  "data": [
    ["FHV-M-0001", "-47°52'05,70\"", "-15°47'31,84\"", "1.095,81", "FHV-M-0002", "45°12'", "102,51", "TERRAS DE JOSÉ"],
    ["FHV-M-0002", "-47°52'02,10\"", "-15°47'29,20\"", "1.094,10", "FHV-M-0003", "132°40'", "98,77", "ESTRADA VICINAL"]
  ]
}`

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "bare object", input: sampleReply},
		{name: "json fence", input: "```json\n" + sampleReply + "\n```"},
		{name: "generic fence", input: "```\n" + sampleReply + "\n```"},
		{name: "prose around object", input: "Segue a tabela extraída:\n" + sampleReply + "\nEspero ter ajudado."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Decode(tt.input)
			require.NoError(t, err)

			assert.Equal(t, []string{"VÉRTICE", "SEGMENTO VANTE"}, table.Header1)
			require.Len(t, table.Data, 2)
			assert.Equal(t, "FHV-M-0001", table.Data[0][0])
			assert.Equal(t, "TERRAS DE JOSÉ", table.Data[0][7])
		})
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "no JSON at all", input: "Não encontrei nenhuma tabela neste documento."},
		{name: "empty reply", input: ""},
		{name: "missing data field", input: `{"header_row1": [], "header_row2": []}`},
		{name: "data not an array", input: `{"header_row1": [], "header_row2": [], "data": "oops"}`},
		{name: "numeric cells", input: `{"header_row1": [], "header_row2": [], "data": [["V-01", 12.5]]}`},
		{name: "broken JSON", input: `{"header_row1": [,]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.input)
			require.Error(t, err)

			var malformed *MalformedResultError
			require.ErrorAs(t, err, &malformed)
		})
	}
}

func TestDecodeReportsFieldErrors(t *testing.T) {
	_, err := Decode(`{"header_row1": [], "header_row2": [], "data": [["V-01", 12.5]]}`)
	require.Error(t, err)

	var validationErr *schemas.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestTableSlicing(t *testing.T) {
	table := &Table{
		Header2: []string{"Código", "Longitude", "Latitude", "Altitude (m)", "Código", "Azimute", "Dist. (m)", "Confrontações"},
		Data: [][]string{
			{"V-01", "-47°52'", "-15°47'", "1.095,81", "V-02", "45°12'", "102,51", "FAZENDA A"},
			{"V-02", "-47°53'", "-15°48'"}, // ragged row
		},
	}

	vertex := table.VertexRows()
	require.Len(t, vertex, 2)
	assert.Equal(t, []string{"V-01", "-47°52'", "-15°47'", "1.095,81"}, vertex[0])
	assert.Equal(t, []string{"V-02", "-47°53'", "-15°48'", ""}, vertex[1], "short rows are padded")

	segment := table.SegmentRows()
	require.Len(t, segment, 2)
	assert.Equal(t, []string{"V-02", "45°12'", "102,51"}, segment[0], "confrontations column stays out")
	assert.Equal(t, []string{"", "", ""}, segment[1])

	assert.Equal(t, []string{"Código", "Longitude", "Latitude", "Altitude (m)"}, table.VertexHeader())
	assert.Equal(t, []string{"Código", "Azimute", "Dist. (m)"}, table.SegmentHeader())
}

func TestTableSlicingShortHeader(t *testing.T) {
	table := &Table{Header2: []string{"Código", "Longitude"}}
	assert.Equal(t, []string{"Código", "Longitude", "", ""}, table.VertexHeader())
	assert.Equal(t, []string{"", "", ""}, table.SegmentHeader())
}

func TestTableDatasets(t *testing.T) {
	table := &Table{
		Header2: []string{"Código", "Longitude", "Latitude", "Altitude (m)", "Código", "Azimute", "Dist. (m)", "Confrontações"},
		Data: [][]string{
			{"V-01", "-47°52'", "-15°47'", "1.095,81", "V-02", "45°12'", "102,51", "FAZENDA A"},
		},
	}

	vertex := table.VertexDataset("INCRA")
	assert.Equal(t, "INCRA", vertex.Label)
	assert.Equal(t, table.VertexHeader(), vertex.Header)
	require.Equal(t, 1, vertex.Len())
	assert.Equal(t, []string{"V-01", "-47°52'", "-15°47'", "1.095,81"}, vertex.Records[0])

	segment := table.SegmentDataset("PROJETO")
	assert.Equal(t, "PROJETO", segment.Label)
	assert.Equal(t, table.SegmentHeader(), segment.Header)
	require.Equal(t, 1, segment.Len())
	assert.Equal(t, []string{"V-02", "45°12'", "102,51"}, segment.Records[0])
}

// scriptedReader returns its script entries one call at a time; entries are
// either reply strings or errors.
type scriptedReader struct {
	script  []any
	calls   int
	prompts []string
}

func (s *scriptedReader) GenerateFromPDF(ctx context.Context, pdfPath string, prompt string, tier llm.ModelTier) (string, error) {
	if s.calls >= len(s.script) {
		return "", fmt.Errorf("unexpected model call %d", s.calls+1)
	}
	step := s.script[s.calls]
	s.calls++
	s.prompts = append(s.prompts, prompt)

	if err, ok := step.(error); ok {
		return "", err
	}
	return step.(string), nil
}

func newTestExtractor(reader DocumentReader) (*Extractor, *[]time.Duration) {
	e := NewExtractor(reader, llm.TierLite)
	waits := &[]time.Duration{}
	e.wait = func(ctx context.Context, d time.Duration) error {
		*waits = append(*waits, d)
		return nil
	}
	return e, waits
}

func TestExtractTable(t *testing.T) {
	reader := &scriptedReader{script: []any{sampleReply}}
	e, waits := newTestExtractor(reader)

	table, err := e.ExtractTable(context.Background(), "memorial.pdf", classify.RoleMemorial)
	require.NoError(t, err)
	assert.Len(t, table.Data, 2)
	assert.Empty(t, *waits)
}

func TestExtractTableRetriesThrottling(t *testing.T) {
	reader := &scriptedReader{script: []any{llm.ErrRateLimited, llm.ErrRateLimited, sampleReply}}
	e, waits := newTestExtractor(reader)

	table, err := e.ExtractTable(context.Background(), "memorial.pdf", classify.RoleMemorial)
	require.NoError(t, err)
	assert.Len(t, table.Data, 2)
	assert.Equal(t, []time.Duration{Backoff, Backoff}, *waits)
}

func TestExtractTableExhaustsAttempts(t *testing.T) {
	reader := &scriptedReader{script: []any{llm.ErrRateLimited, llm.ErrRateLimited, llm.ErrRateLimited}}
	e, waits := newTestExtractor(reader)

	_, err := e.ExtractTable(context.Background(), "memorial.pdf", classify.RoleMemorial)
	require.Error(t, err)

	var failed *ExtractionFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, MaxAttempts, failed.Attempts)
	assert.True(t, llm.IsRateLimited(failed.Cause))
	assert.Len(t, *waits, 2)
}

func TestExtractTableHardErrorNoRetry(t *testing.T) {
	reader := &scriptedReader{script: []any{errors.New("document too large")}}
	e, waits := newTestExtractor(reader)

	_, err := e.ExtractTable(context.Background(), "memorial.pdf", classify.RolePlan)
	require.Error(t, err)

	var failed *ExtractionFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, 1, failed.Attempts)
	assert.Empty(t, *waits)
}

func TestExtractTableMalformedReply(t *testing.T) {
	reader := &scriptedReader{script: []any{"resposta sem tabela"}}
	e, _ := newTestExtractor(reader)

	_, err := e.ExtractTable(context.Background(), "memorial.pdf", classify.RoleMemorial)
	require.Error(t, err)

	var malformed *MalformedResultError
	require.ErrorAs(t, err, &malformed)
}

func TestExtractTableCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e, _ := newTestExtractor(&scriptedReader{})
	_, err := e.ExtractTable(ctx, "memorial.pdf", classify.RoleMemorial)
	require.ErrorIs(t, err, context.Canceled)
}

func TestExtractTablePromptFollowsRole(t *testing.T) {
	memReader := &scriptedReader{script: []any{sampleReply}}
	e, _ := newTestExtractor(memReader)
	_, err := e.ExtractTable(context.Background(), "memorial.pdf", classify.RoleMemorial)
	require.NoError(t, err)
	require.Len(t, memReader.prompts, 1)
	assert.Contains(t, memReader.prompts[0], "INSTRUÇÕES CRÍTICAS")
	assert.Contains(t, memReader.prompts[0], "DESCRIÇÃO DA PARCELA")

	planReader := &scriptedReader{script: []any{sampleReply}}
	e, _ = newTestExtractor(planReader)
	_, err = e.ExtractTable(context.Background(), "planta.pdf", classify.RolePlan)
	require.NoError(t, err)
	require.Len(t, planReader.prompts, 1)
	assert.False(t, strings.Contains(planReader.prompts[0], "INSTRUÇÕES CRÍTICAS"))
	assert.Contains(t, planReader.prompts[0], "tabela principal")
}

func TestSnippetTruncates(t *testing.T) {
	long := strings.Repeat("x", 600)
	out := snippet(long)
	assert.Len(t, out, 503)
	assert.True(t, strings.HasSuffix(out, "..."))

	assert.Equal(t, "short", snippet("short"))
}
