package export_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"medclaim/internal/domain"
	"medclaim/internal/export"
)

func sampleRecord(t *testing.T) domain.ClaimRecord {
	t.Helper()
	result := domain.ProcessingResult{
		Documents: []domain.ExtractedData{
			{
				DocumentType: domain.DocumentTypeBill,
				PatientName:  domain.StringPtr("John Doe"),
				HospitalName: domain.StringPtr("City Hospital"),
				TotalAmount:  1200.5,
			},
			{
				DocumentType:  domain.DocumentTypeDischargeSummary,
				PatientName:   domain.StringPtr("John Doe"),
				AdmissionDate: domain.StringPtr("2024-01-10"),
				DischargeDate: domain.StringPtr("2024-01-15"),
			},
			{
				DocumentType: domain.DocumentTypePharmacyBill,
				TotalAmount:  99.5,
			},
		},
		Validation: domain.ValidationResult{
			MissingDocuments: []string{"Missing required document: id_card"},
			Discrepancies:    []string{},
		},
		ClaimDecision: &domain.ClaimDecision{Status: domain.ClaimStatusRejected, Reason: "Missing required documents"},
	}
	raw, err := json.Marshal(result)
	require.NoError(t, err)

	return domain.ClaimRecord{
		ID:            uuid.MustParse("6f1c1c8e-6c1a-4d7e-9c43-1f0b8a3d2e11"),
		Status:        domain.ClaimStatusRejected,
		Reason:        "Missing required documents",
		DocumentCount: 3,
		FileNames:     domain.StringList{"bill.pdf", "discharge.pdf", "pharmacy.pdf"},
		Result:        raw,
		CreatedAt:     time.Date(2024, 1, 16, 9, 30, 0, 0, time.UTC),
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, []domain.ClaimRecord{sampleRecord(t)}))

	require.True(t, bytes.HasPrefix(buf.Bytes(), export.BOM))
	rows, err := csv.NewReader(bytes.NewReader(buf.Bytes()[len(export.BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	header, row := rows[0], rows[1]
	assert.Equal(t, "Claim ID", header[0])
	assert.Equal(t, "Created At", header[len(header)-1])
	assert.Len(t, row, len(header))

	assert.Equal(t, "6f1c1c8e-6c1a-4d7e-9c43-1f0b8a3d2e11", row[0])
	assert.Equal(t, "rejected", row[1])
	assert.Equal(t, "3", row[3])
	assert.Equal(t, "bill.pdf; discharge.pdf; pharmacy.pdf", row[4])
	assert.Equal(t, "bill; discharge_summary; pharmacy_bill", row[5])
	assert.Equal(t, "John Doe", row[6])
	assert.Equal(t, "City Hospital", row[7])
	assert.Equal(t, "2024-01-10", row[9])
	assert.Equal(t, "2024-01-15", row[10])
	assert.Equal(t, "1300.00", row[12])
	assert.Equal(t, "Missing required document: id_card", row[13])
	assert.Equal(t, "", row[14])
	assert.Equal(t, "2024-01-16T09:30:00Z", row[15])
}

func TestWriteCSV_CorruptResultStillWritesMetadata(t *testing.T) {
	rec := sampleRecord(t)
	rec.Result = []byte("not json")

	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, []domain.ClaimRecord{rec}))

	rows, err := csv.NewReader(bytes.NewReader(buf.Bytes()[len(export.BOM):])).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "rejected", rows[1][1])
	assert.Equal(t, "", rows[1][6])
	assert.Equal(t, "0.00", rows[1][12])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteXLSX(&buf, []domain.ClaimRecord{sampleRecord(t)}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Claims")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Claim ID", rows[0][0])
	assert.Equal(t, "rejected", rows[1][1])
	assert.Equal(t, "3", rows[1][3])
	assert.Equal(t, "John Doe", rows[1][6])
}

func TestWrite_UnsupportedFormat(t *testing.T) {
	err := export.Write(&bytes.Buffer{}, domain.ExportFormat("pdf"), nil)

	assert.ErrorIs(t, err, domain.ErrUnsupportedExportFormat)
}

func TestBuildFilenameAndContentType(t *testing.T) {
	now := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "claims_2024-03-05.csv", export.BuildFilename(domain.ExportFormatCSV, now))
	assert.Equal(t, "claims_2024-03-05.xlsx", export.BuildFilename(domain.ExportFormatXLSX, now))
	assert.Contains(t, export.ContentType(domain.ExportFormatCSV), "text/csv")
	assert.Contains(t, export.ContentType(domain.ExportFormatXLSX), "spreadsheetml")
}
