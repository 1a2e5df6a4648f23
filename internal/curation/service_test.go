package curation

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyberguardng/cyberguard/internal/reports"
	"github.com/cyberguardng/cyberguard/internal/ussd"
	"github.com/cyberguardng/cyberguard/pkg/filestore"
)

func newTestService(t *testing.T) (*Service, *reports.Service, *ussd.Lists) {
	t.Helper()
	store, err := filestore.New(t.TempDir())
	require.NoError(t, err)

	lists := ussd.NewLists(store)
	reportService := reports.NewService(reports.NewRepository(store), lists)
	service := NewService(NewRepository(store), lists, reportService)
	return service, reportService, lists
}

func TestAddCuratesAndMirrorsToSafeList(t *testing.T) {
	service, _, lists := newTestService(t)

	code, err := service.Add(context.Background(), &AddRequest{
		Code:     "*901#",
		Type:     "bank",
		Provider: "First Bank",
	}, "admin")
	require.NoError(t, err)

	assert.True(t, code.Verified)
	assert.Equal(t, "admin", code.AddedBy)

	_, inSafeList := lists.SafeSet()["*901#"]
	assert.True(t, inSafeList)
}

func TestAddRejectsDuplicate(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.Add(context.Background(), &AddRequest{Code: "*901#", Type: "bank", Provider: "First Bank"}, "admin")
	require.NoError(t, err)

	_, err = service.Add(context.Background(), &AddRequest{Code: "*901 #", Type: "bank", Provider: "First Bank"}, "admin")
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestBulkAddSkipsDuplicatesAndAppliesDefaults(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.Add(context.Background(), &AddRequest{Code: "*901#", Type: "bank", Provider: "First Bank"}, "admin")
	require.NoError(t, err)

	added, err := service.BulkAdd(context.Background(), &BulkAddRequest{Codes: []BulkEntry{
		{Code: "*901#"},
		{Code: "*123#"},
	}}, "admin")
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	codes := service.List(context.Background())
	require.Len(t, codes, 2)
	for _, c := range codes {
		if c.Code == "*123#" {
			assert.Equal(t, "other", c.Type)
			assert.Equal(t, "Unknown", c.Provider)
			assert.Equal(t, "bulk_import", c.Reference)
		}
	}
}

func TestPendingReportsListsOnlyPendingUSSD(t *testing.T) {
	service, reportService, _ := newTestService(t)

	ussdReport, err := reportService.Submit(context.Background(), &reports.SubmitRequest{Type: "ussd", Content: "*444#"})
	require.NoError(t, err)
	_, err = reportService.Submit(context.Background(), &reports.SubmitRequest{Type: "sms", Content: "free cash"})
	require.NoError(t, err)

	pending := service.PendingReports(context.Background())
	require.Len(t, pending, 1)
	assert.Equal(t, ussdReport.ID, pending[0].ID)

	require.NoError(t, service.RejectReport(context.Background(), ussdReport.ID))
	assert.Empty(t, service.PendingReports(context.Background()))
}

func TestApproveReportPromotesAndVerifies(t *testing.T) {
	service, reportService, lists := newTestService(t)

	report, err := reportService.Submit(context.Background(), &reports.SubmitRequest{
		Type:     "ussd",
		Content:  "*565*0#",
		Username: "chidi",
	})
	require.NoError(t, err)

	require.NoError(t, service.ApproveReport(context.Background(), report.ID))

	updated, ok := reportService.Get(context.Background(), report.ID)
	require.True(t, ok)
	assert.Equal(t, reports.StatusVerified, updated.Status)

	codes := service.List(context.Background())
	require.Len(t, codes, 1)
	assert.Equal(t, "community_verified", codes[0].Type)
	assert.Equal(t, "chidi", codes[0].AddedBy)

	_, inSafeList := lists.SafeSet()["*565*0#"]
	assert.True(t, inSafeList)
}

func TestApproveReportRejectsNonUSSD(t *testing.T) {
	service, reportService, _ := newTestService(t)

	report, err := reportService.Submit(context.Background(), &reports.SubmitRequest{
		Type:    "sms",
		Content: "free cash now",
	})
	require.NoError(t, err)

	err = service.ApproveReport(context.Background(), report.ID)
	assert.ErrorIs(t, err, ErrNotUSSDReport)
}

func TestApproveReportUnknownID(t *testing.T) {
	service, _, _ := newTestService(t)

	err := service.ApproveReport(context.Background(), uuid.New())
	assert.ErrorIs(t, err, reports.ErrNotFound)
}

func TestRejectReport(t *testing.T) {
	service, reportService, _ := newTestService(t)

	report, err := reportService.Submit(context.Background(), &reports.SubmitRequest{Type: "ussd", Content: "*999#"})
	require.NoError(t, err)

	require.NoError(t, service.RejectReport(context.Background(), report.ID))

	updated, ok := reportService.Get(context.Background(), report.ID)
	require.True(t, ok)
	assert.Equal(t, reports.StatusRejected, updated.Status)
}

func TestDeleteRemovesExactMatch(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.Add(context.Background(), &AddRequest{Code: "*901#", Type: "bank", Provider: "First Bank"}, "admin")
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), "*901#"))
	assert.Empty(t, service.List(context.Background()))

	assert.ErrorIs(t, service.Delete(context.Background(), "*901#"), ErrNotFound)
}

func TestStatsCountsBankCodesAndPending(t *testing.T) {
	service, reportService, _ := newTestService(t)

	_, err := service.Add(context.Background(), &AddRequest{Code: "*901#", Type: "bank", Provider: "First Bank"}, "admin")
	require.NoError(t, err)
	_, err = service.Add(context.Background(), &AddRequest{Code: "*123#", Type: "telco", Provider: "MTN"}, "admin")
	require.NoError(t, err)
	_, err = reportService.Submit(context.Background(), &reports.SubmitRequest{Type: "ussd", Content: "*444#"})
	require.NoError(t, err)

	stats := service.Stats(context.Background())
	assert.Equal(t, 2, stats.TotalCodes)
	assert.Equal(t, 1, stats.BankCodes)
	assert.Equal(t, 1, stats.PendingReports)
}

func TestExportFormats(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.Add(context.Background(), &AddRequest{
		Code:        "*901#",
		Type:        "bank",
		Provider:    "First Bank",
		Description: "Transfers, airtime",
	}, "admin")
	require.NoError(t, err)

	raw, mediaType, err := service.Export(context.Background(), "json")
	require.NoError(t, err)
	assert.Equal(t, "application/json", mediaType)
	assert.Contains(t, string(raw), "*901#")

	raw, mediaType, err = service.Export(context.Background(), "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", mediaType)
	assert.True(t, strings.HasPrefix(string(raw), "code,type,provider,description,reference,added_by,timestamp\n"))
	assert.Contains(t, string(raw), "Transfers; airtime")

	raw, mediaType, err = service.Export(context.Background(), "txt")
	require.NoError(t, err)
	assert.Equal(t, "text/plain", mediaType)
	assert.Contains(t, string(raw), "*901# - First Bank (bank)")

	_, _, err = service.Export(context.Background(), "xml")
	assert.Error(t, err)
}
