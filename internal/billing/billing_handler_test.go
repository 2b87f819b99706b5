package billing

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/auditlog"
	pkgbilling "github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/billing"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/lifecycle"
)

type MockAssetSource struct {
	mock.Mock
}

func (m *MockAssetSource) GetBillableAssets() ([]pkgbilling.BillableAsset, error) {
	args := m.Called()
	return args.Get(0).([]pkgbilling.BillableAsset), args.Error(1)
}

func setupBillingTest(role string, url string) (*gin.Context, *httptest.ResponseRecorder, *MockAssetSource, *BillingHandler, *auditlog.Sink) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, url, nil)
	c.Set("role", role)

	source := new(MockAssetSource)
	sink := auditlog.NewSink(nil, zap.NewNop())
	handler := NewHandler(NewService(source, 0), sink, zap.NewNop())

	return c, w, source, handler, sink
}

func sampleAssets() []pkgbilling.BillableAsset {
	return []pkgbilling.BillableAsset{
		{Status: lifecycle.StatusWithClient, Location: "Acme Corp"},
		{Status: lifecycle.StatusWithClient, Location: "Acme Corp"},
		{Status: lifecycle.StatusReturnedFromClient},
		{Status: lifecycle.StatusInStockWorking},
	}
}

func TestGetMetricsForFinanceRole(t *testing.T) {
	c, w, source, handler, _ := setupBillingTest("finance", "/billing/metrics")
	source.On("GetBillableAssets").Return(sampleAssets(), nil)

	handler.GetMetrics(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"billable_count":2`)
	assert.Contains(t, w.Body.String(), `"monthly_revenue":6000`)
}

func TestGetMetricsDeniedForOperations(t *testing.T) {
	c, w, _, handler, sink := setupBillingTest("operations", "/billing/metrics")

	handler.GetMetrics(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Access Denied")

	entries := sink.Recent()
	assert.Len(t, entries, 1)
	assert.Equal(t, auditlog.ActionAccessDenied, entries[0].ActionType)
}

func TestGetMetricsRateOverrideRequiresAdmin(t *testing.T) {
	c, w, _, handler, sink := setupBillingTest("finance", "/billing/metrics?rate=5000")

	handler.GetMetrics(c)

	assert.Equal(t, http.StatusForbidden, w.Code)

	entries := sink.Recent()
	assert.Len(t, entries, 1)
	assert.Equal(t, auditlog.ActionAccessDenied, entries[0].ActionType)
}

func TestGetMetricsRateOverrideForAdmin(t *testing.T) {
	c, w, source, handler, sink := setupBillingTest("admin", "/billing/metrics?rate=5000")
	source.On("GetBillableAssets").Return(sampleAssets(), nil)

	handler.GetMetrics(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"monthly_rate":5000`)
	assert.Contains(t, w.Body.String(), `"monthly_revenue":10000`)

	entries := sink.Recent()
	assert.Len(t, entries, 1)
	assert.Equal(t, auditlog.ActionBillingOverride, entries[0].ActionType)
	assert.True(t, entries[0].BillingImpact)
	assert.True(t, entries[0].Critical)
}

func TestGetMetricsRejectsInvalidRate(t *testing.T) {
	c, w, _, handler, _ := setupBillingTest("admin", "/billing/metrics?rate=-10")

	handler.GetMetrics(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMetricsHidesInternalErrorDetail(t *testing.T) {
	c, w, source, handler, _ := setupBillingTest("finance", "/billing/metrics")
	source.On("GetBillableAssets").Return([]pkgbilling.BillableAsset(nil), errors.New("pq: connection reset by peer"))

	handler.GetMetrics(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "(Ref: ")
	assert.NotContains(t, w.Body.String(), "connection reset")
	assert.NotContains(t, w.Body.String(), "details")
}
